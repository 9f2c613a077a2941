package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath returns ~/.cfprep/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cfprep", "config.yaml"), nil
}

// Load reads the config file at path, applies environment overrides and
// validates the result. Configuration is applied with precedence:
// 1. Environment variables (highest priority)
// 2. Configuration file
// 3. Default values (lowest priority)
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse decodes YAML on top of the defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from CFPREP_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if val := getenv("CFPREP_OUTPUT_DIR"); val != "" {
		c.OutputDirectory = val
	}
	if val := getenv("CFPREP_TEMPLATE_DIR"); val != "" {
		c.TemplateDirectory = val
	}
	if val := getenv("CFPREP_LANGUAGE"); val != "" {
		c.DefaultLanguage = val
	}
	if val := getenv("CFPREP_SERVER_ADDR"); val != "" {
		c.Server.Address = val
	}
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.OutputDirectory, &c.TemplateDirectory, &c.History.DSN} {
		expanded, err := ExpandHome(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}

// Starter returns the config written by WriteDefault, pointing at
// templateDir.
func Starter(templateDir string) *Config {
	cfg := Default()
	cfg.OutputDirectory = "~/cp/problems"
	cfg.TemplateDirectory = templateDir
	cfg.DefaultLanguage = "cpp"
	cfg.FileNaming.SolutionFile = "solution.cpp"
	cfg.FileNaming.InputPrefix = "in"
	cfg.FileNaming.OutputPrefix = "out"
	return cfg
}

const defaultSolutionTemplate = `// Problem: {problem_name}
// Contest: {problem_id}
// URL: {problem_url}
// Created: {date}

#include <bits/stdc++.h>
using namespace std;

int main() {
    ios::sync_with_stdio(false);
    cin.tie(nullptr);

    return 0;
}
`

const defaultMetadataTemplate = `{
  "problem_id": "{problem_id}",
  "problem_name": "{problem_name}",
  "url": "{problem_url}",
  "created": "{date}",
  "time_limit": "{time_limit}",
  "memory_limit": "{memory_limit}",
  "test_cases": {test_case_count}
}
`

// WriteDefault writes a starter config file to path and default cpp and
// metadata templates into templateDir. The config names templateDir as its
// template directory. Existing files are kept unless force is set. It
// reports whether the config file was written.
func WriteDefault(path, templateDir string, force bool) (bool, error) {
	data, err := yaml.Marshal(Starter(templateDir))
	if err != nil {
		return false, fmt.Errorf("failed to encode config file: %w", err)
	}

	written, err := writeIfAbsent(path, "# cfprep configuration\n"+string(data), force)
	if err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	templates := map[string]string{
		"cpp_template.cpp":       defaultSolutionTemplate,
		"metadata_template.json": defaultMetadataTemplate,
	}
	for name, content := range templates {
		if _, err := writeIfAbsent(filepath.Join(templateDir, name), content, force); err != nil {
			return written, fmt.Errorf("failed to write template %s: %w", name, err)
		}
	}

	return written, nil
}

func writeIfAbsent(path, content string, force bool) (bool, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return false, nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return false, err
	}
	return true, nil
}
