package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingFields is wrapped by ValidationError.
var ErrMissingFields = errors.New("missing required configuration fields")

// FileNaming controls the names of the files written into a workspace.
type FileNaming struct {
	SolutionFile string `yaml:"solution_file"`
	MetadataFile string `yaml:"metadata_file"`
	InputPrefix  string `yaml:"input_prefix"`
	OutputPrefix string `yaml:"output_prefix"`
}

// EditorConfig describes how files are opened after creation. Command may
// contain arguments of its own ("code -r").
type EditorConfig struct {
	Command      string   `yaml:"command"`
	Args         []string `yaml:"args"`
	OpenSolution bool     `yaml:"open_solution"`
	OpenTestcase bool     `yaml:"open_testcase"`
	OpenMetadata bool     `yaml:"open_metadata"`
}

// TestCaseConfig controls test file numbering.
type TestCaseConfig struct {
	StartNumber int `yaml:"start_number"`
}

// ServerConfig configures the receiver endpoint.
type ServerConfig struct {
	Address      string `yaml:"address"`
	SaveLastHTML string `yaml:"save_last_html"`
}

// HistoryConfig configures the creation history database. An empty DSN
// disables history.
type HistoryConfig struct {
	DSN string `yaml:"dsn"`
}

// Config represents the structure of ~/.cfprep/config.yaml.
type Config struct {
	OutputDirectory   string         `yaml:"output_directory"`
	TemplateDirectory string         `yaml:"template_directory"`
	DefaultLanguage   string         `yaml:"default_language"`
	FileNaming        FileNaming     `yaml:"file_naming"`
	Editor            EditorConfig   `yaml:"editor"`
	AutoOpenFiles     bool           `yaml:"auto_open_files"`
	AutoDownload      bool           `yaml:"auto_download"`
	CreateMetadata    bool           `yaml:"create_metadata"`
	TestCases         TestCaseConfig `yaml:"test_cases"`
	Server            ServerConfig   `yaml:"server"`
	History           HistoryConfig  `yaml:"history"`
}

// Default returns a Config with every optional field set to its default.
// Required fields are left empty.
func Default() *Config {
	return &Config{
		FileNaming: FileNaming{
			MetadataFile: "metadata.json",
		},
		Editor: EditorConfig{
			Command:      "code",
			Args:         []string{},
			OpenSolution: true,
		},
		AutoOpenFiles:  true,
		CreateMetadata: true,
		TestCases:      TestCaseConfig{StartNumber: 1},
		Server: ServerConfig{
			Address:      "localhost:8765",
			SaveLastHTML: "last_problem.html",
		},
		History: HistoryConfig{
			DSN: "~/.cfprep/history.db",
		},
	}
}

// ValidationError lists every required field that is missing.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingFields, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrMissingFields
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"output_directory", c.OutputDirectory},
		{"template_directory", c.TemplateDirectory},
		{"default_language", c.DefaultLanguage},
		{"file_naming.solution_file", c.FileNaming.SolutionFile},
		{"file_naming.input_prefix", c.FileNaming.InputPrefix},
		{"file_naming.output_prefix", c.FileNaming.OutputPrefix},
	}

	var missing []string
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.key)
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}

	if c.TestCases.StartNumber < 0 {
		return fmt.Errorf("invalid test_cases.start_number: must not be negative")
	}
	return nil
}
