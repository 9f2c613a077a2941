package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pevans/cfprep/config"
	"github.com/pevans/cfprep/problem"
	"github.com/pevans/cfprep/templates"
	"go.uber.org/zap"
)

// Options controls what Materialize writes.
type Options struct {
	StartNumber   int
	WriteMetadata bool
}

// TestFile names the input and output file of one sample test.
type TestFile struct {
	Input  string
	Output string
}

// TestFileNames returns the file names for count test cases numbered from
// start.
func TestFileNames(naming config.FileNaming, count, start int) []TestFile {
	files := make([]TestFile, count)
	for i := range files {
		n := strconv.Itoa(start + i)
		files[i] = TestFile{
			Input:  naming.InputPrefix + n,
			Output: naming.OutputPrefix + n,
		}
	}
	return files
}

// Materializer writes problem workspaces under a root directory.
type Materializer struct {
	root      string
	naming    config.FileNaming
	templates *templates.Set
	opts      Options
	logger    *zap.Logger
}

// New creates a materializer that writes into root.
func New(root string, naming config.FileNaming, tmpl *templates.Set, opts Options, logger *zap.Logger) *Materializer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Materializer{
		root:      root,
		naming:    naming,
		templates: tmpl,
		opts:      opts,
		logger:    logger,
	}
}

// Dir returns the workspace directory for a problem id.
func (m *Materializer) Dir(problemID string) string {
	return filepath.Join(m.root, SanitizeName(problemID))
}

// SanitizeName replaces characters that are not allowed in file names and
// trims leading and trailing dots and spaces, so an id derived from a
// problem title cannot point outside the output root.
func SanitizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>:"/\|?*`, r) || r < 0x20 {
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(name, ". ")
	if name == "" {
		return "Unknown_Problem"
	}
	return name
}

// Materialize creates root/<problem id> and writes the solution file, the
// sample test files and the metadata file into it, replacing whatever was
// there. A missing solution template stops before anything else is written.
// Test file failures are logged and reported after the metadata step. Files
// already written are never rolled back.
func (m *Materializer) Materialize(rec *problem.Record) (string, error) {
	dir := m.Dir(rec.ProblemID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create problem directory: %w", err)
	}
	log := m.logger.With(zap.String("problem_id", rec.ProblemID))
	log.Info("Created problem directory", zap.String("dir", dir))

	solutionPath := filepath.Join(dir, m.naming.SolutionFile)
	tmplName := templates.SolutionTemplate(rec.Language)
	if err := m.renderFile(solutionPath, tmplName, templates.SolutionVariables(rec)); err != nil {
		log.Error("Failed to create solution file", zap.String("path", solutionPath), zap.Error(err))
		return dir, fmt.Errorf("failed to create solution file: %w", err)
	}
	log.Info("Created solution file", zap.String("path", solutionPath))

	testErr := m.writeTestCases(dir, rec.TestCases, log)

	if m.opts.WriteMetadata && m.naming.MetadataFile != "" {
		metadataPath := filepath.Join(dir, m.naming.MetadataFile)
		if err := m.renderFile(metadataPath, templates.MetadataTemplate, templates.MetadataVariables(rec)); err != nil {
			log.Error("Failed to create metadata file", zap.String("path", metadataPath), zap.Error(err))
			return dir, errors.Join(testErr, fmt.Errorf("failed to create metadata file: %w", err))
		}
		log.Info("Created metadata file", zap.String("path", metadataPath))
	}

	return dir, testErr
}

func (m *Materializer) renderFile(path, name string, vars templates.Variables) error {
	content, err := m.templates.Render(name, vars)
	if err != nil {
		return err
	}
	return writeFile(path, content)
}

// writeTestCases writes one input/output pair per test case and removes
// numbered test files left over from an earlier run with more cases.
func (m *Materializer) writeTestCases(dir string, cases []problem.TestCase, log *zap.Logger) error {
	names := TestFileNames(m.naming, len(cases), m.opts.StartNumber)
	keep := make(map[string]bool, 2*len(names))

	var errs []error
	for i, tc := range cases {
		for _, f := range []struct{ name, content string }{
			{names[i].Input, tc.Input},
			{names[i].Output, tc.Output},
		} {
			keep[f.name] = true
			path := filepath.Join(dir, f.name)
			if err := writeFile(path, f.content); err != nil {
				log.Error("Failed to write test file", zap.String("path", path), zap.Error(err))
				errs = append(errs, fmt.Errorf("failed to write %s: %w", f.name, err))
				continue
			}
			log.Debug("Created test file", zap.String("path", path))
		}
	}

	m.removeStaleTestFiles(dir, keep, log)

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	log.Info("Created test files", zap.Int("count", len(cases)))
	return nil
}

func (m *Materializer) removeStaleTestFiles(dir string, keep map[string]bool, log *zap.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn("Failed to list problem directory", zap.String("dir", dir), zap.Error(err))
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || keep[name] {
			continue
		}
		if !isTestFileName(name, m.naming.InputPrefix) && !isTestFileName(name, m.naming.OutputPrefix) {
			continue
		}
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil {
			log.Warn("Failed to remove stale test file", zap.String("path", path), zap.Error(err))
			continue
		}
		log.Debug("Removed stale test file", zap.String("path", path))
	}
}

// isTestFileName reports whether name is prefix followed by digits only.
func isTestFileName(name, prefix string) bool {
	if prefix == "" || !strings.HasPrefix(name, prefix) {
		return false
	}
	n := strings.TrimPrefix(name, prefix)
	if n == "" {
		return false
	}
	_, err := strconv.Atoi(n)
	return err == nil && !strings.ContainsAny(n, "+-")
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
