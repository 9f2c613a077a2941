package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ErrTemplateNotFound is returned when rendering a name that was not loaded.
var ErrTemplateNotFound = errors.New("template not found")

// MetadataTemplate is the name of the template used for the metadata file.
const MetadataTemplate = "metadata_template"

// SolutionTemplate returns the name of the solution template for language,
// e.g. "cpp_template".
func SolutionTemplate(language string) string {
	return language + "_template"
}

// Variables maps placeholder names to the values substituted for them.
type Variables map[string]any

// Set is the collection of templates loaded from one directory, keyed by
// file name without extension. The contents are replaced wholesale on
// Reload.
type Set struct {
	dir    string
	logger *zap.Logger

	mu        sync.RWMutex
	templates map[string]string
}

// Load reads every regular file in dir. A missing directory yields an empty
// set; files that are empty or unreadable are skipped.
func Load(dir string, logger *zap.Logger) (*Set, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Set{dir: dir, logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the template directory and swaps in the new contents.
func (s *Set) Reload() error {
	loaded, err := s.readDir()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.templates = loaded
	s.mu.Unlock()
	return nil
}

func (s *Set) readDir() (map[string]string, error) {
	loaded := map[string]string{}

	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		s.logger.Warn("Template directory not found", zap.String("dir", s.dir))
		return loaded, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read template directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("Failed to read template", zap.String("path", path), zap.Error(err))
			continue
		}
		if len(data) == 0 {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		loaded[name] = string(data)
		s.logger.Debug("Loaded template", zap.String("name", name))
	}

	return loaded, nil
}

// Get returns the raw text of the named template.
func (s *Set) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.templates[name]
	return text, ok
}

// Names returns the loaded template names in sorted order.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render substitutes every "{key}" in the named template with the string
// form of vars[key]. Placeholders without a variable are left as they are.
func (s *Set) Render(name string, vars Variables) (string, error) {
	text, ok := s.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return Substitute(text, vars), nil
}

// Substitute performs a single literal replacement pass over text. Values
// are not themselves scanned for placeholders.
func Substitute(text string, vars Variables) string {
	if len(vars) == 0 {
		return text
	}

	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		pairs = append(pairs, "{"+key+"}", fmt.Sprint(vars[key]))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
