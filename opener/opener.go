package opener

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/google/shlex"
	"github.com/pevans/cfprep/config"
	"go.uber.org/zap"
)

// Opener launches the configured editor on workspace files. Launches are
// detached: the editor is never waited on by the caller.
type Opener struct {
	command string
	args    []string
	editor  config.EditorConfig
	logger  *zap.Logger

	start func(name string, args ...string) error
}

// New builds an opener from the editor config. The command string is split
// shell-style, so "code -r" works as well as command "code" with args
// ["-r"].
func New(editor config.EditorConfig, logger *zap.Logger) (*Opener, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	parts, err := shlex.Split(editor.Command)
	if err != nil {
		return nil, fmt.Errorf("invalid editor command: %w", err)
	}
	if len(parts) == 0 {
		return nil, errors.New("editor command is empty")
	}

	args := append(parts[1:len(parts):len(parts)], editor.Args...)
	return &Opener{
		command: parts[0],
		args:    args,
		editor:  editor,
		logger:  logger,
		start:   startDetached,
	}, nil
}

// Open launches the editor on path. It reports whether the editor was
// started; failures are logged.
func (o *Opener) Open(path string) bool {
	if _, err := os.Stat(path); err != nil {
		o.logger.Warn("File not found", zap.String("path", path))
		return false
	}

	argv := append(append([]string{}, o.args...), path)
	if err := o.start(o.command, argv...); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			o.logger.Error("Editor command not found; check the editor section of the config file",
				zap.String("command", o.command))
		} else {
			o.logger.Error("Failed to open file", zap.String("path", path), zap.Error(err))
		}
		return false
	}

	o.logger.Info("Opened file", zap.String("path", path))
	return true
}

// OpenProblem opens the solution, first test input and metadata file of a
// workspace, as enabled in the editor config.
func (o *Opener) OpenProblem(dir string, naming config.FileNaming, startNumber int) {
	if o.editor.OpenSolution {
		o.Open(filepath.Join(dir, naming.SolutionFile))
	}
	if o.editor.OpenTestcase {
		o.Open(filepath.Join(dir, naming.InputPrefix+strconv.Itoa(startNumber)))
	}
	if o.editor.OpenMetadata && naming.MetadataFile != "" {
		o.Open(filepath.Join(dir, naming.MetadataFile))
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = detachedAttr()
	if err := cmd.Start(); err != nil {
		return err
	}

	// Reap the child without blocking the caller.
	go func() { _ = cmd.Wait() }()
	return nil
}
