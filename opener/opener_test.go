package opener

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/pevans/cfprep/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type launch struct {
	name string
	args []string
}

// Test helper: an opener that records launches instead of running them
func setupOpener(t *testing.T, editor config.EditorConfig, startErr error) (*Opener, *[]launch) {
	o, err := New(editor, nil)
	require.NoError(t, err)

	launches := []launch{}
	o.start = func(name string, args ...string) error {
		launches = append(launches, launch{name, args})
		return startErr
	}
	return o, &launches
}

// Test helper: create a workspace with the usual files
func setupWorkspace(t *testing.T) string {
	dir := t.TempDir()
	for _, name := range []string{"solution.cpp", "in1", "out1", "metadata.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}
	return dir
}

var naming = config.FileNaming{
	SolutionFile: "solution.cpp",
	MetadataFile: "metadata.json",
	InputPrefix:  "in",
	OutputPrefix: "out",
}

// TestNew_SplitsCommand verifies shell-style splitting and extra args
func TestNew_SplitsCommand(t *testing.T) {
	o, err := New(config.EditorConfig{Command: `code -r "--profile=cp"`, Args: []string{"-n"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, "code", o.command)
	assert.Equal(t, []string{"-r", "--profile=cp", "-n"}, o.args)
}

// TestNew_EmptyCommand verifies an empty command is rejected
func TestNew_EmptyCommand(t *testing.T) {
	_, err := New(config.EditorConfig{Command: "   "}, nil)
	assert.Error(t, err)
}

// TestOpen_LaunchesEditor verifies the argv passed to the editor
func TestOpen_LaunchesEditor(t *testing.T) {
	dir := setupWorkspace(t)
	o, launches := setupOpener(t, config.EditorConfig{Command: "vim", Args: []string{"-p"}}, nil)

	ok := o.Open(filepath.Join(dir, "solution.cpp"))

	assert.True(t, ok)
	require.Len(t, *launches, 1)
	assert.Equal(t, "vim", (*launches)[0].name)
	assert.Equal(t, []string{"-p", filepath.Join(dir, "solution.cpp")}, (*launches)[0].args)
}

// TestOpen_MissingFile verifies nothing is launched for a missing file
func TestOpen_MissingFile(t *testing.T) {
	o, launches := setupOpener(t, config.EditorConfig{Command: "vim"}, nil)

	assert.False(t, o.Open(filepath.Join(t.TempDir(), "nope")))
	assert.Empty(t, *launches)
}

// TestOpen_EditorNotFound verifies launch errors degrade to false
func TestOpen_EditorNotFound(t *testing.T) {
	dir := setupWorkspace(t)
	o, _ := setupOpener(t, config.EditorConfig{Command: "vim"}, &exec.Error{Name: "vim", Err: exec.ErrNotFound})

	assert.False(t, o.Open(filepath.Join(dir, "solution.cpp")))

	o, _ = setupOpener(t, config.EditorConfig{Command: "vim"}, errors.New("boom"))
	assert.False(t, o.Open(filepath.Join(dir, "solution.cpp")))
}

// TestOpen_RealMissingBinary verifies the detached launcher reports a missing
// editor
func TestOpen_RealMissingBinary(t *testing.T) {
	dir := setupWorkspace(t)
	o, err := New(config.EditorConfig{Command: "cfprep-no-such-editor-binary"}, nil)
	require.NoError(t, err)

	assert.False(t, o.Open(filepath.Join(dir, "solution.cpp")))
}

// TestOpenProblem verifies which files are opened
func TestOpenProblem(t *testing.T) {
	tests := []struct {
		name   string
		editor config.EditorConfig
		want   []string
	}{
		{"solution only", config.EditorConfig{Command: "e", OpenSolution: true}, []string{"solution.cpp"}},
		{"all", config.EditorConfig{Command: "e", OpenSolution: true, OpenTestcase: true, OpenMetadata: true},
			[]string{"solution.cpp", "in1", "metadata.json"}},
		{"none", config.EditorConfig{Command: "e"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupWorkspace(t)
			o, launches := setupOpener(t, tt.editor, nil)

			o.OpenProblem(dir, naming, 1)

			opened := []string{}
			for _, l := range *launches {
				opened = append(opened, filepath.Base(l.args[len(l.args)-1]))
			}
			assert.Equal(t, tt.want, opened)
		})
	}
}

// TestOpenProblem_SkipsMissingTestcase verifies a missing first test is skipped
func TestOpenProblem_SkipsMissingTestcase(t *testing.T) {
	dir := setupWorkspace(t)
	o, launches := setupOpener(t, config.EditorConfig{Command: "e", OpenTestcase: true}, nil)

	o.OpenProblem(dir, naming, 5)

	assert.Empty(t, *launches)
}
