package creator

import (
	"time"

	"github.com/pevans/cfprep/config"
	"github.com/pevans/cfprep/history"
	"github.com/pevans/cfprep/problem"
	"go.uber.org/zap"
)

// Materializer writes a problem workspace and returns its directory.
type Materializer interface {
	Materialize(rec *problem.Record) (string, error)
}

// FileOpener opens the files of a finished workspace.
type FileOpener interface {
	OpenProblem(dir string, naming config.FileNaming, startNumber int)
}

// Recorder keeps a log of created workspaces.
type Recorder interface {
	Record(problemID, problemName, url, directory string, testCaseCount int) (*history.Entry, error)
}

// Options holds the parts of the configuration the creator needs.
type Options struct {
	DefaultLanguage string
	AutoOpen        bool
	Naming          config.FileNaming
	StartNumber     int
}

// OptionsFromConfig extracts creator options from a loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		DefaultLanguage: cfg.DefaultLanguage,
		AutoOpen:        cfg.AutoOpenFiles,
		Naming:          cfg.FileNaming,
		StartNumber:     cfg.TestCases.StartNumber,
	}
}

// Creator coordinates creating one problem workspace: materialize, record,
// then open in the editor.
type Creator struct {
	materializer Materializer
	opener       FileOpener
	recorder     Recorder
	opts         Options
	logger       *zap.Logger
}

// New creates a Creator. opener and recorder may be nil.
func New(m Materializer, opener FileOpener, recorder Recorder, opts Options, logger *zap.Logger) *Creator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Creator{
		materializer: m,
		opener:       opener,
		recorder:     recorder,
		opts:         opts,
		logger:       logger,
	}
}

// CreateFromHTML extracts a record from page markup, resolves its id from
// url and creates the workspace.
func (c *Creator) CreateFromHTML(html, url string) (*problem.Record, bool, error) {
	rec := problem.ExtractHTML(html, time.Now())
	rec.URL = url
	rec.ProblemID = problem.Resolve(url, rec.ProblemName)

	ok, err := c.Create(rec)
	return rec, ok, err
}

// Create writes the workspace for rec. It returns false with the error if
// materialization failed. History and editor failures are only logged.
func (c *Creator) Create(rec *problem.Record) (bool, error) {
	if rec.Language == "" {
		rec.Language = c.opts.DefaultLanguage
	}
	if rec.ProblemID == "" {
		rec.ProblemID = problem.Resolve(rec.URL, rec.ProblemName)
	}

	log := c.logger.With(zap.String("problem_id", rec.ProblemID))
	log.Info("Creating problem", zap.String("name", rec.ProblemName), zap.Int("test_cases", len(rec.TestCases)))

	dir, err := c.materializer.Materialize(rec)
	if err != nil {
		log.Error("Failed to create problem", zap.Error(err))
		return false, err
	}

	if c.recorder != nil {
		if _, err := c.recorder.Record(rec.ProblemID, rec.ProblemName, rec.URL, dir, len(rec.TestCases)); err != nil {
			log.Warn("Failed to record history", zap.Error(err))
		}
	}

	if c.opts.AutoOpen && c.opener != nil {
		c.opener.OpenProblem(dir, c.opts.Naming, c.opts.StartNumber)
	}

	log.Info("Successfully created problem", zap.String("dir", dir))
	return true, nil
}
