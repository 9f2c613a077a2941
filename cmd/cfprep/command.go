package main

import (
	"fmt"

	"github.com/pevans/cfprep/config"
	"github.com/pevans/cfprep/creator"
	"github.com/pevans/cfprep/history"
	"github.com/pevans/cfprep/opener"
	"github.com/pevans/cfprep/templates"
	"github.com/pevans/cfprep/workspace"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Command holds the state shared by the subcommands.
type Command struct {
	logger  *zap.Logger
	history *history.Store
}

func newCommand() *Command {
	return &Command{logger: zap.NewNop()}
}

// Init sets up logging from the global flags.
func (c *Command) Init(ctx *cli.Context) error {
	logger, err := initLogger(ctx.Bool("silent"), ctx.Bool("release"), ctx.Bool("debug"))
	if err != nil {
		return fmt.Errorf("init logger failed: %w", err)
	}
	c.logger = logger
	return nil
}

// Close releases what the subcommand opened.
func (c *Command) Close(ctx *cli.Context) error {
	if c.history != nil {
		c.history.Close()
	}
	_ = c.logger.Sync()
	return nil
}

func initLogger(silent, release, debug bool) (*zap.Logger, error) {
	if silent {
		return zap.NewNop(), nil
	}

	if release {
		return zap.NewProduction()
	}

	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if !debug {
		config.Level.SetLevel(zap.InfoLevel)
	}
	return config.Build()
}

// loadConfig loads the config file named by --config, or the default path.
func (c *Command) loadConfig(ctx *cli.Context) (*config.Config, error) {
	path := ctx.String("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w (run `cfprep init` to create a config file at %s)", err, path)
	}
	c.logger.Debug("Loaded config", zap.String("path", path))
	return cfg, nil
}

// newCreator wires templates, materializer, opener and history into a
// creator for cfg.
func (c *Command) newCreator(cfg *config.Config) (*creator.Creator, error) {
	tmpl, err := templates.Load(cfg.TemplateDirectory, c.logger)
	if err != nil {
		return nil, err
	}
	return c.newCreatorWith(cfg, tmpl), nil
}

func (c *Command) newCreatorWith(cfg *config.Config, tmpl *templates.Set) *creator.Creator {
	m := workspace.New(cfg.OutputDirectory, cfg.FileNaming, tmpl, workspace.Options{
		StartNumber:   cfg.TestCases.StartNumber,
		WriteMetadata: cfg.CreateMetadata,
	}, c.logger)

	var fileOpener creator.FileOpener
	if cfg.AutoOpenFiles {
		o, err := opener.New(cfg.Editor, c.logger)
		if err != nil {
			c.logger.Warn("Editor disabled", zap.Error(err))
		} else {
			fileOpener = o
		}
	}

	var recorder creator.Recorder
	if store := c.openHistory(cfg); store != nil {
		recorder = store
	}

	return creator.New(m, fileOpener, recorder, creator.OptionsFromConfig(cfg), c.logger)
}

// openHistory opens the history store, or returns nil if it is disabled or
// cannot be opened.
func (c *Command) openHistory(cfg *config.Config) *history.Store {
	if c.history != nil {
		return c.history
	}
	if cfg.History.DSN == "" {
		return nil
	}

	store, err := history.NewStore(cfg.History.DSN)
	if err != nil {
		c.logger.Warn("History disabled", zap.String("dsn", cfg.History.DSN), zap.Error(err))
		return nil
	}
	c.history = store
	return store
}
