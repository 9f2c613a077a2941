package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pevans/cfprep/problem"
	"github.com/pevans/cfprep/receiver"
	"github.com/pevans/cfprep/templates"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// HandleServe runs the receiver until SIGINT or SIGTERM.
func (c *Command) HandleServe(ctx *cli.Context) error {
	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return err
	}
	if addr := ctx.String("addr"); addr != "" {
		cfg.Server.Address = addr
	}

	tmpl, err := templates.Load(cfg.TemplateDirectory, c.logger)
	if err != nil {
		return err
	}
	cr := c.newCreatorWith(cfg, tmpl)

	opts := receiver.Options{
		Address:      cfg.Server.Address,
		SaveLastHTML: cfg.Server.SaveLastHTML,
		Templates:    tmpl,
	}
	if cfg.AutoDownload {
		opts.Fetcher = problem.NewFetcher("", 0)
	}
	server := receiver.NewServer(cr, opts, c.logger)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c.logger.Info("Waiting for problems from the browser extension",
		zap.String("endpoint", "http://"+cfg.Server.Address+"/receive"),
		zap.String("output", cfg.OutputDirectory))
	return server.Run(runCtx)
}
