package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pevans/cfprep/problem"
	"github.com/urfave/cli/v3"
)

// HandleCreate downloads a problem page and creates its workspace.
func (c *Command) HandleCreate(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("usage: cfprep create ID|URL|CONTEST/LETTER")
	}
	input := ctx.Args().First()

	id, err := problem.ParseInput(input)
	if err != nil {
		return err
	}

	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return err
	}

	cr, err := c.newCreator(cfg)
	if err != nil {
		return err
	}

	fetchCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fetcher := problem.NewFetcher("", 0)
	var rec *problem.Record
	if problem.IsProblemURL(input) {
		rec, err = fetcher.Fetch(fetchCtx, input)
	} else {
		rec, err = fetcher.FetchByID(fetchCtx, id)
	}
	if err != nil {
		return err
	}

	ok, err := cr.Create(rec)
	if !ok {
		return fmt.Errorf("failed to create problem %s: %w", rec.ProblemID, err)
	}

	fmt.Printf("✓ Created problem: %s\n", rec.ProblemID)
	fmt.Printf("  Name: %s\n", rec.ProblemName)
	fmt.Printf("  Test cases: %d\n", len(rec.TestCases))
	return nil
}

// HandleParse prints the canonical id for its argument.
func (c *Command) HandleParse(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("usage: cfprep parse INPUT")
	}

	id, err := problem.ParseInput(ctx.Args().First())
	if err != nil {
		return err
	}

	fmt.Println(id)
	return nil
}
