package main

import (
	"fmt"
	"path/filepath"

	"github.com/pevans/cfprep/config"
	"github.com/urfave/cli/v3"
)

// HandleInit writes a starter config file and the default templates.
func (c *Command) HandleInit(ctx *cli.Context) error {
	path := ctx.String("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	templateDir := filepath.Join(filepath.Dir(path), "templates")

	fmt.Println("Initializing cfprep...")
	fmt.Println()

	written, err := config.WriteDefault(path, templateDir, ctx.Bool("force"))
	if err != nil {
		fmt.Printf("  ✗ Failed: %v\n", err)
		return err
	}

	if written {
		fmt.Printf("  ✓ Config file: %s\n", path)
	} else {
		fmt.Printf("  Config file: %s (already exists)\n", path)
	}
	fmt.Printf("  ✓ Templates: %s\n", templateDir)
	return nil
}
