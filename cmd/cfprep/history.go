package main

import (
	"fmt"

	"github.com/pevans/cfprep/templates"
	"github.com/urfave/cli/v3"
)

// HandleHistory lists created workspaces.
func (c *Command) HandleHistory(ctx *cli.Context) error {
	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return err
	}
	if cfg.History.DSN == "" {
		return fmt.Errorf("history is disabled (history.dsn is empty)")
	}

	store := c.openHistory(cfg)
	if store == nil {
		return fmt.Errorf("failed to open history database %s", cfg.History.DSN)
	}

	entries, err := store.List(ctx.Int("limit"))
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No problems created yet.")
		return nil
	}

	fmt.Printf("%-10s %-19s %-5s %-40s %s\n", "ID", "CREATED", "TESTS", "NAME", "DIRECTORY")
	fmt.Println("----------------------------------------------------------------------------------------------------")
	for _, entry := range entries {
		fmt.Printf("%-10s %-19s %-5d %-40s %s\n",
			entry.ProblemID,
			entry.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			entry.TestCaseCount,
			truncate(entry.ProblemName, 40),
			entry.Directory,
		)
	}
	return nil
}

// truncate shortens s to at most width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// HandleTemplates lists the loaded templates.
func (c *Command) HandleTemplates(ctx *cli.Context) error {
	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return err
	}

	set, err := templates.Load(cfg.TemplateDirectory, c.logger)
	if err != nil {
		return err
	}

	names := set.Names()
	if len(names) == 0 {
		fmt.Printf("No templates in %s\n", cfg.TemplateDirectory)
		return nil
	}

	want := map[string]bool{
		templates.SolutionTemplate(cfg.DefaultLanguage): true,
		templates.MetadataTemplate:                      true,
	}
	for _, name := range names {
		marker := " "
		if want[name] {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, name)
	}
	return nil
}
