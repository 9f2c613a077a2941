package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := cli.NewApp()
	app.Name = "cfprep"
	app.Usage = "Create local workspaces for Codeforces problems"
	app.Version = "0.3.0"

	cmd := newCommand()
	app.Before = cmd.Init
	app.After = cmd.Close
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "The path to the config file (yaml format) (CFPREP_CONFIG)",
			Value:       getEnv("CFPREP_CONFIG", ""),
			DefaultText: "~/.cfprep/config.yaml",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
		&cli.BoolFlag{
			Name:  "release",
			Usage: "Use JSON production logging",
		},
		&cli.BoolFlag{
			Name:  "silent",
			Usage: "Disable logging",
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:    "serve",
			Aliases: []string{"s", "run"},
			Usage:   "Receive problem pages from the browser extension",
			Action:  cmd.HandleServe,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "addr",
					Aliases: []string{"a"},
					Usage:   "Listen address, overrides server.address",
				},
			},
		},
		{
			Name:      "create",
			Usage:     "Download a problem and create its workspace",
			ArgsUsage: "ID|URL|CONTEST/LETTER",
			Action:    cmd.HandleCreate,
		},
		{
			Name:      "parse",
			Usage:     "Print the problem id for an id, URL or contest/letter",
			ArgsUsage: "INPUT",
			Action:    cmd.HandleParse,
		},
		{
			Name:   "templates",
			Usage:  "List the loaded templates",
			Action: cmd.HandleTemplates,
		},
		{
			Name:   "history",
			Usage:  "List created workspaces, newest first",
			Action: cmd.HandleHistory,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "limit",
					Aliases: []string{"n"},
					Usage:   "Maximum number of entries (0 for all)",
					Value:   20,
				},
			},
		},
		{
			Name:   "init",
			Usage:  "Write a default config file and templates",
			Action: cmd.HandleInit,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "force",
					Usage: "Overwrite existing files",
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalln(err)
	}
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
