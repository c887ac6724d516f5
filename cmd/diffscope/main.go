package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/diffscope/internal/app"
	"github.com/tildaslashalef/diffscope/internal/commands"
)

// Version information - populated at build time
var (
	Version    = "dev"
	BuildTime  = "unknown"
	CommitHash = "unknown"
)

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "commit",
		Aliases: []string{"c"},
		Usage:   "Review changes introduced by a specific commit",
	},
	&cli.StringFlag{
		Name:    "branch",
		Aliases: []string{"b"},
		Usage:   "Target branch to review (compared against base-branch)",
	},
	&cli.StringFlag{
		Name:    "base-branch",
		Aliases: []string{"bb"},
		Usage:   "Base branch for comparison (default comes from configuration)",
	},
	&cli.StringFlag{
		Name:  "pr",
		Usage: "Review a GitHub pull request (owner/repo#number)",
	},
	&cli.StringFlag{
		Name:    "diff-file",
		Aliases: []string{"f"},
		Usage:   "Review a unified diff from a file ('-' reads stdin)",
	},
	&cli.StringFlag{
		Name:    "template",
		Aliases: []string{"t"},
		Usage:   "Review template to use",
	},
	&cli.BoolFlag{
		Name:  "json",
		Usage: "Emit results as JSON",
	},
	&cli.BoolFlag{
		Name:    "interactive",
		Aliases: []string{"i"},
		Usage:   "Browse the results in the terminal UI",
	},
}

func main() {
	cliApp := &cli.App{
		Name:  "diffscope",
		Usage: "Deterministic code review for diffs",
		Description: "Diffscope parses unified diffs and runs a set of heuristic detectors\n" +
			"to flag quality, security, logic, documentation and performance issues.\n\n" +
			"When run without subcommands, diffscope reviews the current repository\n" +
			"(default action).",
		Version: Version,
		Compiled: func() time.Time {
			t, err := time.Parse(time.RFC3339, BuildTime)
			if err != nil {
				return time.Now()
			}
			return t
		}(),
		Flags: globalFlags,
		Before: func(c *cli.Context) error {
			application, err := app.New()
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			c.App.Metadata = map[string]interface{}{
				"app": application,
			}

			return nil
		},
		After: func(c *cli.Context) error {
			if application, ok := c.App.Metadata["app"].(*app.App); ok {
				return application.Shutdown()
			}
			return nil
		},
		Commands: []*cli.Command{
			commands.ReviewCommand(),
			commands.ServeCommand(Version),
			commands.HistoryCommand(),
			commands.TemplatesCommand(),
			commands.MigrateCommand(),
		},
		Action: func(c *cli.Context) error {
			// Default action is to run the review command
			return commands.ReviewCommand().Action(c)
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
