package commands

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/diffscope/internal/app"
	"github.com/tildaslashalef/diffscope/internal/loggy"
	"github.com/tildaslashalef/diffscope/internal/mcp"
)

// ServeCommand returns the CLI command that runs the JSON-RPC tool server
func ServeCommand(version string) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Expose the review pipeline as JSON-RPC tools",
		Description: "Serves the review_diff and template tools over newline-delimited\n" +
			"JSON-RPC 2.0, either on stdio or a TCP address.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "stdio",
				Usage: "Serve a single session on stdin/stdout",
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "TCP address to listen on (overrides the configured address)",
			},
		},
		Action: func(c *cli.Context) error {
			application, err := app.FromContext(c)
			if err != nil {
				return err
			}

			serverCfg := application.Config.Server
			if addr := c.String("addr"); addr != "" {
				serverCfg.Addr = addr
			}

			server := mcp.NewServer(serverCfg, application.Review, application.Templates,
				version, loggy.GetGlobalLogger())

			// No address configured means stdio, matching the config docs.
			if c.Bool("stdio") || serverCfg.Addr == "" {
				return server.ServeStdio(os.Stdin, os.Stdout)
			}
			return server.ListenAndServe()
		},
	}
}
