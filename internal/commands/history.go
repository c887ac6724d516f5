package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/diffscope/internal/app"
	"github.com/tildaslashalef/diffscope/internal/format"
	"github.com/tildaslashalef/diffscope/internal/utils"
)

// HistoryCommand returns the CLI command for browsing stored reviews
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List past reviews",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of reviews to list",
				Value:   20,
			},
		},
		Action: historyAction,
		Subcommands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show a stored review with its issues",
				ArgsUsage: "<review-id>",
				Action:    historyShowAction,
			},
		},
	}
}

func historyAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	reviews, err := application.Review.History(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}

	if len(reviews) == 0 {
		utils.PrintInfo("No reviews stored yet")
		return nil
	}

	if c.Bool("json") {
		return printJSON(reviews)
	}

	rows := make([][]string, len(reviews))
	for i, rev := range reviews {
		target := rev.TargetRef
		if target == "" {
			target = "(diff input)"
		}
		rows[i] = []string{
			rev.ID,
			rev.Name,
			target,
			fmt.Sprintf("%d", rev.Result.FilesChanged),
			rev.CreatedAt.Format("2006-01-02 15:04"),
		}
	}

	utils.PrintTable("Review history",
		[]string{"ID", "Name", "Target", "Files", "Created"}, rows)
	return nil
}

func historyShowAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("review ID is required")
	}

	rev, err := application.Review.GetReview(c.Context, id)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		return printJSON(rev)
	}

	md := format.Markdown(rev)
	renderer, err := format.NewRenderer(0)
	if err != nil {
		fmt.Println(md)
		return nil
	}

	out, err := renderer.Render(md)
	if err != nil {
		fmt.Println(md)
		return nil
	}
	fmt.Print(out)
	return nil
}
