package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/diffscope/internal/app"
	"github.com/tildaslashalef/diffscope/internal/format"
	"github.com/tildaslashalef/diffscope/internal/github"
	"github.com/tildaslashalef/diffscope/internal/loggy"
	"github.com/tildaslashalef/diffscope/internal/review"
	"github.com/tildaslashalef/diffscope/internal/tui"
	"github.com/tildaslashalef/diffscope/internal/utils"
)

// ReviewCommand returns the CLI command that runs a review
func ReviewCommand() *cli.Command {
	return &cli.Command{
		Name:  "review",
		Usage: "Review changes and report issues",
		Description: "Runs the detection pipeline over a diff and prints ranked issues.\n" +
			"The diff comes from a commit, a branch comparison, a GitHub pull request\n" +
			"or a diff file; by default the working repository's base branch is\n" +
			"compared to HEAD.",
		Action: reviewAction,
	}
}

func reviewAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	diffText, repoPath, baseRef, targetRef, err := resolveDiff(c, application)
	if err != nil {
		return err
	}

	template := c.String("template")
	if template == "" {
		template = application.Config.Review.DefaultTemplate
	}
	opts := review.Options{Template: template}

	rev, err := application.Review.ReviewSource(c.Context, diffText, repoPath, baseRef, targetRef, opts)
	if err != nil {
		return err
	}

	if c.Bool("interactive") {
		return tui.Run(rev)
	}

	return printReview(c, rev)
}

// resolveDiff picks the diff source from the flags
func resolveDiff(c *cli.Context, application *app.App) (diffText, repoPath, baseRef, targetRef string, err error) {
	prRef := c.String("pr")
	diffFile := c.String("diff-file")
	commit := c.String("commit")
	branch := c.String("branch")
	baseBranch := c.String("base-branch")
	if baseBranch == "" {
		baseBranch = application.Config.Git.DefaultBaseRef
	}

	switch {
	case prRef != "":
		owner, repo, number, perr := github.ParsePullRequestRef(prRef)
		if perr != nil {
			return "", "", "", "", perr
		}
		loggy.Info("Fetching pull request diff", "pr", prRef)
		diffText, err = application.GitHub.GetPullRequestDiff(c.Context, owner, repo, number)
		if err != nil {
			return "", "", "", "", err
		}
		return diffText, "", "", prRef, nil

	case diffFile != "":
		var data []byte
		if diffFile == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(diffFile)
		}
		if err != nil {
			return "", "", "", "", fmt.Errorf("reading diff: %w", err)
		}
		return string(data), "", "", "", nil

	case commit != "":
		repoPath, err = os.Getwd()
		if err != nil {
			return "", "", "", "", err
		}
		d, derr := application.Git.DiffCommit(repoPath, commit)
		if derr != nil {
			return "", "", "", "", derr
		}
		return d.Text, repoPath, "", commit, nil

	default:
		target := branch
		if target == "" {
			target = "HEAD"
		}
		repoPath, err = os.Getwd()
		if err != nil {
			return "", "", "", "", err
		}
		d, derr := application.Git.DiffRefs(repoPath, baseBranch, target)
		if derr != nil {
			return "", "", "", "", derr
		}
		return d.Text, repoPath, baseBranch, target, nil
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReview(c *cli.Context, rev *review.Review) error {
	if c.Bool("json") {
		return printJSON(rev)
	}

	md := format.Markdown(rev)

	renderer, err := format.NewRenderer(0)
	if err != nil {
		// Fall back to raw markdown when the terminal renderer is unavailable
		fmt.Println(md)
		return nil
	}

	out, err := renderer.Render(md)
	if err != nil {
		fmt.Println(md)
		return nil
	}
	fmt.Print(out)

	if rows := format.SummaryRows(&rev.Result); len(rows) > 0 {
		utils.PrintTable("Issues by severity", []string{"Severity", "Count"}, rows)
	}

	utils.PrintKeyValue("Review ID", rev.ID)
	return nil
}
