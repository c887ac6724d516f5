package commands

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/diffscope/internal/app"
	"github.com/tildaslashalef/diffscope/internal/utils"
)

// TemplatesCommand returns the CLI command for inspecting review templates
func TemplatesCommand() *cli.Command {
	return &cli.Command{
		Name:   "templates",
		Usage:  "List available review templates",
		Action: templatesAction,
		Subcommands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show a template's preamble and categories",
				ArgsUsage: "<name>",
				Action:    templatesShowAction,
			},
		},
	}
}

func templatesAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	templates := application.Templates.List()

	if c.Bool("json") {
		return printJSON(templates)
	}

	rows := make([][]string, len(templates))
	for i, tmpl := range templates {
		categories := "all"
		if len(tmpl.Categories) > 0 {
			categories = strings.Join(tmpl.Categories, ", ")
		}
		rows[i] = []string{tmpl.Name, tmpl.Description, categories}
	}

	utils.PrintTable("Review templates",
		[]string{"Name", "Description", "Categories"}, rows)
	return nil
}

func templatesShowAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("template name is required")
	}

	tmpl, err := application.Templates.Get(name)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		return printJSON(tmpl)
	}

	utils.PrintHeading(tmpl.Name)
	utils.PrintKeyValue("Description", tmpl.Description)
	if len(tmpl.Categories) > 0 {
		utils.PrintKeyValue("Categories", strings.Join(tmpl.Categories, ", "))
	}
	utils.PrintDivider()
	fmt.Println(tmpl.Preamble)
	return nil
}
