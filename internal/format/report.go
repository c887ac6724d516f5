// Package format renders review results for the terminal: a markdown
// report, a glamour-rendered rich view and plain colored output.
package format

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"

	"github.com/tildaslashalef/diffscope/internal/detect"
	"github.com/tildaslashalef/diffscope/internal/review"
)

// DefaultWrapWidth is the wrap width used when the terminal width is
// unknown
const DefaultWrapWidth = 100

var severityColors = map[detect.Severity]*color.Color{
	detect.SeverityCritical: color.New(color.FgRed, color.Bold),
	detect.SeverityMajor:    color.New(color.FgYellow, color.Bold),
	detect.SeverityMinor:    color.New(color.FgCyan),
	detect.SeverityInfo:     color.New(color.FgWhite, color.Faint),
}

// SeverityLabel returns the severity name colored for the terminal
func SeverityLabel(s detect.Severity) string {
	c, ok := severityColors[s]
	if !ok {
		return string(s)
	}
	return c.Sprint(strings.ToUpper(string(s)))
}

// Markdown builds a markdown report of a review
func Markdown(rev *review.Review) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Review %s\n\n", rev.Name)
	if rev.BaseRef != "" || rev.TargetRef != "" {
		fmt.Fprintf(&b, "Comparing `%s` to `%s`\n\n", rev.BaseRef, rev.TargetRef)
	}
	fmt.Fprintf(&b, "%s\n\n", rev.Result.Summary)
	fmt.Fprintf(&b, "**%d** file(s) changed, **%d** addition(s), **%d** deletion(s)\n",
		rev.Result.FilesChanged, rev.Result.LinesAdded, rev.Result.LinesRemoved)

	if len(rev.Result.Issues) == 0 {
		return b.String()
	}

	b.WriteString("\n## Issues\n")
	for i := range rev.Result.Issues {
		issue := &rev.Result.Issues[i]

		fmt.Fprintf(&b, "\n### %d. [%s] %s\n\n", i+1, strings.ToUpper(string(issue.Severity)), issue.Title)
		fmt.Fprintf(&b, "`%s:%d`\n\n", issue.File, issue.Line)
		if issue.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", issue.Description)
		}
		if issue.CodeSnippet != "" {
			lang := markdownLang(issue.Language)
			fmt.Fprintf(&b, "```%s\n%s```\n\n", lang, issue.CodeSnippet)
		}
		if issue.Suggestion != "" {
			fmt.Fprintf(&b, "**Suggestion:** %s\n", issue.Suggestion)
		}
	}

	return b.String()
}

// markdownLang maps a detected language name to a fence identifier
func markdownLang(language string) string {
	switch language {
	case "", "text":
		return ""
	default:
		return strings.ToLower(strings.ReplaceAll(language, " ", "-"))
	}
}

// Renderer renders markdown reports with terminal styling
type Renderer struct {
	renderer *glamour.TermRenderer
}

// NewRenderer creates a renderer wrapping at the given width. A width
// of zero uses the default.
func NewRenderer(width int) (*Renderer, error) {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}

	return &Renderer{renderer: r}, nil
}

// Render renders a markdown report for the terminal
func (r *Renderer) Render(markdown string) (string, error) {
	out, err := r.renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// PlainIssue renders a single issue as plain colored text
func PlainIssue(issue *detect.Issue, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", SeverityLabel(issue.Severity), issue.Title)
	fmt.Fprintf(&b, "  %s:%d\n", issue.File, issue.Line)
	if issue.Description != "" {
		b.WriteString(indent(wordwrap.String(issue.Description, width-2), "  "))
		b.WriteString("\n")
	}
	if issue.CodeSnippet != "" {
		b.WriteString(indent(strings.TrimRight(issue.CodeSnippet, "\n"), "  | "))
		b.WriteString("\n")
	}
	if issue.Suggestion != "" {
		b.WriteString(indent(wordwrap.String("Suggestion: "+issue.Suggestion, width-2), "  "))
		b.WriteString("\n")
	}
	return b.String()
}

// SummaryRows builds table rows summarizing issue counts per severity
func SummaryRows(result *review.Result) [][]string {
	counts := result.CountBySeverity()

	var rows [][]string
	for _, s := range []detect.Severity{
		detect.SeverityCritical,
		detect.SeverityMajor,
		detect.SeverityMinor,
		detect.SeverityInfo,
	} {
		if counts[s] > 0 {
			rows = append(rows, []string{string(s), fmt.Sprintf("%d", counts[s])})
		}
	}
	return rows
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
