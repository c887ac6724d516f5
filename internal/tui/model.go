// Package tui provides an interactive terminal browser for review results
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/tildaslashalef/diffscope/internal/detect"
	"github.com/tildaslashalef/diffscope/internal/review"
)

// Model is the bubbletea model for browsing a review's issues
type Model struct {
	review   *review.Review
	index    int
	viewport viewport.Model
	renderer *glamour.TermRenderer
	help     help.Model
	styles   Styles
	showHelp bool
	ready    bool
	width    int
	height   int
}

// NewModel creates a new TUI model for the given review
func NewModel(rev *review.Review) Model {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)

	vp := viewport.New(10, 10)

	return Model{
		review:   rev,
		viewport: vp,
		renderer: r,
		help:     help.New(),
		styles:   DefaultStyles(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		footerHeight := 2
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - headerHeight - footerHeight - 2
		m.ready = true
		m.setContent()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, Keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, Keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, Keys.NextIssue):
			if m.index < len(m.review.Result.Issues)-1 {
				m.index++
				m.setContent()
			}
			return m, nil

		case key.Matches(msg, Keys.PrevIssue):
			if m.index > 0 {
				m.index--
				m.setContent()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// setContent renders the current issue into the viewport
func (m *Model) setContent() {
	if !m.ready {
		return
	}

	issues := m.review.Result.Issues
	if len(issues) == 0 {
		m.viewport.SetContent(m.review.Result.Summary)
		return
	}

	issue := &issues[m.index]
	md := issueMarkdown(issue)

	rendered := md
	if m.renderer != nil {
		if out, err := m.renderer.Render(md); err == nil {
			rendered = out
		}
	}

	m.viewport.SetContent(rendered)
	m.viewport.GotoTop()
}

// issueMarkdown builds the detail markdown for one issue
func issueMarkdown(issue *detect.Issue) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", issue.Title)
	fmt.Fprintf(&b, "`%s:%d`\n\n", issue.File, issue.Line)
	if issue.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", issue.Description)
	}
	if issue.CodeSnippet != "" {
		fmt.Fprintf(&b, "```\n%s```\n\n", issue.CodeSnippet)
	}
	if issue.Suggestion != "" {
		fmt.Fprintf(&b, "**Suggestion:** %s\n", issue.Suggestion)
	}

	return b.String()
}

// View implements tea.Model
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	issues := m.review.Result.Issues

	title := m.styles.Title.Render(fmt.Sprintf("diffscope review %s", m.review.Name))

	var header string
	if len(issues) == 0 {
		header = lipgloss.JoinHorizontal(lipgloss.Center, title,
			m.styles.Subtle.Render("  no issues"))
	} else {
		issue := &issues[m.index]
		position := m.styles.Subtle.Render(
			fmt.Sprintf("  issue %d/%d  ", m.index+1, len(issues)))
		header = lipgloss.JoinHorizontal(lipgloss.Center, title, position,
			m.styles.SeverityBadge(issue.Severity))
	}

	body := m.styles.Viewport.Render(m.viewport.View())

	var footer string
	if m.showHelp {
		footer = m.help.FullHelpView(Keys.FullHelp())
	} else {
		footer = m.styles.StatusBar.Render(m.review.Result.Summary) + "\n" +
			m.help.ShortHelpView(Keys.ShortHelp())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Run starts the interactive browser for a review
func Run(rev *review.Review) error {
	p := tea.NewProgram(NewModel(rev), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
