package detect

import (
	"fmt"
	"regexp"

	"github.com/tildaslashalef/diffscope/internal/diff"
)

var todoRe = regexp.MustCompile(`(?i)\b(TODO|FIXME)\b`)

// checkLongLines flags added lines that exceed the configured maximum length
func checkLongLines(file *diff.FileChange, opts Options) []Issue {
	var issues []Issue

	for _, c := range file.AddedLines() {
		if len(c.Content) <= opts.MaxLineLength {
			continue
		}

		issues = append(issues, Issue{
			Severity: SeverityMinor,
			Title:    "Line exceeds maximum length",
			Description: fmt.Sprintf("Line %d is %d characters long, which exceeds the %d character limit.",
				c.LineNumber, len(c.Content), opts.MaxLineLength),
			Suggestion:  "Break the line into smaller parts or extract intermediate variables.",
			File:        file.FileName,
			Line:        c.LineNumber,
			CodeSnippet: Snippet(file, c.LineNumber, opts),
			Language:    DetectLanguage(file.FileName),
		})
	}

	return issues
}

// checkTodoMarkers flags TODO and FIXME markers left in added lines
func checkTodoMarkers(file *diff.FileChange, opts Options) []Issue {
	var issues []Issue

	for _, c := range file.AddedLines() {
		m := todoRe.FindString(c.Content)
		if m == "" {
			continue
		}

		issues = append(issues, Issue{
			Severity:    SeverityInfo,
			Title:       fmt.Sprintf("%s marker found", m),
			Description: fmt.Sprintf("Line %d contains a %s marker. Unresolved markers tend to outlive their authors' intentions.", c.LineNumber, m),
			Suggestion:  "Resolve the marker or track it in the issue tracker before merging.",
			File:        file.FileName,
			Line:        c.LineNumber,
			CodeSnippet: Snippet(file, c.LineNumber, opts),
			Language:    DetectLanguage(file.FileName),
		})
	}

	return issues
}
