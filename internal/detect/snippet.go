package detect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tildaslashalef/diffscope/internal/diff"
)

// Snippet formats a context window around the flagged line: up to
// opts.ContextLines nearest recorded changes strictly before and after it by
// line number, with a line-number gutter, a > marker on the flagged line and
// a +/-/space change indicator. Missing neighbors are simply omitted.
func Snippet(file *diff.FileChange, line int, opts Options) string {
	return snippetWith(file, line, opts, nil)
}

// snippetWith renders the context window, applying transform (when non-nil)
// to the flagged line's content. Used to mask secret literals.
func snippetWith(file *diff.FileChange, line int, opts Options, transform func(string) string) string {
	sorted := make([]diff.LineChange, len(file.Changes))
	copy(sorted, file.Changes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LineNumber < sorted[j].LineNumber
	})

	var before, after []diff.LineChange
	var flagged *diff.LineChange

	for i := range sorted {
		c := sorted[i]
		switch {
		case c.LineNumber < line:
			before = append(before, c)
		case c.LineNumber > line:
			after = append(after, c)
		case flagged == nil || c.Type == diff.LineAddition:
			// Prefer the addition when a deletion shares the number
			flagged = &sorted[i]
		}
	}

	if len(before) > opts.ContextLines {
		before = before[len(before)-opts.ContextLines:]
	}
	if len(after) > opts.ContextLines {
		after = after[:opts.ContextLines]
	}

	var b strings.Builder
	for _, c := range before {
		writeSnippetLine(&b, c, false, nil)
	}
	if flagged != nil {
		writeSnippetLine(&b, *flagged, true, transform)
	}
	for _, c := range after {
		writeSnippetLine(&b, c, false, nil)
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeSnippetLine(b *strings.Builder, c diff.LineChange, flagged bool, transform func(string) string) {
	marker := "  "
	if flagged {
		marker = "> "
	}

	indicator := " "
	switch c.Type {
	case diff.LineAddition:
		indicator = "+"
	case diff.LineDeletion:
		indicator = "-"
	}

	content := c.Content
	if flagged && transform != nil {
		content = transform(content)
	}

	fmt.Fprintf(b, "%s%4d %s %s\n", marker, c.LineNumber, indicator, content)
}
