package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/diffscope/internal/detect"
	"github.com/tildaslashalef/diffscope/internal/review"
)

func sampleReview() *review.Review {
	return &review.Review{
		Name:      "wispy-dust",
		BaseRef:   "main",
		TargetRef: "HEAD",
		Result: review.Result{
			FilesChanged: 1,
			LinesAdded:   4,
			LinesRemoved: 1,
			Summary:      "Found 2 issue(s) in 1 file(s): 1 critical. Address these before merging.",
			Issues: []detect.Issue{
				{
					Severity:    detect.SeverityCritical,
					Title:       "Hardcoded credential",
					Description: "A credential literal is committed to source control.",
					Suggestion:  "Load secrets from the environment.",
					File:        "config.js",
					Line:        4,
					CodeSnippet: ">   4 + const password = \"***\";\n",
					Language:    "JavaScript",
				},
				{
					Severity: detect.SeverityMinor,
					Title:    "Line exceeds maximum length",
					File:     "config.js",
					Line:     9,
				},
			},
		},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleReview())

	assert.Contains(t, md, "# Review wispy-dust")
	assert.Contains(t, md, "Comparing `main` to `HEAD`")
	assert.Contains(t, md, "**1** file(s) changed")
	assert.Contains(t, md, "### 1. [CRITICAL] Hardcoded credential")
	assert.Contains(t, md, "`config.js:4`")
	assert.Contains(t, md, "```javascript")
	assert.Contains(t, md, "**Suggestion:** Load secrets from the environment.")
	assert.Contains(t, md, "### 2. [MINOR] Line exceeds maximum length")
}

func TestMarkdownNoIssues(t *testing.T) {
	rev := &review.Review{
		Name:   "calm-river",
		Result: review.Result{Summary: "No issues found. The changes look good."},
	}

	md := Markdown(rev)
	assert.Contains(t, md, "No issues found")
	assert.NotContains(t, md, "## Issues")
}

func TestRenderer(t *testing.T) {
	r, err := NewRenderer(80)
	require.NoError(t, err)

	out, err := r.Render("# Title\n\nSome *emphasis*.")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}

func TestPlainIssue(t *testing.T) {
	rev := sampleReview()
	out := PlainIssue(&rev.Result.Issues[0], 80)

	assert.Contains(t, out, "Hardcoded credential")
	assert.Contains(t, out, "config.js:4")
	assert.Contains(t, out, "Suggestion:")
}

func TestSummaryRows(t *testing.T) {
	rev := sampleReview()
	rows := SummaryRows(&rev.Result)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"critical", "1"}, rows[0])
	assert.Equal(t, []string{"minor", "1"}, rows[1])
}

func TestMarkdownLang(t *testing.T) {
	assert.Equal(t, "javascript", markdownLang("JavaScript"))
	assert.Equal(t, "", markdownLang("text"))
	assert.Equal(t, "", markdownLang(""))
	assert.True(t, !strings.Contains(markdownLang("Protocol Buffer"), " "))
}
