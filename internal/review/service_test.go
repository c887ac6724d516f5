package review

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/diffscope/internal/config"
	"github.com/tildaslashalef/diffscope/internal/detect"
	"github.com/tildaslashalef/diffscope/internal/loggy"
	"github.com/tildaslashalef/diffscope/internal/prompt"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Review: config.ReviewConfig{
			ContextLines:  3,
			MaxLineLength: 120,
		},
	}
}

func newTestReviewService() *Service {
	return NewService(nil, nil, prompt.NewStore(), newTestConfig(), loggy.NewNoopLogger())
}

const reviewDiff = `diff --git a/config.js b/config.js
@@ -1,2 +1,4 @@
 const env = process.env.NODE_ENV;
+const password = "hunter2";
+// TODO: read from vault
 module.exports = { env };
diff --git a/loop.js b/loop.js
@@ -1,1 +1,4 @@
 'use strict';
+while (true) {
+  poll();
+}
`

func TestReviewDiff(t *testing.T) {
	svc := newTestReviewService()

	result := svc.ReviewDiff(reviewDiff, Options{})

	assert.Equal(t, 2, result.FilesChanged)
	assert.Equal(t, 5, result.LinesAdded)
	assert.Equal(t, 0, result.LinesRemoved)
	require.NotEmpty(t, result.Issues)

	counts := result.CountBySeverity()
	assert.Equal(t, 1, counts[detect.SeverityCritical], "hardcoded password")
	assert.Equal(t, 1, counts[detect.SeverityMajor], "unconditional loop")
	assert.Equal(t, 1, counts[detect.SeverityInfo], "todo marker")
}

func TestReviewDiffSeverityOrdering(t *testing.T) {
	svc := newTestReviewService()

	result := svc.ReviewDiff(reviewDiff, Options{})

	weights := make([]int, len(result.Issues))
	for i, issue := range result.Issues {
		weights[i] = issue.Severity.Weight()
	}
	for i := 1; i < len(weights); i++ {
		assert.GreaterOrEqual(t, weights[i-1], weights[i],
			"issues must be ordered by severity weight descending")
	}
}

func TestReviewDiffEmptyInput(t *testing.T) {
	svc := newTestReviewService()

	for _, input := range []string{"", "not a diff at all"} {
		result := svc.ReviewDiff(input, Options{})
		assert.Zero(t, result.FilesChanged)
		assert.Empty(t, result.Issues)
		assert.Equal(t, "No issues found. The changes look good.", result.Summary)
	}

	// A header with no hunks is still a file entry, just an issue-free one.
	result := svc.ReviewDiff("diff --git a/x b/x", Options{})
	assert.Equal(t, 1, result.FilesChanged)
	assert.Empty(t, result.Issues)
	assert.Equal(t, "No issues found. The changes look good.", result.Summary)
}

func TestReviewDiffFilterOptions(t *testing.T) {
	svc := newTestReviewService()

	result := svc.ReviewDiff(reviewDiff, Options{Extensions: []string{".go"}})
	assert.Zero(t, result.FilesChanged)

	result = svc.ReviewDiff(reviewDiff, Options{ExcludePatterns: []string{"loop"}})
	assert.Equal(t, 1, result.FilesChanged)
}

func TestReviewText(t *testing.T) {
	svc := newTestReviewService()

	rev, err := svc.ReviewText(context.Background(), reviewDiff, Options{Template: "security"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rev.ID, "rev_"), "review ID should carry the rev prefix")
	assert.NotEmpty(t, rev.Name)
	assert.Equal(t, "security", rev.Template)
	assert.Equal(t, 2, rev.Result.FilesChanged)
}

func TestReviewTextUnknownTemplateFallsBack(t *testing.T) {
	svc := newTestReviewService()

	rev, err := svc.ReviewText(context.Background(), reviewDiff, Options{Template: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, prompt.DefaultTemplate, rev.Template)
}

func TestHistoryDisabledWithoutDatabase(t *testing.T) {
	svc := newTestReviewService()

	_, err := svc.History(context.Background(), 10)
	assert.Error(t, err)

	_, err = svc.GetReview(context.Background(), "rev_123")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		issues   []detect.Issue
		files    int
		expected string
	}{
		{
			name:     "no issues",
			expected: "No issues found. The changes look good.",
		},
		{
			name: "critical and major",
			issues: []detect.Issue{
				{Severity: detect.SeverityCritical},
				{Severity: detect.SeverityMajor},
				{Severity: detect.SeverityMinor},
			},
			files:    2,
			expected: "Found 3 issue(s) in 2 file(s): 1 critical, 1 major. Address these before merging.",
		},
		{
			name: "only low severity",
			issues: []detect.Issue{
				{Severity: detect.SeverityMinor},
				{Severity: detect.SeverityInfo},
			},
			files:    1,
			expected: "Found 2 issue(s) in 1 file(s), none requiring immediate attention.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, summarize(tt.issues, tt.files))
		})
	}
}
