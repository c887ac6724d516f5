package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/diffscope/internal/detect"
)

func TestSortIssuesStable(t *testing.T) {
	issues := []detect.Issue{
		{Severity: detect.SeverityMinor, Title: "minor-1"},
		{Severity: detect.SeverityCritical, Title: "critical-1"},
		{Severity: detect.SeverityMajor, Title: "major-1"},
		{Severity: detect.SeverityInfo, Title: "info-1"},
		{Severity: detect.SeverityCritical, Title: "critical-2"},
	}

	sortIssues(issues)

	titles := make([]string, len(issues))
	for i, issue := range issues {
		titles[i] = issue.Title
	}

	// Ties keep their emission order: critical-1 stays ahead of critical-2
	assert.Equal(t, []string{"critical-1", "critical-2", "major-1", "minor-1", "info-1"}, titles)
}

func TestCountBySeverity(t *testing.T) {
	r := Result{Issues: []detect.Issue{
		{Severity: detect.SeverityCritical},
		{Severity: detect.SeverityMinor},
		{Severity: detect.SeverityMinor},
	}}

	counts := r.CountBySeverity()
	require.Len(t, counts, 2)
	assert.Equal(t, 1, counts[detect.SeverityCritical])
	assert.Equal(t, 2, counts[detect.SeverityMinor])
}
