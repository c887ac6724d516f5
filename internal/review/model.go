// Package review drives the diff review pipeline: parse, filter, detect,
// rank and summarize
package review

import (
	"sort"
	"time"

	"github.com/tildaslashalef/diffscope/internal/detect"
)

// Options controls a single review invocation
type Options struct {
	// Extensions keeps only files with one of these suffixes (empty = all)
	Extensions []string `json:"extensions,omitempty"`
	// ExcludePatterns drops files whose name contains any of these substrings
	ExcludePatterns []string `json:"exclude_patterns,omitempty"`
	// Template names the prompt template recorded with the review
	Template string `json:"template,omitempty"`
}

// Result is the aggregate output of one review invocation.
// It is immutable once produced.
type Result struct {
	FilesChanged int            `json:"files_changed"`
	LinesAdded   int            `json:"lines_added"`
	LinesRemoved int            `json:"lines_removed"`
	Issues       []detect.Issue `json:"issues"`
	Summary      string         `json:"summary"`
}

// Review is a persisted review session
type Review struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RepoPath  string    `json:"repo_path,omitempty"`
	BaseRef   string    `json:"base_ref,omitempty"`
	TargetRef string    `json:"target_ref,omitempty"`
	Template  string    `json:"template"`
	Result    Result    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// sortIssues orders issues by severity weight descending. The sort is
// stable: ties keep detector/file emission order.
func sortIssues(issues []detect.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity.Weight() > issues[j].Severity.Weight()
	})
}

// CountBySeverity returns the number of issues per severity
func (r *Result) CountBySeverity() map[detect.Severity]int {
	counts := make(map[detect.Severity]int)
	for _, issue := range r.Issues {
		counts[issue.Severity]++
	}
	return counts
}
