// Package detect implements the heuristic issue detectors that scan parsed
// diff changes for review findings.
//
// Every detector is a pure pattern test over changed lines with limited local
// context. None of them understand syntax trees or control flow; they will
// both over- and under-report by design, and make no claim beyond pattern
// matching.
package detect

import "time"

// Severity ranks how urgent an issue is
type Severity string

const (
	// SeverityCritical must be addressed before merging
	SeverityCritical Severity = "critical"
	// SeverityMajor is a likely bug or dangerous pattern
	SeverityMajor Severity = "major"
	// SeverityMinor is a quality or style concern
	SeverityMinor Severity = "minor"
	// SeverityInfo is informational only
	SeverityInfo Severity = "info"
)

// Weight returns the ordering rank of the severity; higher is more urgent
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityMajor:
		return 3
	case SeverityMinor:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Issue represents a single review finding.
// Issues are created once by a detector and never mutated afterwards.
type Issue struct {
	ID          string    `json:"id,omitempty"`
	ReviewID    string    `json:"review_id,omitempty"`
	Severity    Severity  `json:"severity"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Suggestion  string    `json:"suggestion,omitempty"`
	File        string    `json:"file"`
	Line        int       `json:"line,omitempty"`
	CodeSnippet string    `json:"code_snippet,omitempty"`
	Language    string    `json:"language,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}
