// Package git produces unified diff text from local repositories
package git

import "time"

// Diff is the raw unified diff between two points in history, plus
// per-file change statistics
type Diff struct {
	Text      string     `json:"text"`
	BaseRef   string     `json:"base_ref"`
	TargetRef string     `json:"target_ref"`
	Stats     []FileStat `json:"stats,omitempty"`
	Commit    *Commit    `json:"commit,omitempty"`
}

// FileStat summarizes the change volume of a single file
type FileStat struct {
	Name      string `json:"name"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// Commit describes the commit a single-commit diff was taken from
type Commit struct {
	Hash      string    `json:"hash"`
	Author    string    `json:"author"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
