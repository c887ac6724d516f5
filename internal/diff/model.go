// Package diff provides unified-diff parsing and file filtering for diffscope
package diff

import (
	"path/filepath"
	"strings"
)

// LineType classifies a single line inside a hunk
type LineType string

const (
	// LineAddition is a line present only in the new file
	LineAddition LineType = "addition"
	// LineDeletion is a line present only in the old file
	LineDeletion LineType = "deletion"
	// LineContext is a line present in both file versions
	LineContext LineType = "context"
)

// LineChange represents one line inside a hunk.
//
// LineNumber refers to the new file for additions and to the old file for
// deletions and context lines. Two independent counters track positions per
// hunk, both reset at each @@ header to the hunk's declared offsets.
type LineChange struct {
	Type       LineType `json:"type"`
	LineNumber int      `json:"line_number"`
	Content    string   `json:"content"`
}

// FileChange represents one file touched by a diff
type FileChange struct {
	FileName    string       `json:"file_name"`
	OldFileName string       `json:"old_file_name"`
	IsNewFile   bool         `json:"is_new_file"`
	IsDeleted   bool         `json:"is_deleted"`
	Additions   int          `json:"additions"`
	Deletions   int          `json:"deletions"`
	Changes     []LineChange `json:"changes"`
	RawDiff     string       `json:"raw_diff,omitempty"`
}

// AddedLines returns the addition lines of the file in diff order
func (f *FileChange) AddedLines() []LineChange {
	var out []LineChange
	for _, c := range f.Changes {
		if c.Type == LineAddition {
			out = append(out, c)
		}
	}
	return out
}

// Extension returns the lower-cased file extension including the dot
func (f *FileChange) Extension() string {
	return strings.ToLower(filepath.Ext(f.FileName))
}

// hunkCursor tracks the old/new line counters while consuming a file block.
// Both counters reset at each hunk header to the declared starting offsets.
type hunkCursor struct {
	oldLine int
	newLine int
}

func (c *hunkCursor) reset(oldStart, newStart int) {
	c.oldLine = oldStart
	c.newLine = newStart
}

// addition consumes an added line and returns its new-file position
func (c *hunkCursor) addition() int {
	n := c.newLine
	c.newLine++
	return n
}

// deletion consumes a removed line and returns its old-file position
func (c *hunkCursor) deletion() int {
	n := c.oldLine
	c.oldLine++
	return n
}

// context consumes a context line, advancing both counters
func (c *hunkCursor) context() int {
	n := c.oldLine
	c.oldLine++
	c.newLine++
	return n
}
