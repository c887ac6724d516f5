package diff

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	headerRe = regexp.MustCompile(`^diff --git a/(.+) b/(.+)$`)
	hunkRe   = regexp.MustCompile(`^@@ -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@`)
)

// Parse converts a unified-diff string into an ordered sequence of file
// changes with old/new line numbers tracked across hunks.
//
// Blocks whose header does not match the `a/<old> b/<new>` form (binary
// sections, malformed input) are dropped silently. Parse never fails; an
// empty or unrecognizable diff yields an empty slice.
func Parse(diffText string) []FileChange {
	var files []FileChange

	for _, block := range splitFileBlocks(diffText) {
		if file, ok := parseFileBlock(block); ok {
			files = append(files, file)
		}
	}

	return files
}

// splitFileBlocks splits the diff on per-file `diff --git` boundaries,
// discarding any preamble before the first boundary
func splitFileBlocks(diffText string) []string {
	var blocks []string
	var current []string

	for _, line := range strings.Split(diffText, "\n") {
		if strings.HasPrefix(line, "diff --git ") {
			if current != nil {
				blocks = append(blocks, strings.Join(current, "\n"))
			}
			current = []string{line}
			continue
		}
		if current != nil {
			current = append(current, line)
		}
	}
	if current != nil {
		blocks = append(blocks, strings.Join(current, "\n"))
	}

	return blocks
}

func parseFileBlock(block string) (FileChange, bool) {
	lines := strings.Split(block, "\n")
	if len(lines) == 0 {
		return FileChange{}, false
	}

	m := headerRe.FindStringSubmatch(lines[0])
	if m == nil {
		return FileChange{}, false
	}

	file := FileChange{
		OldFileName: m[1],
		FileName:    m[2],
		RawDiff:     block,
	}

	var cursor hunkCursor
	for _, line := range lines[1:] {
		switch {
		case strings.HasPrefix(line, "new file mode"):
			file.IsNewFile = true

		case strings.HasPrefix(line, "deleted file mode"):
			file.IsDeleted = true

		case strings.HasPrefix(line, "@@"):
			if h := hunkRe.FindStringSubmatch(line); h != nil {
				oldStart, _ := strconv.Atoi(h[1])
				newStart, _ := strconv.Atoi(h[2])
				cursor.reset(oldStart, newStart)
			}

		case isMetadataLine(line):
			// index lines, +++/--- markers and friends carry no content

		case strings.HasPrefix(line, "+"):
			file.Changes = append(file.Changes, LineChange{
				Type:       LineAddition,
				LineNumber: cursor.addition(),
				Content:    line[1:],
			})
			file.Additions++

		case strings.HasPrefix(line, "-"):
			file.Changes = append(file.Changes, LineChange{
				Type:       LineDeletion,
				LineNumber: cursor.deletion(),
				Content:    line[1:],
			})
			file.Deletions++

		case line != "":
			content := line
			if strings.HasPrefix(content, " ") {
				content = content[1:]
			}
			file.Changes = append(file.Changes, LineChange{
				Type:       LineContext,
				LineNumber: cursor.context(),
				Content:    content,
			})
		}
	}

	return file, true
}

// isMetadataLine reports whether the line is diff bookkeeping that produces
// no LineChange and advances no counters
func isMetadataLine(line string) bool {
	switch {
	case strings.HasPrefix(line, "+++"),
		strings.HasPrefix(line, "---"),
		strings.HasPrefix(line, "index "),
		strings.HasPrefix(line, "similarity index"),
		strings.HasPrefix(line, "rename from"),
		strings.HasPrefix(line, "rename to"),
		strings.HasPrefix(line, "old mode"),
		strings.HasPrefix(line, "new mode"),
		strings.HasPrefix(line, "Binary files"),
		strings.HasPrefix(line, `\ No newline`):
		return true
	}
	return false
}
