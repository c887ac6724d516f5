package detect

import (
	"strings"

	"github.com/tildaslashalef/diffscope/internal/diff"
)

// Category groups detectors; categories run in a fixed, documented order so
// that the final severity sort has a stable tie-break
type Category string

const (
	CategoryQuality       Category = "quality"
	CategorySecurity      Category = "security"
	CategoryBestPractice  Category = "best_practice"
	CategoryLogic         Category = "logic"
	CategoryDocumentation Category = "documentation"
	CategoryPerformance   Category = "performance"
)

// Options tunes the detector battery
type Options struct {
	ContextLines  int // Lines of surrounding context in snippets
	MaxLineLength int // Threshold for the long-line rule
}

// DefaultOptions returns the standard detector options
func DefaultOptions() Options {
	return Options{
		ContextLines:  3,
		MaxLineLength: 120,
	}
}

// CheckFunc scans one file's changes and returns zero or more findings.
// Implementations must be total: an unmatched pattern contributes nothing,
// and no input may cause an error or panic.
type CheckFunc func(file *diff.FileChange, opts Options) []Issue

// Detector is a single named detection rule
type Detector struct {
	Name     string
	Category Category
	Check    CheckFunc
}

// Registry returns the full detector battery in execution order:
// quality, security, best-practices, logical-bugs, documentation,
// performance. The order matters only for tie-break stability in the
// final severity sort.
func Registry() []Detector {
	return []Detector{
		{Name: "long-line", Category: CategoryQuality, Check: checkLongLines},
		{Name: "todo-marker", Category: CategoryQuality, Check: checkTodoMarkers},

		{Name: "hardcoded-secret", Category: CategorySecurity, Check: checkHardcodedSecrets},

		{Name: "loose-equality", Category: CategoryBestPractice, Check: checkLooseEquality},
		{Name: "unchecked-property", Category: CategoryBestPractice, Check: checkUncheckedPropertyAccess},
		{Name: "unchecked-index", Category: CategoryBestPractice, Check: checkUncheckedArrayIndex},

		{Name: "unconditional-loop", Category: CategoryLogic, Check: checkUnconditionalLoops},
		{Name: "assignment-in-conditional", Category: CategoryLogic, Check: checkAssignmentInConditional},
		{Name: "code-after-return", Category: CategoryLogic, Check: checkCodeAfterReturn},
		{Name: "implicit-coercion", Category: CategoryLogic, Check: checkImplicitStringCoercion},

		{Name: "missing-function-doc", Category: CategoryDocumentation, Check: checkMissingFunctionDoc},
		{Name: "missing-class-doc", Category: CategoryDocumentation, Check: checkMissingClassDoc},
		{Name: "incomplete-doc-block", Category: CategoryDocumentation, Check: checkIncompleteDocBlock},

		{Name: "uncached-loop-bound", Category: CategoryPerformance, Check: checkUncachedLoopBound},
		{Name: "nested-loop", Category: CategoryPerformance, Check: checkNestedLoops},
		{Name: "sync-io", Category: CategoryPerformance, Check: checkSyncIO},
		{Name: "inefficient-concat", Category: CategoryPerformance, Check: checkInefficientConcatenation},
		{Name: "memoization-candidate", Category: CategoryPerformance, Check: checkMemoizationCandidates},
	}
}

// Run executes the full battery against one file, concatenating findings
// in registry order
func Run(file *diff.FileChange, opts Options) []Issue {
	var issues []Issue
	for _, d := range Registry() {
		issues = append(issues, d.Check(file, opts)...)
	}
	return issues
}

// scriptExtensions are the extensions the JavaScript/TypeScript-specific
// rules apply to
var scriptExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".mjs": true,
	".cjs": true,
	".vue": true,
}

func isScriptFile(file *diff.FileChange) bool {
	return scriptExtensions[file.Extension()]
}

// nearbyContents returns the contents of all recorded changes whose line
// number falls within the window around the given line, excluding the line
// itself. Deletions and context lines count as evidence too.
func nearbyContents(file *diff.FileChange, line, window int) []string {
	var out []string
	for _, c := range file.Changes {
		if c.LineNumber == line {
			continue
		}
		if c.LineNumber >= line-window && c.LineNumber <= line+window {
			out = append(out, c.Content)
		}
	}
	return out
}

func anyContains(lines []string, needles ...string) bool {
	for _, l := range lines {
		for _, n := range needles {
			if strings.Contains(l, n) {
				return true
			}
		}
	}
	return false
}
