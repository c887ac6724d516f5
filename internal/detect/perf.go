package detect

import (
	"fmt"
	"regexp"

	"github.com/tildaslashalef/diffscope/internal/diff"
)

var (
	uncachedBoundRe = regexp.MustCompile(`for\s*\([^)]*<\s*[\w$]+(?:\.[\w$]+)*\.length`)

	loopRe = regexp.MustCompile(`\b(?:for|while)\s*\(`)

	syncIORe = regexp.MustCompile(`\b(?:readFileSync|writeFileSync|appendFileSync|readdirSync|existsSync|statSync|lstatSync|unlinkSync|mkdirSync|rmdirSync|copyFileSync|execSync)\s*\(`)

	concatAssignRe = regexp.MustCompile(`\+=\s*` + "[\"'`]")

	expensiveCallRe = regexp.MustCompile(`\.sort\s*\(|\.filter\s*\(|\.map\s*\(|\.reduce\s*\(|JSON\.parse\s*\(|JSON\.stringify\s*\(|new\s+RegExp\s*\(`)
)

// nestedLoopWindow is how many following lines are searched for an inner loop
const nestedLoopWindow = 20

// checkUncachedLoopBound flags loops that re-evaluate .length on every
// iteration
func checkUncachedLoopBound(file *diff.FileChange, opts Options) []Issue {
	var issues []Issue

	for _, c := range file.AddedLines() {
		if !uncachedBoundRe.MatchString(c.Content) {
			continue
		}

		issues = append(issues, Issue{
			Severity:    SeverityMinor,
			Title:       "Loop bound not cached",
			Description: fmt.Sprintf("The loop on line %d evaluates .length on every iteration.", c.LineNumber),
			Suggestion:  "Cache the length in a local variable before the loop.",
			File:        file.FileName,
			Line:        c.LineNumber,
			CodeSnippet: Snippet(file, c.LineNumber, opts),
			Language:    DetectLanguage(file.FileName),
		})
	}

	return issues
}

// checkNestedLoops flags a loop when another loop construct appears within
// the following lines, a quadratic-complexity smell
func checkNestedLoops(file *diff.FileChange, opts Options) []Issue {
	var issues []Issue

	for _, c := range file.AddedLines() {
		if !loopRe.MatchString(c.Content) {
			continue
		}
		if !hasInnerLoop(file, c.LineNumber) {
			continue
		}

		issues = append(issues, Issue{
			Severity:    SeverityMinor,
			Title:       "Nested loop",
			Description: fmt.Sprintf("The loop on line %d contains another loop nearby, which may be quadratic over the input.", c.LineNumber),
			Suggestion:  "Consider a lookup structure (map or set) to avoid scanning inside the loop.",
			File:        file.FileName,
			Line:        c.LineNumber,
			CodeSnippet: Snippet(file, c.LineNumber, opts),
			Language:    DetectLanguage(file.FileName),
		})
	}

	return issues
}

func hasInnerLoop(file *diff.FileChange, line int) bool {
	for _, c := range file.Changes {
		if c.LineNumber > line && c.LineNumber <= line+nestedLoopWindow && loopRe.MatchString(c.Content) {
			return true
		}
	}
	return false
}

// checkSyncIO flags calls to known blocking file-system operations
func checkSyncIO(file *diff.FileChange, opts Options) []Issue {
	var issues []Issue

	for _, c := range file.AddedLines() {
		m := syncIORe.FindString(c.Content)
		if m == "" {
			continue
		}

		issues = append(issues, Issue{
			Severity:    SeverityMajor,
			Title:       "Synchronous I/O call",
			Description: fmt.Sprintf("Line %d calls a blocking file-system operation, stalling the event loop for its duration.", c.LineNumber),
			Suggestion:  "Use the asynchronous variant and await its result.",
			File:        file.FileName,
			Line:        c.LineNumber,
			CodeSnippet: Snippet(file, c.LineNumber, opts),
			Language:    DetectLanguage(file.FileName),
		})
	}

	return issues
}

// checkInefficientConcatenation flags += with a string literal in script
// files, where repeated concatenation is quadratic
func checkInefficientConcatenation(file *diff.FileChange, opts Options) []Issue {
	if !isScriptFile(file) {
		return nil
	}

	var issues []Issue
	for _, c := range file.AddedLines() {
		if !concatAssignRe.MatchString(c.Content) {
			continue
		}

		issues = append(issues, Issue{
			Severity:    SeverityMinor,
			Title:       "Inefficient string concatenation",
			Description: fmt.Sprintf("Line %d grows a string with +=. In a loop this allocates a new string per iteration.", c.LineNumber),
			Suggestion:  "Collect parts in an array and join them once.",
			File:        file.FileName,
			Line:        c.LineNumber,
			CodeSnippet: Snippet(file, c.LineNumber, opts),
			Language:    DetectLanguage(file.FileName),
		})
	}

	return issues
}

// checkMemoizationCandidates flags expensive operations (sorting, JSON
// round-trips, regex construction) that may repeat the same work on every
// call
func checkMemoizationCandidates(file *diff.FileChange, opts Options) []Issue {
	var issues []Issue

	for _, c := range file.AddedLines() {
		if !expensiveCallRe.MatchString(c.Content) {
			continue
		}

		issues = append(issues, Issue{
			Severity:    SeverityInfo,
			Title:       "Memoization candidate",
			Description: fmt.Sprintf("Line %d performs an expensive operation that may be recomputed on every call.", c.LineNumber),
			Suggestion:  "If inputs repeat, cache the result instead of recomputing it.",
			File:        file.FileName,
			Line:        c.LineNumber,
			CodeSnippet: Snippet(file, c.LineNumber, opts),
			Language:    DetectLanguage(file.FileName),
		})
	}

	return issues
}
