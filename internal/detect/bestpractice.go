package detect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tildaslashalef/diffscope/internal/diff"
)

var (
	// == or != that is not part of ===, !==, <=, >= or similar
	looseEqRe = regexp.MustCompile(`(?:^|[^=!<>])(?:==|!=)(?:[^=]|$)`)

	// a bare identifier.property chain
	propAccessRe = regexp.MustCompile(`\b[a-zA-Z_$][\w$]*\.[a-zA-Z_$][\w$]*`)

	// indexing with a variable subscript
	arrayIndexRe = regexp.MustCompile(`\b[\w$]+\[[a-zA-Z_$][\w$]*\]`)
)

// guardWindow is how many lines before/after a flagged access are searched
// for a null check or error handling
const guardWindow = 3

// checkLooseEquality flags == and != comparisons in script files, where the
// strict forms avoid surprising type coercion
func checkLooseEquality(file *diff.FileChange, opts Options) []Issue {
	if !isScriptFile(file) {
		return nil
	}

	var issues []Issue
	for _, c := range file.AddedLines() {
		if !looseEqRe.MatchString(c.Content) {
			continue
		}

		issues = append(issues, Issue{
			Severity:    SeverityMinor,
			Title:       "Loose equality comparison",
			Description: fmt.Sprintf("Line %d uses == or !=, which coerce operand types before comparing.", c.LineNumber),
			Suggestion:  "Use === or !== to compare without implicit type coercion.",
			File:        file.FileName,
			Line:        c.LineNumber,
			CodeSnippet: Snippet(file, c.LineNumber, opts),
			Language:    DetectLanguage(file.FileName),
		})
	}

	return issues
}

// checkUncheckedPropertyAccess flags property chains without optional
// chaining when no null/undefined guard appears within a few lines. This is
// a proximity heuristic over text, not data-flow analysis.
func checkUncheckedPropertyAccess(file *diff.FileChange, opts Options) []Issue {
	if !isScriptFile(file) {
		return nil
	}

	var issues []Issue
	for _, c := range file.AddedLines() {
		if !propAccessRe.MatchString(c.Content) || strings.Contains(c.Content, "?.") {
			continue
		}
		if hasGuard(c.Content) {
			continue
		}
		if anyGuarded(nearbyContents(file, c.LineNumber, guardWindow)) {
			continue
		}

		issues = append(issues, Issue{
			Severity:    SeverityMajor,
			Title:       "Property access without null check",
			Description: fmt.Sprintf("Line %d dereferences a property with no nearby null or undefined guard.", c.LineNumber),
			Suggestion:  "Use optional chaining (obj?.prop) or guard the access with an explicit null check.",
			File:        file.FileName,
			Line:        c.LineNumber,
			CodeSnippet: Snippet(file, c.LineNumber, opts),
			Language:    DetectLanguage(file.FileName),
		})
	}

	return issues
}

// checkUncheckedArrayIndex flags variable-subscript indexing with no .length
// check in the surrounding lines
func checkUncheckedArrayIndex(file *diff.FileChange, opts Options) []Issue {
	if !isScriptFile(file) {
		return nil
	}

	var issues []Issue
	for _, c := range file.AddedLines() {
		if !arrayIndexRe.MatchString(c.Content) {
			continue
		}
		if strings.Contains(c.Content, ".length") {
			continue
		}
		if anyContains(nearbyContents(file, c.LineNumber, guardWindow), ".length") {
			continue
		}

		issues = append(issues, Issue{
			Severity:    SeverityMinor,
			Title:       "Array index without bounds check",
			Description: fmt.Sprintf("Line %d indexes with a variable and no .length check is visible nearby.", c.LineNumber),
			Suggestion:  "Verify the index against the array length before accessing the element.",
			File:        file.FileName,
			Line:        c.LineNumber,
			CodeSnippet: Snippet(file, c.LineNumber, opts),
			Language:    DetectLanguage(file.FileName),
		})
	}

	return issues
}

func hasGuard(content string) bool {
	for _, g := range []string{"null", "undefined", "&&", "if (", "if(", "try", "catch"} {
		if strings.Contains(content, g) {
			return true
		}
	}
	return false
}

func anyGuarded(lines []string) bool {
	for _, l := range lines {
		if hasGuard(l) {
			return true
		}
	}
	return false
}
