package detect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tildaslashalef/diffscope/internal/diff"
)

var (
	unconditionalLoopRe = regexp.MustCompile(`(?i)while\s*\(\s*true\s*\)|for\s*\(\s*;;\s*\)`)

	// an = inside an if condition that is not ==, ===, !=, <=, >= or =>
	assignInCondRe = regexp.MustCompile(`if\s*\([^)]*[^=!<>]=[^=>]`)

	codeAfterReturnRe = regexp.MustCompile(`\breturn\b[^;]*;(.+)$`)

	// a quoted literal adjoining a + operator
	stringCoercionRe = regexp.MustCompile("[\"'`]" + `[^"'` + "`" + `]*` + "[\"'`]" + `\s*\+|[^+]\+\s*` + "[\"'`]")
)

// checkUnconditionalLoops flags while(true) and for(;;) constructs
func checkUnconditionalLoops(file *diff.FileChange, opts Options) []Issue {
	var issues []Issue

	for _, c := range file.AddedLines() {
		if !unconditionalLoopRe.MatchString(c.Content) {
			continue
		}

		issues = append(issues, Issue{
			Severity:    SeverityMajor,
			Title:       "Unconditional loop",
			Description: fmt.Sprintf("Line %d starts a loop with no exit condition. Without a guaranteed break this never terminates.", c.LineNumber),
			Suggestion:  "Add an explicit exit condition, or make the break path obvious and guaranteed.",
			File:        file.FileName,
			Line:        c.LineNumber,
			CodeSnippet: Snippet(file, c.LineNumber, opts),
			Language:    DetectLanguage(file.FileName),
		})
	}

	return issues
}

// checkAssignmentInConditional flags a single = inside an if condition,
// which is almost always a mistyped comparison
func checkAssignmentInConditional(file *diff.FileChange, opts Options) []Issue {
	var issues []Issue

	for _, c := range file.AddedLines() {
		if !assignInCondRe.MatchString(c.Content) {
			continue
		}

		issues = append(issues, Issue{
			Severity:    SeverityMajor,
			Title:       "Assignment in conditional",
			Description: fmt.Sprintf("Line %d assigns inside an if condition. The condition evaluates the assigned value, not a comparison.", c.LineNumber),
			Suggestion:  "Use == or === if a comparison was intended, or move the assignment out of the condition.",
			File:        file.FileName,
			Line:        c.LineNumber,
			CodeSnippet: Snippet(file, c.LineNumber, opts),
			Language:    DetectLanguage(file.FileName),
		})
	}

	return issues
}

// checkCodeAfterReturn flags statements that follow a return on the same
// line. Being a single-line heuristic it cannot see real control flow;
// multi-line unreachable code goes undetected.
func checkCodeAfterReturn(file *diff.FileChange, opts Options) []Issue {
	var issues []Issue

	for _, c := range file.AddedLines() {
		m := codeAfterReturnRe.FindStringSubmatch(c.Content)
		if m == nil {
			continue
		}

		trailing := strings.TrimSpace(m[1])
		if trailing == "" || strings.HasPrefix(trailing, "}") || strings.HasPrefix(trailing, "//") {
			continue
		}

		issues = append(issues, Issue{
			Severity:    SeverityMinor,
			Title:       "Unreachable code after return",
			Description: fmt.Sprintf("Line %d contains statements after a return; they will never execute.", c.LineNumber),
			Suggestion:  "Remove the unreachable statements or restructure the early return.",
			File:        file.FileName,
			Line:        c.LineNumber,
			CodeSnippet: Snippet(file, c.LineNumber, opts),
			Language:    DetectLanguage(file.FileName),
		})
	}

	return issues
}

// checkImplicitStringCoercion flags + operators adjoining quoted literals in
// script files, where mixed-type concatenation coerces silently
func checkImplicitStringCoercion(file *diff.FileChange, opts Options) []Issue {
	if !isScriptFile(file) {
		return nil
	}

	var issues []Issue
	for _, c := range file.AddedLines() {
		if !stringCoercionRe.MatchString(c.Content) {
			continue
		}

		issues = append(issues, Issue{
			Severity:    SeverityMinor,
			Title:       "Implicit string coercion",
			Description: fmt.Sprintf("Line %d concatenates a string literal with +, coercing non-string operands.", c.LineNumber),
			Suggestion:  "Use a template literal to make the conversion explicit.",
			File:        file.FileName,
			Line:        c.LineNumber,
			CodeSnippet: Snippet(file, c.LineNumber, opts),
			Language:    DetectLanguage(file.FileName),
		})
	}

	return issues
}
