package detect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tildaslashalef/diffscope/internal/diff"
)

var (
	funcDeclRe = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:public\s+|private\s+|protected\s+|static\s+|async\s+)*function\s+\w+\s*\(` +
		`|^\s*(?:export\s+)?(?:const|let|var)\s+[\w$]+\s*=\s*(?:async\s+)?(?:function\b|\([^)]*\)\s*=>)` +
		`|^\s*(?:public|private|protected|static)\s+(?:async\s+)?[\w$]+\s*\(` +
		`|^\s*func\s+(?:\([^)]+\)\s+)?\w+\s*\(` +
		`|^\s*def\s+\w+\s*\(`)

	classDeclRe = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+\w+` +
		`|^\s*type\s+\w+\s+struct\b`)

	docMarkerRe = regexp.MustCompile(`/\*\*|\*/|^\s*\*|^\s*//|^\s*#`)

	paramListRe = regexp.MustCompile(`\(([^)]*)\)`)
)

// docWindow is how many preceding lines are searched for a documentation
// block; docLinkWindow bounds the doc-block-to-declaration association
const (
	docWindow     = 5
	docLinkWindow = 10
)

// checkMissingFunctionDoc flags function declarations with no documentation
// within the preceding lines
func checkMissingFunctionDoc(file *diff.FileChange, opts Options) []Issue {
	return checkMissingDoc(file, opts, funcDeclRe,
		"Function missing documentation",
		"Add a documentation block describing the function's purpose, parameters and return value.")
}

// checkMissingClassDoc flags class declarations with no documentation
// within the preceding lines
func checkMissingClassDoc(file *diff.FileChange, opts Options) []Issue {
	return checkMissingDoc(file, opts, classDeclRe,
		"Class missing documentation",
		"Add a documentation block describing the class's responsibility.")
}

func checkMissingDoc(file *diff.FileChange, opts Options, declRe *regexp.Regexp, title, suggestion string) []Issue {
	var issues []Issue

	for _, c := range file.AddedLines() {
		if !declRe.MatchString(c.Content) {
			continue
		}
		if hasDocAbove(file, c.LineNumber) {
			continue
		}

		issues = append(issues, Issue{
			Severity:    SeverityMinor,
			Title:       title,
			Description: fmt.Sprintf("The declaration on line %d has no documentation block within the %d preceding lines.", c.LineNumber, docWindow),
			Suggestion:  suggestion,
			File:        file.FileName,
			Line:        c.LineNumber,
			CodeSnippet: Snippet(file, c.LineNumber, opts),
			Language:    DetectLanguage(file.FileName),
		})
	}

	return issues
}

func hasDocAbove(file *diff.FileChange, line int) bool {
	for _, c := range file.Changes {
		if c.LineNumber >= line-docWindow && c.LineNumber < line && docMarkerRe.MatchString(c.Content) {
			return true
		}
	}
	return false
}

// checkIncompleteDocBlock flags documentation blocks whose associated
// function (the next declaration within a fixed window) has parameters or a
// return type the block's tags never mention.
//
// The block-to-function linkage is a proximity rule over line numbers, not a
// parse-level association; a stronger contract is deliberately not inferred.
func checkIncompleteDocBlock(file *diff.FileChange, opts Options) []Issue {
	var issues []Issue

	for _, c := range file.AddedLines() {
		if !strings.Contains(c.Content, "/**") {
			continue
		}

		decl, block := linkedDeclaration(file, c.LineNumber)
		if decl == nil {
			continue
		}

		missing := missingDocTags(*decl, block)
		if len(missing) == 0 {
			continue
		}

		issues = append(issues, Issue{
			Severity: SeverityMinor,
			Title:    "Incomplete documentation block",
			Description: fmt.Sprintf("The documentation block on line %d does not mention: %s.",
				c.LineNumber, strings.Join(missing, ", ")),
			Suggestion:  "Document every parameter with @param and the return value with @returns.",
			File:        file.FileName,
			Line:        c.LineNumber,
			CodeSnippet: Snippet(file, c.LineNumber, opts),
			Language:    DetectLanguage(file.FileName),
		})
	}

	return issues
}

// linkedDeclaration finds the first function declaration within the linkage
// window after the doc block opener, and collects the block's lines up to it
func linkedDeclaration(file *diff.FileChange, blockStart int) (*diff.LineChange, []string) {
	var block []string
	var decl *diff.LineChange

	for i := range file.Changes {
		c := file.Changes[i]
		if c.LineNumber <= blockStart || c.LineNumber > blockStart+docLinkWindow {
			continue
		}
		if funcDeclRe.MatchString(c.Content) {
			if decl == nil || c.LineNumber < decl.LineNumber {
				decl = &file.Changes[i]
			}
			continue
		}
		block = append(block, c.Content)
	}

	return decl, block
}

func missingDocTags(decl diff.LineChange, block []string) []string {
	joined := strings.Join(block, "\n")
	var missing []string

	if m := paramListRe.FindStringSubmatch(decl.Content); m != nil {
		params := strings.TrimSpace(m[1])
		if params != "" && !strings.Contains(joined, "@param") {
			missing = append(missing, "parameters")
		}
	}

	if returnsValue(decl.Content) && !strings.Contains(joined, "@return") {
		missing = append(missing, "return value")
	}

	return missing
}

// returnsValue reports whether the declaration carries a non-void return
// type annotation
func returnsValue(content string) bool {
	idx := strings.LastIndex(content, ")")
	if idx < 0 || idx+1 >= len(content) {
		return false
	}

	rest := strings.TrimSpace(content[idx+1:])
	rest = strings.TrimPrefix(rest, ":")
	rest = strings.TrimSpace(strings.TrimSuffix(rest, "{"))
	rest = strings.TrimSpace(rest)

	return rest != "" && rest != "void" && rest != "=>"
}
