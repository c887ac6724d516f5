package detect

import (
	"fmt"
	"regexp"

	"github.com/tildaslashalef/diffscope/internal/diff"
)

var (
	secretAssignRe = regexp.MustCompile(`(?i)(password|secret|key|token)\s*[:=]\s*` + "[\"'`]" + `[^"'` + "`" + `]+` + "[\"'`]")
	apiKeyRe       = regexp.MustCompile(`(?i)\bapi_key\b`)
	quotedRe       = regexp.MustCompile("[\"'`]" + `[^"'` + "`" + `]*` + "[\"'`]")
)

// maskSecrets replaces quoted literals on a line so credentials never leak
// into snippets or stored reviews
func maskSecrets(content string) string {
	return quotedRe.ReplaceAllString(content, `"***"`)
}

// checkHardcodedSecrets flags credential-looking assignments with a quoted
// literal value, and any mention of api_key. The matched literal is masked
// in the emitted snippet.
func checkHardcodedSecrets(file *diff.FileChange, opts Options) []Issue {
	var issues []Issue

	for _, c := range file.AddedLines() {
		if !secretAssignRe.MatchString(c.Content) && !apiKeyRe.MatchString(c.Content) {
			continue
		}

		issues = append(issues, Issue{
			Severity: SeverityCritical,
			Title:    "Hardcoded secret detected",
			Description: fmt.Sprintf("Line %d appears to embed a credential directly in source. "+
				"Secrets committed to version control are compromised the moment they are pushed.", c.LineNumber),
			Suggestion:  "Move the value to an environment variable or a secret manager and rotate the exposed credential.",
			File:        file.FileName,
			Line:        c.LineNumber,
			CodeSnippet: snippetWith(file, c.LineNumber, opts, maskSecrets),
			Language:    DetectLanguage(file.FileName),
		})
	}

	return issues
}
