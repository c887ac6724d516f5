package detect

import (
	"path/filepath"

	"github.com/go-enry/go-enry/v2"
)

// LanguageFallback is used when the language of a file cannot be determined
const LanguageFallback = "text"

// DetectLanguage infers the language of a file from its name, best-effort.
// Unknown extensions resolve to the generic fallback tag.
func DetectLanguage(fileName string) string {
	if fileName == "" {
		return LanguageFallback
	}

	// Ambiguous extensions (.ts maps to TypeScript and XML) report ok=false
	// but still carry candidates, so take the first one rather than bailing.
	langs := enry.GetLanguagesByExtension(filepath.Base(fileName), nil, nil)
	if len(langs) == 0 || langs[0] == "" {
		return LanguageFallback
	}

	return langs[0]
}
