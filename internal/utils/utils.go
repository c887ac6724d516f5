package utils

import (
	"strings"
	"time"

	"github.com/goombaio/namegenerator"
)

// GenerateSessionName creates a random, memorable review session name
func GenerateSessionName() string {
	seed := time.Now().UTC().UnixNano()
	nameGenerator := namegenerator.NewNameGenerator(seed)

	// Generate a name like "wispy-dust"
	name := nameGenerator.Generate()

	// Some names might have underscores; convert to hyphens for consistency
	name = strings.ReplaceAll(name, "_", "-")

	return name
}

// SanitizeRefName cleans up a git ref so it can be used in a file or
// session name
func SanitizeRefName(ref string) string {
	name := strings.ToLower(strings.ReplaceAll(ref, " ", "-"))

	replacer := strings.NewReplacer(
		"_", "-",
		"/", "-",
		"\\", "-",
		":", "-",
		"~", "-",
		"^", "-",
	)
	name = replacer.Replace(name)

	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}

	return strings.Trim(name, "-")
}
