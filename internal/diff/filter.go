package diff

import "strings"

// Filter keeps files whose name ends with one of the given extensions and
// drops files whose name contains any exclude pattern. Both checks are
// case-insensitive; empty lists impose no constraint. Input order is
// preserved.
func Filter(files []FileChange, extensions, excludePatterns []string) []FileChange {
	var result []FileChange

	for _, file := range files {
		if !matchesExtension(file.FileName, extensions) {
			continue
		}
		if matchesPattern(file.FileName, excludePatterns) {
			continue
		}
		result = append(result, file)
	}

	return result
}

func matchesExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}

	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

func matchesPattern(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, pattern := range patterns {
		if pattern != "" && strings.Contains(lower, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}
