package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSessionName(t *testing.T) {
	name := GenerateSessionName()

	assert.NotEmpty(t, name)
	assert.NotContains(t, name, "_")
}

func TestSanitizeRefName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"branch with slash", "feature/login-form", "feature-login-form"},
		{"remote ref", "origin/main", "origin-main"},
		{"relative ref", "HEAD~1", "head-1"},
		{"underscores and spaces", "my branch_name", "my-branch-name"},
		{"collapses runs", "a//b", "a-b"},
		{"trims edges", "/main/", "main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeRefName(tt.input))
		})
	}
}

func TestSanitizeRefNameLowercases(t *testing.T) {
	assert.Equal(t, strings.ToLower("Release-V2"), SanitizeRefName("Release-V2"))
}
