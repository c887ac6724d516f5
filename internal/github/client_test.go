package github

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/tildaslashalef/diffscope/internal/config"
	"github.com/tildaslashalef/diffscope/internal/loggy"
)

func TestParsePullRequestRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		owner   string
		repo    string
		number  int
		wantErr bool
	}{
		{"valid", "golang/go#12345", "golang", "go", 12345, false},
		{"hyphenated", "go-git/go-git#7", "go-git", "go-git", 7, false},
		{"missing hash", "golang/go", "", "", 0, true},
		{"missing repo", "golang#1", "", "", 0, true},
		{"empty owner", "/repo#1", "", "", 0, true},
		{"bad number", "golang/go#abc", "", "", 0, true},
		{"zero number", "golang/go#0", "", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, number, err := ParsePullRequestRef(tt.ref)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, repo)
			assert.Equal(t, tt.number, number)
		})
	}
}

func TestNewLimiter(t *testing.T) {
	assert.Equal(t, rate.Inf, newLimiter(0).Limit())
	assert.Equal(t, rate.Inf, newLimiter(-5).Limit())
	assert.InDelta(t, 1.0, float64(newLimiter(60).Limit()), 0.001)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(&config.GitHubConfig{}, loggy.NewNoopLogger())
	require.NotNil(t, c)
	assert.NotNil(t, c.client)
	assert.NotNil(t, c.limiter)
}

func TestNewClientLeavesDefaultClientAlone(t *testing.T) {
	before := http.DefaultClient.Timeout

	NewClient(&config.GitHubConfig{RequestTimeout: 5 * time.Second}, loggy.NewNoopLogger())

	assert.Equal(t, before, http.DefaultClient.Timeout)
}
