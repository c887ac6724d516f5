// Package github fetches pull request diffs from the GitHub API
package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/go-github/v59/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/tildaslashalef/diffscope/internal/config"
	"github.com/tildaslashalef/diffscope/internal/loggy"
)

// Client represents a GitHub API client
type Client struct {
	client     *github.Client
	limiter    *rate.Limiter
	maxRetries int
	logger     *loggy.Logger
}

// NewClient creates a new GitHub API client from the GitHub section of
// the configuration. An empty token yields an unauthenticated client,
// which is enough for public repositories.
func NewClient(cfg *config.GitHubConfig, logger *loggy.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	// A fresh client keeps the timeout off http.DefaultClient, which
	// oauth2.NewClient hands back for a nil token source.
	tc := &http.Client{Timeout: timeout}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		tc = oauth2.NewClient(context.Background(), ts)
		tc.Timeout = timeout
	}

	var client *github.Client
	if cfg.APIURL != "" && cfg.APIURL != "https://api.github.com" {
		var err error
		client, err = github.NewClient(tc).WithEnterpriseURLs(cfg.APIURL, cfg.APIURL)
		if err != nil {
			// Fall back to the default client if the enterprise URL is bad
			logger.Warn("invalid GitHub API URL, using default", "url", cfg.APIURL, "error", err)
			client = github.NewClient(tc)
		}
	} else {
		client = github.NewClient(tc)
	}

	return &Client{
		client:     client,
		limiter:    newLimiter(cfg.RequestsPerMinute),
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

// newLimiter creates a rate limiter from a requests-per-minute budget
func newLimiter(rpm int) *rate.Limiter {
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1)
}

// GetPullRequestDiff fetches the unified diff of a pull request
func (c *Client) GetPullRequestDiff(ctx context.Context, owner, repo string, number int) (string, error) {
	if owner == "" || repo == "" {
		return "", fmt.Errorf("owner and repo must be provided")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for rate limiter: %w", err)
	}

	var diffText string
	operation := func() error {
		raw, resp, err := c.client.PullRequests.GetRaw(ctx, owner, repo, number,
			github.RawOptions{Type: github.Diff})
		if err != nil {
			// Client errors will not improve on retry
			if resp != nil && resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			c.logger.Debug("pull request diff fetch failed, retrying",
				"owner", owner, "repo", repo, "number", number, "error", err)
			return err
		}
		diffText = raw
		return nil
	}

	err := backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries)), ctx))
	if err != nil {
		return "", fmt.Errorf("fetching diff for %s/%s#%d: %w", owner, repo, number, err)
	}

	return diffText, nil
}

// GetPullRequest gets pull request metadata by number
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("owner and repo must be provided")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	pr, _, err := c.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("fetching %s/%s#%d: %w", owner, repo, number, err)
	}
	return pr, nil
}

// ParsePullRequestRef parses a pull request reference of the form
// "owner/repo#number"
func ParsePullRequestRef(ref string) (owner, repo string, number int, err error) {
	repoPart, numPart, ok := strings.Cut(ref, "#")
	if !ok {
		return "", "", 0, fmt.Errorf("invalid pull request reference %q, expected owner/repo#number", ref)
	}

	owner, repo, ok = strings.Cut(repoPart, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", 0, fmt.Errorf("invalid repository in %q, expected owner/repo#number", ref)
	}

	number, err = strconv.Atoi(numPart)
	if err != nil || number <= 0 {
		return "", "", 0, fmt.Errorf("invalid pull request number in %q", ref)
	}

	return owner, repo, number, nil
}
