// Package ulid provides prefixed, sortable identifiers for diffscope entities,
// backed by github.com/oklog/ulid/v2.
//
// ULIDs are lexicographically sortable by creation time, which keeps review
// history listings in chronological order without a separate sort column.
package ulid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefixes for the different entity kinds
const (
	// PrefixReview is used for review session IDs
	PrefixReview = "rev"

	// PrefixIssue is used for issue IDs
	PrefixIssue = "iss"

	// PrefixRequest is used for tool-server request IDs
	PrefixRequest = "req"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// New generates a new ULID string
func New() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	return id.String()
}

// WithPrefix generates a new ULID string with the given prefix,
// separated by an underscore
func WithPrefix(prefix string) string {
	if prefix == "" {
		return New()
	}
	return fmt.Sprintf("%s_%s", prefix, New())
}

// ReviewID generates a new review ID
func ReviewID() string {
	return WithPrefix(PrefixReview)
}

// IssueID generates a new issue ID
func IssueID() string {
	return WithPrefix(PrefixIssue)
}

// RequestID generates a new request ID
func RequestID() string {
	return WithPrefix(PrefixRequest)
}

// IsValid reports whether s is a well-formed, optionally prefixed ULID
func IsValid(s string) bool {
	raw := s
	if idx := strings.LastIndex(s, "_"); idx >= 0 {
		raw = s[idx+1:]
	}

	_, err := ulid.ParseStrict(raw)
	return err == nil
}

// Timestamp extracts the creation time from an optionally prefixed ULID
func Timestamp(s string) (time.Time, error) {
	raw := s
	if idx := strings.LastIndex(s, "_"); idx >= 0 {
		raw = s[idx+1:]
	}

	id, err := ulid.ParseStrict(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing ulid %q: %w", s, err)
	}

	return ulid.Time(id.Time()), nil
}
