package ulid

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id1 := New()
	id2 := New()

	assert.Len(t, id1, 26, "ULID should be 26 characters")
	assert.NotEqual(t, id1, id2, "Consecutive ULIDs should differ")
	assert.True(t, IsValid(id1))
}

func TestWithPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{name: "review prefix", prefix: PrefixReview, want: "rev_"},
		{name: "issue prefix", prefix: PrefixIssue, want: "iss_"},
		{name: "empty prefix", prefix: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := WithPrefix(tt.prefix)
			if tt.want != "" {
				assert.True(t, strings.HasPrefix(id, tt.want))
			}
			assert.True(t, IsValid(id))
		})
	}
}

func TestMonotonicOrdering(t *testing.T) {
	ids := make([]string, 10)
	for i := range ids {
		ids[i] = New()
	}

	for i := 1; i < len(ids); i++ {
		assert.True(t, ids[i-1] < ids[i], "ULIDs should sort in generation order")
	}
}

func TestTimestamp(t *testing.T) {
	before := time.Now().Add(-time.Second)
	id := ReviewID()
	after := time.Now().Add(time.Second)

	ts, err := Timestamp(id)
	require.NoError(t, err)
	assert.True(t, ts.After(before) && ts.Before(after))

	_, err = Timestamp("rev_not-a-ulid")
	assert.Error(t, err)
}
