package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func namesOf(files []FileChange) []string {
	var names []string
	for _, f := range files {
		names = append(names, f.FileName)
	}
	return names
}

func TestFilter(t *testing.T) {
	files := []FileChange{
		{FileName: "src/app.ts"},
		{FileName: "src/app.test.ts"},
		{FileName: "README.md"},
		{FileName: "pkg/Main.TS"},
		{FileName: "vendor/lib.ts"},
	}

	tests := []struct {
		name       string
		extensions []string
		exclude    []string
		want       []string
	}{
		{
			name: "no filters keeps everything in order",
			want: []string{"src/app.ts", "src/app.test.ts", "README.md", "pkg/Main.TS", "vendor/lib.ts"},
		},
		{
			name:       "extension filter is case-insensitive",
			extensions: []string{".ts"},
			want:       []string{"src/app.ts", "src/app.test.ts", "pkg/Main.TS", "vendor/lib.ts"},
		},
		{
			name:    "exclude is substring match",
			exclude: []string{"vendor"},
			want:    []string{"src/app.ts", "src/app.test.ts", "README.md", "pkg/Main.TS"},
		},
		{
			name:       "filters are conjunctive",
			extensions: []string{".ts"},
			exclude:    []string{"test", "vendor"},
			want:       []string{"src/app.ts", "pkg/Main.TS"},
		},
		{
			name:       "no survivors",
			extensions: []string{".py"},
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(files, tt.extensions, tt.exclude)
			assert.Equal(t, tt.want, namesOf(got))
		})
	}
}

func TestFilterConjunction(t *testing.T) {
	files := []FileChange{
		{FileName: "a.ts"},
		{FileName: "a_test.ts"},
		{FileName: "b.go"},
		{FileName: "testdata/c.ts"},
	}

	got := Filter(files, []string{".ts"}, []string{"test"})

	for _, f := range got {
		assert.True(t, len(f.FileName) > 3 && f.FileName[len(f.FileName)-3:] == ".ts")
		assert.NotContains(t, f.FileName, "test")
	}
	assert.Equal(t, []string{"a.ts"}, namesOf(got))
}
