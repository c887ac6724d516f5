package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/src/app.ts b/src/app.ts
index 83db48f..bf269f4 100644
--- a/src/app.ts
+++ b/src/app.ts
@@ -10,7 +10,8 @@ export class App {
 	constructor() {
 		this.name = "app";
-		this.debug = false;
+		this.debug = true;
+		this.verbose = true;
 	}
 }
diff --git a/src/util.ts b/src/util.ts
new file mode 100644
index 0000000..e69de29
--- /dev/null
+++ b/src/util.ts
@@ -0,0 +1,2 @@
+export function helper() {
+}
`

func TestParse(t *testing.T) {
	files := Parse(sampleDiff)
	require.Len(t, files, 2)

	app := files[0]
	assert.Equal(t, "src/app.ts", app.FileName)
	assert.Equal(t, "src/app.ts", app.OldFileName)
	assert.False(t, app.IsNewFile)
	assert.False(t, app.IsDeleted)
	assert.Equal(t, 2, app.Additions)
	assert.Equal(t, 1, app.Deletions)

	util := files[1]
	assert.Equal(t, "src/util.ts", util.FileName)
	assert.True(t, util.IsNewFile)
	assert.Equal(t, 2, util.Additions)
	assert.Equal(t, 0, util.Deletions)
}

func TestParseLineNumbers(t *testing.T) {
	files := Parse(sampleDiff)
	require.Len(t, files, 2)

	// Hunk starts at old=10 new=10; two context lines precede the change
	changes := files[0].Changes
	require.GreaterOrEqual(t, len(changes), 5)

	assert.Equal(t, LineContext, changes[0].Type)
	assert.Equal(t, 10, changes[0].LineNumber)
	assert.Equal(t, LineContext, changes[1].Type)
	assert.Equal(t, 11, changes[1].LineNumber)

	assert.Equal(t, LineDeletion, changes[2].Type)
	assert.Equal(t, 12, changes[2].LineNumber)
	assert.Equal(t, `		this.debug = false;`, changes[2].Content)

	assert.Equal(t, LineAddition, changes[3].Type)
	assert.Equal(t, 12, changes[3].LineNumber)
	assert.Equal(t, LineAddition, changes[4].Type)
	assert.Equal(t, 13, changes[4].LineNumber)

	// New file hunk starts at +1
	utilChanges := files[1].Changes
	require.Len(t, utilChanges, 2)
	assert.Equal(t, 1, utilChanges[0].LineNumber)
	assert.Equal(t, 2, utilChanges[1].LineNumber)
}

func TestParseCountsMatchChanges(t *testing.T) {
	files := Parse(sampleDiff)

	for _, file := range files {
		var adds, dels int
		for _, c := range file.Changes {
			switch c.Type {
			case LineAddition:
				adds++
			case LineDeletion:
				dels++
			}
		}
		assert.Equal(t, file.Additions, adds, "%s additions", file.FileName)
		assert.Equal(t, file.Deletions, dels, "%s deletions", file.FileName)
	}
}

func TestParseIdempotent(t *testing.T) {
	first := Parse(sampleDiff)
	second := Parse(sampleDiff)
	assert.Equal(t, first, second)
}

func TestParseEmptyAndMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty input", input: "", want: 0},
		{name: "preamble only", input: "commit 123abc\nAuthor: someone\n", want: 0},
		{
			name:  "malformed header dropped",
			input: "diff --git broken-header\n+not counted\n",
			want:  0,
		},
		{
			name: "malformed block between valid blocks",
			input: "diff --git a/a.go b/a.go\n@@ -1 +1 @@\n+ok\n" +
				"diff --git nonsense\n+skipped\n" +
				"diff --git a/b.go b/b.go\n@@ -1 +1 @@\n+also ok\n",
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Parse(tt.input), tt.want)
		})
	}
}

func TestParseDeletedFile(t *testing.T) {
	input := `diff --git a/old.ts b/old.ts
deleted file mode 100644
index e69de29..0000000
--- a/old.ts
+++ /dev/null
@@ -1,2 +0,0 @@
-const gone = 1;
-export { gone };
`
	files := Parse(input)
	require.Len(t, files, 1)

	assert.True(t, files[0].IsDeleted)
	assert.Equal(t, 2, files[0].Deletions)
	assert.Equal(t, 1, files[0].Changes[0].LineNumber)
	assert.Equal(t, 2, files[0].Changes[1].LineNumber)
}

func TestParseRenameWithoutHunks(t *testing.T) {
	input := `diff --git a/old/name.go b/new/name.go
similarity index 100%
rename from old/name.go
rename to new/name.go
`
	files := Parse(input)
	require.Len(t, files, 1)

	assert.Equal(t, "old/name.go", files[0].OldFileName)
	assert.Equal(t, "new/name.go", files[0].FileName)
	assert.Empty(t, files[0].Changes)
}

func TestParseContentBeforeHunkHeader(t *testing.T) {
	// No @@ header: counters stay at their zero values, positions are
	// best-effort rather than an error
	input := "diff --git a/x.go b/x.go\n+orphan line\n"
	files := Parse(input)
	require.Len(t, files, 1)
	require.Len(t, files[0].Changes, 1)

	assert.Equal(t, LineAddition, files[0].Changes[0].Type)
	assert.Equal(t, 0, files[0].Changes[0].LineNumber)
}

func TestParseStripsMarkers(t *testing.T) {
	input := "diff --git a/x.go b/x.go\n@@ -1,2 +1,2 @@\n context kept\n+added\n-removed\n"
	files := Parse(input)
	require.Len(t, files, 1)
	require.Len(t, files[0].Changes, 3)

	assert.Equal(t, "context kept", files[0].Changes[0].Content)
	assert.Equal(t, "added", files[0].Changes[1].Content)
	assert.Equal(t, "removed", files[0].Changes[2].Content)
}

func TestParseRawDiffPreserved(t *testing.T) {
	files := Parse(sampleDiff)
	require.Len(t, files, 2)

	assert.Contains(t, files[0].RawDiff, "diff --git a/src/app.ts b/src/app.ts")
	assert.Contains(t, files[0].RawDiff, "+		this.debug = true;")
	assert.NotContains(t, files[0].RawDiff, "util.ts")
}
