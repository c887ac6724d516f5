package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/diffscope/internal/loggy"
)

// Helper function to set up a temporary Git repository
func setupTempGitRepo(t *testing.T) string {
	tempDir := t.TempDir()

	runGit(t, tempDir, "init")
	runGit(t, tempDir, "config", "user.name", "Test User")
	runGit(t, tempDir, "config", "user.email", "test@example.com")

	// Create initial commit so we have a default branch
	createFile(t, tempDir, "README.md", "# Test Repository\n\nThis is a test repository.\n")
	runGit(t, tempDir, "add", "README.md")
	runGit(t, tempDir, "commit", "-m", "Initial commit")

	return tempDir
}

func runGit(t *testing.T, repoPath string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = repoPath
	out, err := cmd.Output()
	require.NoError(t, err, "git %s failed", strings.Join(args, " "))
	return strings.TrimSpace(string(out))
}

func createFile(t *testing.T, repoPath, filename, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(repoPath, filename), []byte(content), 0644)
	require.NoError(t, err, "Failed to create file")
}

func newTestService() *Service {
	return NewService(loggy.NewNoopLogger())
}

func TestHasGitRepo(t *testing.T) {
	repoPath := setupTempGitRepo(t)
	svc := newTestService()

	assert.True(t, svc.HasGitRepo(repoPath))
	assert.False(t, svc.HasGitRepo(t.TempDir()))
}

func TestDiffRefs(t *testing.T) {
	repoPath := setupTempGitRepo(t)
	svc := newTestService()

	base := runGit(t, repoPath, "rev-parse", "HEAD")

	createFile(t, repoPath, "app.js", "function greet(name) {\n  return 'hello ' + name;\n}\n")
	runGit(t, repoPath, "add", "app.js")
	runGit(t, repoPath, "commit", "-m", "Add greeter")

	diff, err := svc.DiffRefs(repoPath, base, "HEAD")
	require.NoError(t, err)

	assert.Equal(t, base, diff.BaseRef)
	assert.Equal(t, "HEAD", diff.TargetRef)
	assert.Contains(t, diff.Text, "diff --git a/app.js b/app.js")
	assert.Contains(t, diff.Text, "+function greet(name) {")

	require.Len(t, diff.Stats, 1)
	assert.Equal(t, "app.js", diff.Stats[0].Name)
	assert.Equal(t, 3, diff.Stats[0].Additions)
	assert.Equal(t, 0, diff.Stats[0].Deletions)
}

func TestDiffRefsRelative(t *testing.T) {
	repoPath := setupTempGitRepo(t)
	svc := newTestService()

	createFile(t, repoPath, "README.md", "# Test Repository\n\nUpdated.\n")
	runGit(t, repoPath, "add", "README.md")
	runGit(t, repoPath, "commit", "-m", "Update readme")

	diff, err := svc.DiffRefs(repoPath, "HEAD~1", "HEAD")
	require.NoError(t, err)

	assert.Contains(t, diff.Text, "README.md")
	assert.Contains(t, diff.Text, "+Updated.")
}

func TestDiffRefsBadRef(t *testing.T) {
	repoPath := setupTempGitRepo(t)
	svc := newTestService()

	_, err := svc.DiffRefs(repoPath, "no-such-branch", "HEAD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-branch")
}

func TestDiffRefsBadRepo(t *testing.T) {
	svc := newTestService()

	_, err := svc.DiffRefs(t.TempDir(), "main", "HEAD")
	assert.Error(t, err)
}

func TestDiffCommit(t *testing.T) {
	repoPath := setupTempGitRepo(t)
	svc := newTestService()

	createFile(t, repoPath, "util.js", "const x = 1;\n")
	runGit(t, repoPath, "add", "util.js")
	runGit(t, repoPath, "commit", "-m", "Add util")
	hash := runGit(t, repoPath, "rev-parse", "HEAD")

	diff, err := svc.DiffCommit(repoPath, hash)
	require.NoError(t, err)

	assert.Contains(t, diff.Text, "util.js")
	assert.Contains(t, diff.Text, "+const x = 1;")
	require.NotNil(t, diff.Commit)
	assert.Equal(t, hash, diff.Commit.Hash)
	assert.Equal(t, "Test User", diff.Commit.Author)
	assert.Contains(t, diff.Commit.Message, "Add util")
}

func TestDiffCommitInitial(t *testing.T) {
	repoPath := setupTempGitRepo(t)
	svc := newTestService()

	hash := runGit(t, repoPath, "rev-parse", "HEAD")

	diff, err := svc.DiffCommit(repoPath, hash)
	require.NoError(t, err)

	assert.Contains(t, diff.Text, "README.md")
	assert.Contains(t, diff.Text, "+# Test Repository")
}
