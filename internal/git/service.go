package git

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/tildaslashalef/diffscope/internal/loggy"
)

// Service provides Git operations
type Service struct {
	logger *loggy.Logger
}

// NewService creates a new Git service
func NewService(logger *loggy.Logger) *Service {
	return &Service{logger: logger}
}

// HasGitRepo checks if the provided path contains a valid Git repository
func (s *Service) HasGitRepo(path string) bool {
	_, err := git.PlainOpen(path)
	if err != nil {
		s.logger.Debug("not a valid git repository", "path", path, "error", err)
		return false
	}
	return true
}

// DiffRefs produces the unified diff between two revisions of a
// repository. Both refs accept anything git rev-parse accepts: branch
// names, tags, hashes or relative refs like HEAD~1.
func (s *Service) DiffRefs(repoPath, baseRef, targetRef string) (*Diff, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("opening git repo %s: %w", repoPath, err)
	}

	baseCommit, err := resolveCommit(repo, baseRef)
	if err != nil {
		return nil, err
	}
	targetCommit, err := resolveCommit(repo, targetRef)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("diffing refs",
		"repo", repoPath,
		"base", baseCommit.Hash.String(),
		"target", targetCommit.Hash.String())

	diff, err := diffCommits(baseCommit, targetCommit)
	if err != nil {
		return nil, err
	}

	diff.BaseRef = baseRef
	diff.TargetRef = targetRef
	return diff, nil
}

// DiffCommit produces the unified diff introduced by a single commit,
// compared against its first parent. The initial commit is compared
// against the empty tree.
func (s *Service) DiffCommit(repoPath, ref string) (*Diff, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("opening git repo %s: %w", repoPath, err)
	}

	commit, err := resolveCommit(repo, ref)
	if err != nil {
		return nil, err
	}

	var diff *Diff
	if commit.NumParents() == 0 {
		diff, err = diffFromEmptyTree(commit)
	} else {
		var parent *object.Commit
		parent, err = commit.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("getting parent commit: %w", err)
		}
		diff, err = diffCommits(parent, commit)
	}
	if err != nil {
		return nil, err
	}

	diff.TargetRef = ref
	diff.Commit = &Commit{
		Hash:      commit.Hash.String(),
		Author:    commit.Author.Name,
		Email:     commit.Author.Email,
		Message:   commit.Message,
		Timestamp: commit.Author.When,
	}
	return diff, nil
}

// resolveCommit turns a revision string into its commit object
func resolveCommit(repo *git.Repository, ref string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, fmt.Errorf("resolving ref %q: %w", ref, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("getting commit for ref %q: %w", ref, err)
	}
	return commit, nil
}

func diffCommits(base, target *object.Commit) (*Diff, error) {
	baseTree, err := base.Tree()
	if err != nil {
		return nil, fmt.Errorf("getting base tree: %w", err)
	}

	targetTree, err := target.Tree()
	if err != nil {
		return nil, fmt.Errorf("getting target tree: %w", err)
	}

	changes, err := baseTree.Diff(targetTree)
	if err != nil {
		return nil, fmt.Errorf("diffing trees: %w", err)
	}

	return diffFromChanges(changes)
}

func diffFromEmptyTree(commit *object.Commit) (*Diff, error) {
	commitTree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("getting commit tree: %w", err)
	}

	// Diff empty -> commit so new files show up as additions
	emptyTree := &object.Tree{}
	changes, err := emptyTree.Diff(commitTree)
	if err != nil {
		return nil, fmt.Errorf("diffing against empty tree: %w", err)
	}

	return diffFromChanges(changes)
}

func diffFromChanges(changes object.Changes) (*Diff, error) {
	patch, err := changes.Patch()
	if err != nil {
		return nil, fmt.Errorf("generating patch: %w", err)
	}

	var stats []FileStat
	for _, fs := range patch.Stats() {
		stats = append(stats, FileStat{
			Name:      fs.Name,
			Additions: fs.Addition,
			Deletions: fs.Deletion,
		})
	}

	return &Diff{
		Text:  patch.String(),
		Stats: stats,
	}, nil
}
