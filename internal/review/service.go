package review

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tildaslashalef/diffscope/internal/config"
	"github.com/tildaslashalef/diffscope/internal/detect"
	"github.com/tildaslashalef/diffscope/internal/diff"
	"github.com/tildaslashalef/diffscope/internal/git"
	"github.com/tildaslashalef/diffscope/internal/loggy"
	"github.com/tildaslashalef/diffscope/internal/prompt"
	"github.com/tildaslashalef/diffscope/internal/ulid"
	"github.com/tildaslashalef/diffscope/internal/utils"
)

// Service provides the review pipeline and its history
type Service struct {
	repo      Repository
	gitSvc    *git.Service
	templates *prompt.Store
	config    *config.Config
	logger    *loggy.Logger
}

// NewService creates a new review service. The database handle may be nil,
// in which case reviews are not persisted.
func NewService(db *sql.DB, gitSvc *git.Service, templates *prompt.Store, cfg *config.Config, logger *loggy.Logger) *Service {
	var repo Repository
	if db != nil {
		repo = NewSQLRepository(db, logger)
	}

	return &Service{
		repo:      repo,
		gitSvc:    gitSvc,
		templates: templates,
		config:    cfg,
		logger:    logger,
	}
}

// ReviewDiff runs the full detection pipeline over a unified-diff text:
// parse, filter, detect per surviving file, rank, summarize. It is a pure
// function of its inputs and never fails; unrecognizable input simply
// yields an empty result.
func (s *Service) ReviewDiff(diffText string, opts Options) *Result {
	files := diff.Parse(diffText)

	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = s.config.Review.Extensions
	}
	excludes := opts.ExcludePatterns
	if len(excludes) == 0 {
		excludes = s.config.Review.ExcludePatterns
	}

	filtered := diff.Filter(files, extensions, excludes)

	detectOpts := detect.Options{
		ContextLines:  s.config.Review.ContextLines,
		MaxLineLength: s.config.Review.MaxLineLength,
	}

	result := &Result{}
	var issues []detect.Issue
	for i := range filtered {
		file := &filtered[i]
		issues = append(issues, detect.Run(file, detectOpts)...)
		result.FilesChanged++
		result.LinesAdded += file.Additions
		result.LinesRemoved += file.Deletions
	}

	sortIssues(issues)
	result.Issues = issues
	result.Summary = summarize(issues, result.FilesChanged)

	s.logger.Debug("review pipeline completed",
		"files", result.FilesChanged,
		"issues", len(issues),
	)

	return result
}

// ReviewRefs resolves two refs to a diff through the git service, runs the
// pipeline and persists the session. A bad ref aborts the review with no
// partial result.
func (s *Service) ReviewRefs(ctx context.Context, repoPath, baseRef, targetRef string, opts Options) (*Review, error) {
	d, err := s.gitSvc.DiffRefs(repoPath, baseRef, targetRef)
	if err != nil {
		return nil, fmt.Errorf("getting diff for %s..%s: %w", baseRef, targetRef, err)
	}

	return s.runAndStore(ctx, d.Text, repoPath, baseRef, targetRef, opts)
}

// ReviewText runs the pipeline over an already-retrieved diff text and
// persists the session
func (s *Service) ReviewText(ctx context.Context, diffText string, opts Options) (*Review, error) {
	return s.runAndStore(ctx, diffText, "", "", "", opts)
}

// ReviewSource is ReviewText with the diff's provenance recorded on the
// stored session
func (s *Service) ReviewSource(ctx context.Context, diffText, repoPath, baseRef, targetRef string, opts Options) (*Review, error) {
	return s.runAndStore(ctx, diffText, repoPath, baseRef, targetRef, opts)
}

func (s *Service) runAndStore(ctx context.Context, diffText, repoPath, baseRef, targetRef string, opts Options) (*Review, error) {
	template := s.templates.Resolve(opts.Template)

	result := s.ReviewDiff(diffText, opts)

	rev := &Review{
		ID:        ulid.ReviewID(),
		Name:      utils.GenerateSessionName(),
		RepoPath:  repoPath,
		BaseRef:   baseRef,
		TargetRef: targetRef,
		Template:  template.Name,
		Result:    *result,
		CreatedAt: time.Now(),
	}

	if s.repo != nil {
		storeCtx := ctx
		if timeout := s.config.Database.QueryTimeout; timeout > 0 {
			var cancel context.CancelFunc
			storeCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		if err := s.repo.CreateReview(storeCtx, rev); err != nil {
			return nil, fmt.Errorf("storing review: %w", err)
		}
	}

	s.logger.Info("review completed",
		"review_id", rev.ID,
		"name", rev.Name,
		"files", result.FilesChanged,
		"issues", len(result.Issues),
	)

	return rev, nil
}

// GetReview retrieves a stored review with its issues
func (s *Service) GetReview(ctx context.Context, id string) (*Review, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("review history is not enabled")
	}
	return s.repo.GetReview(ctx, id)
}

// History lists stored reviews, most recent first
func (s *Service) History(ctx context.Context, limit int) ([]*Review, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("review history is not enabled")
	}
	return s.repo.ListReviews(ctx, limit)
}

// summarize generates the prose summary. Critical and major counts are
// called out individually; minor and info findings only contribute to the
// total, keeping the prose focused on actionable items.
func summarize(issues []detect.Issue, filesChanged int) string {
	if len(issues) == 0 {
		return "No issues found. The changes look good."
	}

	var critical, major int
	for _, issue := range issues {
		switch issue.Severity {
		case detect.SeverityCritical:
			critical++
		case detect.SeverityMajor:
			major++
		}
	}

	var parts []string
	if critical > 0 {
		parts = append(parts, fmt.Sprintf("%d critical", critical))
	}
	if major > 0 {
		parts = append(parts, fmt.Sprintf("%d major", major))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("Found %d issue(s) in %d file(s), none requiring immediate attention.",
			len(issues), filesChanged)
	}

	return fmt.Sprintf("Found %d issue(s) in %d file(s): %s. Address these before merging.",
		len(issues), filesChanged, strings.Join(parts, ", "))
}
