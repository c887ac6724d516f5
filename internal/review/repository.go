package review

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/tildaslashalef/diffscope/internal/detect"
	"github.com/tildaslashalef/diffscope/internal/loggy"
	"github.com/tildaslashalef/diffscope/internal/ulid"
)

// Repository defines operations for managing stored reviews
type Repository interface {
	// CreateReview persists a review and its issues
	CreateReview(ctx context.Context, review *Review) error

	// GetReview retrieves a review by ID, with its issues
	GetReview(ctx context.Context, id string) (*Review, error)

	// ListReviews retrieves stored reviews, most recent first
	ListReviews(ctx context.Context, limit int) ([]*Review, error)

	// GetIssuesByReview retrieves the issues of a review in stored order
	GetIssuesByReview(ctx context.Context, reviewID string) ([]detect.Issue, error)
}

// SQLRepository implements the Repository interface using a SQL database
type SQLRepository struct {
	db      *sql.DB
	logger  *loggy.Logger
	builder sq.StatementBuilderType
}

// NewSQLRepository creates a new SQL repository
func NewSQLRepository(db *sql.DB, logger *loggy.Logger) *SQLRepository {
	return &SQLRepository{
		db:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

// CreateReview persists a review and its issues in one transaction
func (r *SQLRepository) CreateReview(ctx context.Context, review *Review) error {
	if review.ID == "" {
		review.ID = ulid.ReviewID()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := r.builder.
		Insert("reviews").
		Columns("id", "name", "repo_path", "base_ref", "target_ref", "template",
			"files_changed", "lines_added", "lines_removed", "summary", "created_at").
		Values(review.ID, review.Name, review.RepoPath, review.BaseRef, review.TargetRef,
			review.Template, review.Result.FilesChanged, review.Result.LinesAdded,
			review.Result.LinesRemoved, review.Result.Summary, review.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("building review insert: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting review: %w", err)
	}

	for i := range review.Result.Issues {
		issue := &review.Result.Issues[i]
		if issue.ID == "" {
			issue.ID = ulid.IssueID()
		}
		issue.ReviewID = review.ID
		if issue.CreatedAt.IsZero() {
			issue.CreatedAt = review.CreatedAt
		}

		query, args, err := r.builder.
			Insert("issues").
			Columns("id", "review_id", "severity", "title", "description", "suggestion",
				"file", "line", "code_snippet", "language", "position", "created_at").
			Values(issue.ID, issue.ReviewID, string(issue.Severity), issue.Title,
				issue.Description, issue.Suggestion, issue.File, issue.Line,
				issue.CodeSnippet, issue.Language, i, issue.CreatedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("building issue insert: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("inserting issue: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing review: %w", err)
	}

	r.logger.Debug("review stored", "review_id", review.ID, "issues", len(review.Result.Issues))
	return nil
}

// GetReview retrieves a review by ID, with its issues
func (r *SQLRepository) GetReview(ctx context.Context, id string) (*Review, error) {
	query, args, err := r.builder.
		Select("id", "name", "repo_path", "base_ref", "target_ref", "template",
			"files_changed", "lines_added", "lines_removed", "summary", "created_at").
		From("reviews").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building review select: %w", err)
	}

	review, err := scanReview(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("review not found: %s", id)
		}
		return nil, fmt.Errorf("scanning review: %w", err)
	}

	issues, err := r.GetIssuesByReview(ctx, id)
	if err != nil {
		return nil, err
	}
	review.Result.Issues = issues

	return review, nil
}

// ListReviews retrieves stored reviews without their issues, most recent
// first
func (r *SQLRepository) ListReviews(ctx context.Context, limit int) ([]*Review, error) {
	builder := r.builder.
		Select("id", "name", "repo_path", "base_ref", "target_ref", "template",
			"files_changed", "lines_added", "lines_removed", "summary", "created_at").
		From("reviews").
		OrderBy("created_at DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building reviews select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning review row: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reviews: %w", err)
	}

	return reviews, nil
}

// GetIssuesByReview retrieves the issues of a review in emission order
func (r *SQLRepository) GetIssuesByReview(ctx context.Context, reviewID string) ([]detect.Issue, error) {
	query, args, err := r.builder.
		Select("id", "review_id", "severity", "title", "description", "suggestion",
			"file", "line", "code_snippet", "language", "created_at").
		From("issues").
		Where(sq.Eq{"review_id": reviewID}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building issues select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying issues: %w", err)
	}
	defer rows.Close()

	var issues []detect.Issue
	for rows.Next() {
		var issue detect.Issue
		var severity string
		if err := rows.Scan(&issue.ID, &issue.ReviewID, &severity, &issue.Title,
			&issue.Description, &issue.Suggestion, &issue.File, &issue.Line,
			&issue.CodeSnippet, &issue.Language, &issue.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning issue row: %w", err)
		}
		issue.Severity = detect.Severity(severity)
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issues: %w", err)
	}

	return issues, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (*Review, error) {
	var review Review
	if err := row.Scan(&review.ID, &review.Name, &review.RepoPath, &review.BaseRef,
		&review.TargetRef, &review.Template, &review.Result.FilesChanged,
		&review.Result.LinesAdded, &review.Result.LinesRemoved,
		&review.Result.Summary, &review.CreatedAt); err != nil {
		return nil, err
	}
	return &review, nil
}
