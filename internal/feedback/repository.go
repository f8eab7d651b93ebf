package feedback

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kudoslabs/kudos/internal/identity"
	"github.com/kudoslabs/kudos/pkg/database"
	"github.com/kudoslabs/kudos/pkg/pagination"
	"github.com/kudoslabs/kudos/pkg/query"
	"github.com/kudoslabs/kudos/pkg/repository"
)

type repo struct {
	db         database.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a feedback repository implementing the System interface.
// The database system may be unconfigured; operations then fail with
// database.ErrNotConfigured instead of panicking at startup.
func New(
	db database.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "feedback"),
		pagination: pagination,
	}
}

func (r *repo) Handler(identity identity.System) *Handler {
	return NewHandler(r, identity, r.logger, r.pagination)
}

// Submit validates the command, derives the rating from the category, and
// performs a single durable insert. No deduplication key exists: two
// submissions with identical content create two rows.
func (r *repo) Submit(ctx context.Context, cmd SubmitCommand) (*Submission, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	conn, err := r.db.Connection()
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO submissions(
			category, rating, original_text, enhanced_text, final_text,
			use_enhancement, is_accurate, submitter_email, submitter_name
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, category, rating, original_text, enhanced_text, final_text,
				  use_enhancement, is_accurate, submitter_email, submitter_name,
				  created_at`

	args := []any{
		cmd.Category,
		cmd.Category.Rating(),
		cmd.OriginalText,
		cmd.EnhancedText,
		cmd.FinalText,
		cmd.UseEnhancement,
		cmd.IsAccurate,
		cmd.SubmitterEmail,
		cmd.SubmitterName,
	}

	sub, err := repository.WithTx(ctx, conn, func(tx *sql.Tx) (Submission, error) {
		return repository.QueryOne(ctx, tx, q, args, scanSubmission)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("feedback submitted",
		"id", sub.ID,
		"category", sub.Category,
		"rating", sub.Rating,
		"use_enhancement", sub.UseEnhancement,
	)
	return &sub, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Submission], error) {
	conn, err := r.db.Connection()
	if err != nil {
		return nil, err
	}

	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "OriginalText", "FinalText")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)

	var (
		total int
		subs  []Submission
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := conn.QueryRowContext(gctx, countSQL, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("count submissions: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		subs, err = repository.QueryMany(gctx, conn, pageSQL, pageArgs, scanSubmission)
		if err != nil {
			return fmt.Errorf("query submissions: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(subs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Submission, error) {
	conn, err := r.db.Connection()
	if err != nil {
		return nil, err
	}

	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	sub, err := repository.QueryOne(ctx, conn, q, args, scanSubmission)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &sub, nil
}
