package tones

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/kudoslabs/kudos/pkg/database"
	"github.com/kudoslabs/kudos/pkg/pagination"
	"github.com/kudoslabs/kudos/pkg/query"
	"github.com/kudoslabs/kudos/pkg/repository"
)

const returning = `id, name, tone, instructions, description, active`

type repo struct {
	db         database.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a tone override repository implementing the System
// interface. The database system may be unconfigured; management
// operations then fail with database.ErrNotConfigured while
// Instructions silently serves defaults.
func New(
	db database.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "tones"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

// Instructions resolves the active override for a tone, falling back to
// the hardcoded default when storage is unconfigured, the lookup fails,
// or no override is active. The fallback path logs at debug so a broken
// override store does not flood logs on every enhancement.
func (r *repo) Instructions(ctx context.Context, tone Tone) string {
	fallback, err := DefaultInstructions(tone)
	if err != nil {
		// Unknown tone, treat it as constructive.
		fallback = constructiveInstructions
	}

	if !r.db.Configured() {
		return fallback
	}

	conn, err := r.db.Connection()
	if err != nil {
		return fallback
	}

	active := true
	q, args := query.
		NewBuilder(projection).
		WhereEquals("Tone", tone).
		WhereEquals("Active", &active).
		Build()

	o, err := repository.QueryOne(ctx, conn, q, args, scanOverride)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug("override lookup failed", "tone", tone, "error", err)
		}
		return fallback
	}

	return o.Instructions
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Override], error) {
	conn, err := r.db.Connection()
	if err != nil {
		return nil, err
	}

	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Instructions")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)

	var total int
	if err := conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count tone overrides: %w", err)
	}

	overrides, err := repository.QueryMany(ctx, conn, pageSQL, pageArgs, scanOverride)
	if err != nil {
		return nil, fmt.Errorf("query tone overrides: %w", err)
	}

	result := pagination.NewPageResult(overrides, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Override, error) {
	conn, err := r.db.Connection()
	if err != nil {
		return nil, err
	}

	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	o, err := repository.QueryOne(ctx, conn, q, args, scanOverride)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &o, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Override, error) {
	if err := validate(cmd.Name, cmd.Tone, cmd.Instructions); err != nil {
		return nil, err
	}

	conn, err := r.db.Connection()
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		INSERT INTO tone_overrides(name, tone, instructions, description)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, returning)

	o, err := repository.WithTx(ctx, conn, func(tx *sql.Tx) (Override, error) {
		return repository.QueryOne(ctx, tx, q,
			[]any{cmd.Name, cmd.Tone, cmd.Instructions, cmd.Description},
			scanOverride,
		)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tone override created", "id", o.ID, "name", o.Name, "tone", o.Tone)
	return &o, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Override, error) {
	if err := validate(cmd.Name, cmd.Tone, cmd.Instructions); err != nil {
		return nil, err
	}

	conn, err := r.db.Connection()
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		UPDATE tone_overrides
		SET name = $2, tone = $3, instructions = $4, description = $5
		WHERE id = $1
		RETURNING %s`, returning)

	o, err := repository.WithTx(ctx, conn, func(tx *sql.Tx) (Override, error) {
		return repository.QueryOne(ctx, tx, q,
			[]any{id, cmd.Name, cmd.Tone, cmd.Instructions, cmd.Description},
			scanOverride,
		)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tone override updated", "id", o.ID, "name", o.Name)
	return &o, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	conn, err := r.db.Connection()
	if err != nil {
		return err
	}

	err = repository.ExecExpectOne(ctx, conn,
		`DELETE FROM tone_overrides WHERE id = $1`, id)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tone override deleted", "id", id)
	return nil
}

// Activate marks an override active and deactivates any other override
// for the same tone in the same transaction, preserving the single
// active override invariant.
func (r *repo) Activate(ctx context.Context, id uuid.UUID) (*Override, error) {
	conn, err := r.db.Connection()
	if err != nil {
		return nil, err
	}

	o, err := repository.WithTx(ctx, conn, func(tx *sql.Tx) (Override, error) {
		deactivate := `
			UPDATE tone_overrides
			SET active = false
			WHERE active = true
			  AND id <> $1
			  AND tone = (SELECT tone FROM tone_overrides WHERE id = $1)`

		if _, err := tx.ExecContext(ctx, deactivate, id); err != nil {
			return Override{}, err
		}

		activate := fmt.Sprintf(`
			UPDATE tone_overrides
			SET active = true
			WHERE id = $1
			RETURNING %s`, returning)

		return repository.QueryOne(ctx, tx, activate, []any{id}, scanOverride)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tone override activated", "id", o.ID, "name", o.Name, "tone", o.Tone)
	return &o, nil
}

// Deactivate clears the active flag; the tone falls back to its default
// instructions.
func (r *repo) Deactivate(ctx context.Context, id uuid.UUID) (*Override, error) {
	conn, err := r.db.Connection()
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		UPDATE tone_overrides
		SET active = false
		WHERE id = $1
		RETURNING %s`, returning)

	o, err := repository.WithTx(ctx, conn, func(tx *sql.Tx) (Override, error) {
		return repository.QueryOne(ctx, tx, q, []any{id}, scanOverride)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tone override deactivated", "id", o.ID, "name", o.Name)
	return &o, nil
}

func validate(name string, tone Tone, instructions string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(instructions) == "" {
		return ErrInvalidOverride
	}
	if _, err := ParseTone(string(tone)); err != nil {
		return err
	}
	return nil
}
