package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const sessionsTable = "sessions"

var sessionColumns = []string{"id", "stage", "language", "ended", "data", "created_at", "updated_at"}

// sessionRepo implements SessionRepo on SQLite.
type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*SessionRow, error) {
	query, args := builder().Select(sessionColumns...).
		From(entsql.Table(sessionsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	row, err := scanSession(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return row, nil
}

func (r *sessionRepo) Put(ctx context.Context, row *SessionRow) error {
	now := time.Now().UTC()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now

	query, args := builder().Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(row.ID, row.Stage, row.Language, boolInt(row.Ended), row.Data,
			millis(row.CreatedAt), millis(row.UpdatedAt)).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				// created_at keeps its first value.
				u.SetExcluded("stage")
				u.SetExcluded("language")
				u.SetExcluded("ended")
				u.SetExcluded("data")
				u.SetExcluded("updated_at")
			}),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put session %s: %w", row.ID, err)
	}
	return nil
}

func (r *sessionRepo) List(ctx context.Context, opts QueryOpts) ([]SessionRow, error) {
	sel := builder().Select(sessionColumns...).
		From(entsql.Table(sessionsTable)).
		OrderBy(entsql.Desc("updated_at"))

	if opts.Ended != nil {
		sel.Where(entsql.EQ("ended", boolInt(*opts.Ended)))
	}
	if opts.Filter != "" {
		sel.Where(entsql.EQ("stage", opts.Filter))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("updated_at", millis(opts.From)))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("updated_at", millis(opts.To)))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRow
	for rows.Next() {
		row, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, *row)
	}
	return out, rows.Err()
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	query, args := builder().Delete(sessionsTable).
		Where(entsql.EQ("id", id)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(s scanner) (*SessionRow, error) {
	var (
		row              SessionRow
		ended            int
		created, updated int64
	)
	if err := s.Scan(&row.ID, &row.Stage, &row.Language, &ended, &row.Data, &created, &updated); err != nil {
		return nil, err
	}
	row.Ended = ended != 0
	row.CreatedAt = fromMillis(created)
	row.UpdatedAt = fromMillis(updated)
	return &row, nil
}
