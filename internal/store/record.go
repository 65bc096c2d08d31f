package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const recordsTable = "candidate_records"

var recordColumns = []string{"session_id", "name", "email", "position", "emotional_state", "completed", "data", "updated_at"}

// recordRepo implements RecordRepo on SQLite.
type recordRepo struct {
	db *sql.DB
}

func (r *recordRepo) Get(ctx context.Context, sessionID string) (*RecordRow, error) {
	query, args := builder().Select(recordColumns...).
		From(entsql.Table(recordsTable)).
		Where(entsql.EQ("session_id", sessionID)).
		Query()

	row, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", sessionID, err)
	}
	return row, nil
}

func (r *recordRepo) Put(ctx context.Context, row *RecordRow) error {
	row.UpdatedAt = time.Now().UTC()

	query, args := builder().Insert(recordsTable).
		Columns(recordColumns...).
		Values(row.SessionID, row.Name, row.Email, row.Position, row.EmotionalState,
			boolInt(row.Completed), row.Data, millis(row.UpdatedAt)).
		OnConflict(
			entsql.ConflictColumns("session_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put record %s: %w", row.SessionID, err)
	}
	return nil
}

func (r *recordRepo) List(ctx context.Context, opts QueryOpts) ([]RecordRow, error) {
	sel := builder().Select(recordColumns...).
		From(entsql.Table(recordsTable)).
		OrderBy(entsql.Desc("updated_at"))

	if opts.Ended != nil {
		sel.Where(entsql.EQ("completed", boolInt(*opts.Ended)))
	}
	if opts.Filter != "" {
		sel.Where(entsql.EQ("position", opts.Filter))
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
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []RecordRow
	for rows.Next() {
		row, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, *row)
	}
	return out, rows.Err()
}

func (r *recordRepo) Delete(ctx context.Context, sessionID string) error {
	query, args := builder().Delete(recordsTable).
		Where(entsql.EQ("session_id", sessionID)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete record %s: %w", sessionID, err)
	}
	return nil
}

func scanRecord(s scanner) (*RecordRow, error) {
	var (
		row       RecordRow
		completed int
		updated   int64
	)
	if err := s.Scan(&row.SessionID, &row.Name, &row.Email, &row.Position,
		&row.EmotionalState, &completed, &row.Data, &updated); err != nil {
		return nil, err
	}
	row.Completed = completed != 0
	row.UpdatedAt = fromMillis(updated)
	return &row, nil
}
