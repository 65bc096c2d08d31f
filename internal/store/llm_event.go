package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const eventsTable = "llm_events"

var eventColumns = []string{
	"sequence", "timestamp", "session_id", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

// eventRepo implements EventRepo backed by SQLite and the sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, ev LLMEvent) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	query, args := builder().Insert(eventsTable).
		Columns(eventColumns...).
		Values(seqNum, millis(ev.Timestamp), ev.SessionID, ev.Provider, ev.Model, ev.Purpose,
			ev.InputTokens, ev.OutputTokens, ev.LatencyMs, boolInt(ev.Success),
			ev.ErrorMessage, ev.RequestBody, ev.ResponseBody).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	sel := builder().Select(eventColumns...).
		From(entsql.Table(eventsTable)).
		OrderBy(entsql.Desc("sequence"))

	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Filter != "" {
		sel.Where(entsql.EQ("purpose", opts.Filter))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", millis(opts.From)))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", millis(opts.To)))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		out = append(out, *ev)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, seq int64) (*LLMEvent, error) {
	query, args := builder().Select(eventColumns...).
		From(entsql.Table(eventsTable)).
		Where(entsql.EQ("sequence", seq)).
		Query()

	ev, err := scanEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", seq, err)
	}
	return ev, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	return r.usageBy(ctx, "purpose")
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	return r.usageBy(ctx, "model")
}

func (r *eventRepo) usageBy(ctx context.Context, column string) ([]LLMUsage, error) {
	t := entsql.Table(eventsTable)
	query, args := builder().Select(
		t.C(column),
		entsql.Count("*"),
		entsql.Sum(t.C("input_tokens")),
		entsql.Sum(t.C("output_tokens")),
		entsql.Avg(t.C("latency_ms")),
	).
		From(t).
		GroupBy(t.C(column)).
		OrderBy(t.C(column)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("usage by %s: %w", column, err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var (
			u   LLMUsage
			avg float64
		)
		if err := rows.Scan(&u.Key, &u.Calls, &u.InputTokens, &u.OutputTokens, &avg); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		u.AvgLatencyMs = int64(avg)
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanEvent(s scanner) (*LLMEvent, error) {
	var (
		ev      LLMEvent
		ts      int64
		success int
	)
	if err := s.Scan(&ev.Sequence, &ts, &ev.SessionID, &ev.Provider, &ev.Model, &ev.Purpose,
		&ev.InputTokens, &ev.OutputTokens, &ev.LatencyMs, &success,
		&ev.ErrorMessage, &ev.RequestBody, &ev.ResponseBody); err != nil {
		return nil, err
	}
	ev.Timestamp = fromMillis(ts)
	ev.Success = success != 0
	return &ev, nil
}
