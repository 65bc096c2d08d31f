package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory is a process-local implementation of the repositories. It is
// used by the memory storage backend and in tests.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]SessionRow
	records  map[string]RecordRow
	events   []LLMEvent
	seq      int64
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[string]SessionRow),
		records:  make(map[string]RecordRow),
	}
}

// SessionRepo returns the session view of the store.
func (m *Memory) SessionRepo() SessionRepo { return memSessions{m} }

// RecordRepo returns the record view of the store.
func (m *Memory) RecordRepo() RecordRepo { return memRecords{m} }

// EventRepo returns the event view of the store.
func (m *Memory) EventRepo() EventRepo { return memEvents{m} }

type memSessions struct{ m *Memory }

func (r memSessions) Get(_ context.Context, id string) (*SessionRow, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	row, ok := r.m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	row.Data = append([]byte(nil), row.Data...)
	return &row, nil
}

func (r memSessions) Put(_ context.Context, row *SessionRow) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	now := time.Now().UTC()
	if prev, ok := r.m.sessions[row.ID]; ok {
		row.CreatedAt = prev.CreatedAt
	} else if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now
	stored := *row
	stored.Data = append([]byte(nil), row.Data...)
	r.m.sessions[row.ID] = stored
	return nil
}

func (r memSessions) List(_ context.Context, opts QueryOpts) ([]SessionRow, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var out []SessionRow
	for _, row := range r.m.sessions {
		if opts.Ended != nil && row.Ended != *opts.Ended {
			continue
		}
		if opts.Filter != "" && row.Stage != opts.Filter {
			continue
		}
		if !inRange(row.UpdatedAt, opts) {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return limit(out, opts.Limit), nil
}

func (r memSessions) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.sessions, id)
	return nil
}

type memRecords struct{ m *Memory }

func (r memRecords) Get(_ context.Context, sessionID string) (*RecordRow, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	row, ok := r.m.records[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (r memRecords) Put(_ context.Context, row *RecordRow) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	row.UpdatedAt = time.Now().UTC()
	stored := *row
	stored.Data = append([]byte(nil), row.Data...)
	r.m.records[row.SessionID] = stored
	return nil
}

func (r memRecords) List(_ context.Context, opts QueryOpts) ([]RecordRow, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var out []RecordRow
	for _, row := range r.m.records {
		if opts.Ended != nil && row.Completed != *opts.Ended {
			continue
		}
		if opts.Filter != "" && row.Position != opts.Filter {
			continue
		}
		if !inRange(row.UpdatedAt, opts) {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return limit(out, opts.Limit), nil
}

func (r memRecords) Delete(_ context.Context, sessionID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.records, sessionID)
	return nil
}

type memEvents struct{ m *Memory }

func (r memEvents) AppendLLMRequest(_ context.Context, ev LLMEvent) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.seq++
	ev.Sequence = r.m.seq
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	r.m.events = append(r.m.events, ev)
	return nil
}

func (r memEvents) QueryLLMEvents(_ context.Context, opts QueryOpts) ([]LLMEvent, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var out []LLMEvent
	for i := len(r.m.events) - 1; i >= 0; i-- {
		ev := r.m.events[i]
		if ev.Sequence <= opts.After {
			continue
		}
		if opts.Filter != "" && ev.Purpose != opts.Filter {
			continue
		}
		if !inRange(ev.Timestamp, opts) {
			continue
		}
		out = append(out, ev)
	}
	return limit(out, opts.Limit), nil
}

func (r memEvents) GetLLMEvent(_ context.Context, seq int64) (*LLMEvent, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, ev := range r.m.events {
		if ev.Sequence == seq {
			return &ev, nil
		}
	}
	return nil, ErrNotFound
}

func (r memEvents) LLMUsageByPurpose(_ context.Context) ([]LLMUsage, error) {
	return r.usageBy(func(ev LLMEvent) string { return ev.Purpose }), nil
}

func (r memEvents) LLMUsageByModel(_ context.Context) ([]LLMUsage, error) {
	return r.usageBy(func(ev LLMEvent) string { return ev.Model }), nil
}

func (r memEvents) usageBy(key func(LLMEvent) string) []LLMUsage {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	byKey := make(map[string]*LLMUsage)
	latency := make(map[string]int64)
	for _, ev := range r.m.events {
		k := key(ev)
		u, ok := byKey[k]
		if !ok {
			u = &LLMUsage{Key: k}
			byKey[k] = u
		}
		u.Calls++
		u.InputTokens += ev.InputTokens
		u.OutputTokens += ev.OutputTokens
		latency[k] += ev.LatencyMs
	}
	out := make([]LLMUsage, 0, len(byKey))
	for k, u := range byKey {
		u.AvgLatencyMs = latency[k] / int64(u.Calls)
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func inRange(t time.Time, opts QueryOpts) bool {
	if !opts.From.IsZero() && t.Before(opts.From) {
		return false
	}
	if !opts.To.IsZero() && t.After(opts.To) {
		return false
	}
	return true
}

func limit[T any](rows []T, n int) []T {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}
