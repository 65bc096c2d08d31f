package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a keyed lookup has no row.
var ErrNotFound = errors.New("not found")

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After (events only)
	From   time.Time // updated/recorded at or after From
	To     time.Time // updated/recorded at or before To
	Ended  *bool     // ended flag for sessions, completed flag for records
	Filter string    // purpose for events, stage for sessions
}

// SessionRow is a persisted interview session. Data holds the encoded
// session; the other columns exist for listing without decoding it.
type SessionRow struct {
	ID        string
	Stage     string
	Language  string
	Ended     bool
	Data      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionRepo persists interview sessions. A Put followed by a Get for the
// same id must observe the Put.
type SessionRepo interface {
	// Get returns the session with id, or ErrNotFound.
	Get(ctx context.Context, id string) (*SessionRow, error)

	// Put inserts or replaces the session.
	Put(ctx context.Context, row *SessionRow) error

	// List returns sessions ordered by most recent update first.
	List(ctx context.Context, opts QueryOpts) ([]SessionRow, error)

	// Delete removes the session. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}

// RecordRow is the assembled candidate record for one session.
type RecordRow struct {
	SessionID      string
	Name           string
	Email          string
	Position       string
	EmotionalState string
	Completed      bool
	Data           []byte
	UpdatedAt      time.Time
}

// RecordRepo persists assembled candidate records.
type RecordRepo interface {
	Get(ctx context.Context, sessionID string) (*RecordRow, error)
	Put(ctx context.Context, row *RecordRow) error
	List(ctx context.Context, opts QueryOpts) ([]RecordRow, error)
	Delete(ctx context.Context, sessionID string) error
}

// LLMEvent captures a single LLM API call.
type LLMEvent struct {
	Sequence     int64
	Timestamp    time.Time
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM call events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, ev LLMEvent) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event by sequence, or ErrNotFound.
	GetLLMEvent(ctx context.Context, seq int64) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func millis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
