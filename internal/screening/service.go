// Package screening runs interview turns end to end: it loads the session,
// advances the flow engine, phrases the reply and persists the session and
// candidate record after every turn.
package screening

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/interview"
	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/phrasing"
	"github.com/talentscout/screener/internal/record"
	"github.com/talentscout/screener/internal/store"
)

// Options configures a Service. Sessions is required.
type Options struct {
	Phraser  phrasing.Phraser
	Sessions store.SessionRepo
	Records  store.RecordRepo

	// ShiftThreshold overrides record.DefaultShiftThreshold when positive.
	ShiftThreshold float64

	// ExportDir, when set, receives a candidate file for every session that
	// ends.
	ExportDir    string
	ExportFormat record.Format

	// NewID generates session ids. Defaults to random UUIDs.
	NewID func() string
}

// Reply is the outcome of one turn.
type Reply struct {
	SessionID string                   `json:"session_id"`
	Text      string                   `json:"text"`
	Intent    interview.ResponseIntent `json:"intent"`
	Ended     bool                     `json:"ended"`
}

// Service processes turns for many sessions concurrently. Turns for one
// session id run strictly one at a time.
type Service struct {
	engine    *interview.Engine
	phraser   phrasing.Phraser
	sessions  store.SessionRepo
	records   store.RecordRepo
	assembler record.Assembler
	exportDir string
	format    record.Format
	newID     func() string
	log       *zap.Logger

	locks keyedMutex

	// live holds sessions whose last save failed, so the next turn
	// continues from the authoritative in-memory state.
	liveMu sync.Mutex
	live   map[string]*interview.Session
}

// New creates a Service.
func New(engine *interview.Engine, opts Options, log *zap.Logger) (*Service, error) {
	if engine == nil {
		return nil, fmt.Errorf("interview engine cannot be nil")
	}
	if opts.Sessions == nil {
		return nil, fmt.Errorf("session repository cannot be nil")
	}

	s := &Service{
		engine:    engine,
		phraser:   opts.Phraser,
		sessions:  opts.Sessions,
		records:   opts.Records,
		assembler: record.Assembler{ShiftThreshold: opts.ShiftThreshold},
		exportDir: opts.ExportDir,
		format:    opts.ExportFormat,
		newID:     opts.NewID,
		log:       logger.OrNop(log),
		live:      make(map[string]*interview.Session),
	}
	if s.phraser == nil {
		s.phraser = phrasing.NewTemplates()
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.NewString() }
	}
	if s.format == "" {
		s.format = record.FormatJSON
	}
	return s, nil
}

// Start opens a new session and returns its greeting. A PersistenceError
// comes with a usable reply.
func (s *Service) Start(ctx context.Context) (*Reply, error) {
	sess := s.engine.Start(s.newID())

	unlock := s.locks.Lock(sess.ID)
	defer unlock()

	logger.WithSession(s.log, sess.ID).Info("session started", zap.String("language", sess.Language))
	return s.respond(ctx, sess, s.engine.Resume(sess), false)
}

// HandleTurn processes one candidate utterance. An unknown id starts a new
// session under that id, and an empty id starts one under a fresh id.
//
// The returned error is a *PersistenceError when the turn was processed but
// not stored; the reply is valid in that case. ErrSessionUnavailable means
// the session could not be loaded and nothing was processed.
func (s *Service) HandleTurn(ctx context.Context, sessionID, utterance string) (*Reply, error) {
	if sessionID == "" {
		sessionID = s.newID()
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, err := s.load(ctx, sessionID)
	if errors.Is(err, ErrUnknownSession) {
		sess = s.engine.Start(sessionID)
		logger.WithSession(s.log, sessionID).Info("session started", zap.String("language", sess.Language))
	} else if err != nil {
		return nil, err
	}

	wasEnded := sess.Ended
	ri := s.engine.Advance(ctx, sess, utterance)
	return s.respond(ctx, sess, ri, !wasEnded && sess.Ended)
}

// Resume re-issues the current prompt of a stored session without
// consuming input.
func (s *Service) Resume(ctx context.Context, sessionID string) (*Reply, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ri := s.engine.Resume(sess)
	text, err := s.phraser.Phrase(ctx, sess, ri)
	if err != nil {
		return nil, fmt.Errorf("phrase reply: %w", err)
	}
	return &Reply{SessionID: sess.ID, Text: text, Intent: ri, Ended: sess.Ended}, nil
}

// Session returns a copy of the session state.
func (s *Service) Session(ctx context.Context, sessionID string) (*interview.Session, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Clone(), nil
}

// Record assembles the candidate record for a session.
func (s *Service) Record(ctx context.Context, sessionID string) (record.Record, error) {
	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return record.Record{}, err
	}
	return s.assembler.Assemble(sess), nil
}

func (s *Service) respond(ctx context.Context, sess *interview.Session, ri interview.ResponseIntent, justEnded bool) (*Reply, error) {
	text, err := s.phraser.Phrase(ctx, sess, ri)
	if err != nil {
		return nil, fmt.Errorf("phrase reply: %w", err)
	}
	reply := &Reply{SessionID: sess.ID, Text: text, Intent: ri, Ended: sess.Ended}

	if perr := s.persist(ctx, sess, justEnded); perr != nil {
		logger.WithSession(s.log, sess.ID).Warn("turn not persisted", zap.String("op", perr.Op), zap.Error(perr.Err))
		return reply, perr
	}
	return reply, nil
}

// load returns the live copy of a session if one exists, otherwise the
// stored one.
func (s *Service) load(ctx context.Context, id string) (*interview.Session, error) {
	s.liveMu.Lock()
	sess, ok := s.live[id]
	s.liveMu.Unlock()
	if ok {
		return sess, nil
	}

	row, err := s.sessions.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionUnavailable, err)
	}

	var loaded interview.Session
	if err := json.Unmarshal(row.Data, &loaded); err != nil {
		return nil, fmt.Errorf("%w: decode session %s: %w", ErrSessionUnavailable, id, err)
	}
	if err := loaded.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionUnavailable, err)
	}
	return &loaded, nil
}

// persist stores the session and its record. Failures keep the session
// live in memory until a later save succeeds.
func (s *Service) persist(ctx context.Context, sess *interview.Session, justEnded bool) *PersistenceError {
	var errs []error
	var ops []string
	fail := func(op string, err error) {
		ops = append(ops, op)
		errs = append(errs, err)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		fail("encode", err)
	} else if err := s.sessions.Put(ctx, &store.SessionRow{
		ID:        sess.ID,
		Stage:     string(sess.Stage),
		Language:  sess.Language,
		Ended:     sess.Ended,
		Data:      data,
		CreatedAt: sess.CreatedAt,
	}); err != nil {
		fail("save session", err)
	}

	s.liveMu.Lock()
	if len(errs) > 0 {
		s.live[sess.ID] = sess
	} else {
		delete(s.live, sess.ID)
	}
	s.liveMu.Unlock()

	rec := s.assembler.Assemble(sess)
	if s.records != nil {
		if err := s.saveRecord(ctx, rec); err != nil {
			fail("save record", err)
		}
	}
	if justEnded && s.exportDir != "" {
		path, err := record.Export(s.exportDir, rec, s.format)
		if err != nil {
			fail("export", err)
		} else {
			logger.WithSession(s.log, sess.ID).Info("candidate record exported", zap.String("path", path))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	op := ops[0]
	for _, o := range ops[1:] {
		op += ", " + o
	}
	return &PersistenceError{SessionID: sess.ID, Op: op, Err: errors.Join(errs...)}
}

func (s *Service) saveRecord(ctx context.Context, rec record.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return s.records.Put(ctx, &store.RecordRow{
		SessionID:      rec.SessionID,
		Name:           rec.Name,
		Email:          rec.Email,
		Position:       rec.Position,
		EmotionalState: rec.EmotionalState,
		Completed:      rec.Completed,
		Data:           data,
	})
}

// List returns stored sessions, most recently updated first.
func (s *Service) List(ctx context.Context, opts store.QueryOpts) ([]store.SessionRow, error) {
	rows, err := s.sessions.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return rows, nil
}

// Delete removes a session and its record.
func (s *Service) Delete(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	s.liveMu.Lock()
	delete(s.live, sessionID)
	s.liveMu.Unlock()

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	if s.records != nil {
		if err := s.records.Delete(ctx, sessionID); err != nil {
			return fmt.Errorf("delete record %s: %w", sessionID, err)
		}
	}
	return nil
}
