package interview

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/extract"
	"github.com/talentscout/screener/internal/langid"
	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/questions"
	"github.com/talentscout/screener/internal/sentiment"
)

// Config tunes the state machine.
type Config struct {
	// FallbackThreshold is the number of consecutive failed turns on one
	// field after which the field is skipped.
	FallbackThreshold int

	// ExitKeywords end the interview from any non-terminal stage.
	ExitKeywords []string

	// LanguageThreshold is the detection confidence required to switch the
	// session language.
	LanguageThreshold float64

	// DefaultLanguage is the language of a new session.
	DefaultLanguage string

	// MaxQuestions caps the placeholder set used when the generator fails.
	MaxQuestions int
}

// DefaultExitKeywords end the interview when no list is configured.
var DefaultExitKeywords = []string{"bye", "goodbye", "quit", "exit", "stop", "end interview"}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		FallbackThreshold: 3,
		ExitKeywords:      DefaultExitKeywords,
		LanguageThreshold: 0.6,
		DefaultLanguage:   "en",
		MaxQuestions:      5,
	}
}

// Deps are the collaborators consulted on every turn. Nil members are
// replaced by the offline defaults.
type Deps struct {
	Detector  langid.Detector
	Analyzer  sentiment.Analyzer
	Extractor *extract.Extractor
	Questions questions.Source
	Catalog   *langid.Catalog
	Now       func() time.Time
}

// Engine advances sessions one utterance at a time. It holds no
// per-session state and is safe for concurrent use on distinct sessions.
type Engine struct {
	cfg       Config
	detector  langid.Detector
	analyzer  sentiment.Analyzer
	extractor *extract.Extractor
	questions questions.Source
	catalog   *langid.Catalog
	exits     exitMatcher
	now       func() time.Time
	log       *zap.Logger
}

// New creates an Engine.
func New(cfg Config, deps Deps, log *zap.Logger) (*Engine, error) {
	d := DefaultConfig()
	if cfg.FallbackThreshold <= 0 {
		cfg.FallbackThreshold = d.FallbackThreshold
	}
	if len(cfg.ExitKeywords) == 0 {
		cfg.ExitKeywords = d.ExitKeywords
	}
	if cfg.LanguageThreshold <= 0 {
		cfg.LanguageThreshold = d.LanguageThreshold
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = d.DefaultLanguage
	}
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = d.MaxQuestions
	}

	e := &Engine{
		cfg:       cfg,
		detector:  deps.Detector,
		analyzer:  deps.Analyzer,
		extractor: deps.Extractor,
		questions: deps.Questions,
		catalog:   deps.Catalog,
		exits:     newExitMatcher(cfg.ExitKeywords),
		now:       deps.Now,
		log:       logger.OrNop(log),
	}
	if e.detector == nil {
		e.detector = langid.NewDetector()
	}
	if e.analyzer == nil {
		e.analyzer = sentiment.NewLexicon(sentiment.DefaultLabels())
	}
	if e.extractor == nil {
		e.extractor = extract.New()
	}
	if e.questions == nil {
		e.questions = questions.New(nil, questions.DefaultConfig(), log)
	}
	if e.catalog == nil {
		catalog, err := langid.NewCatalog(nil)
		if err != nil {
			return nil, err
		}
		e.catalog = catalog
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e, nil
}

// Start creates a new session in the default language.
func (e *Engine) Start(id string) *Session {
	return NewSession(id, e.cfg.DefaultLanguage, e.now().UTC())
}

// Resume returns the intent for the session's current state without
// consuming input. Calling it any number of times yields the same intent.
func (e *Engine) Resume(s *Session) ResponseIntent {
	return s.intent()
}

// Advance processes one utterance and returns what to say next.
// Collaborator failures are absorbed: classifier errors become neutral
// samples and generator failures become the placeholder question set.
func (e *Engine) Advance(ctx context.Context, s *Session, utterance string) ResponseIntent {
	if s.Stage.Terminal() {
		ri := s.intent()
		ri.Kind = KindAcknowledge
		ri.Payload = ""
		return ri
	}

	log := logger.WithSession(e.log, s.ID)
	now := e.now().UTC()
	utterance = strings.TrimSpace(utterance)

	turn := Turn{
		Index:     len(s.Turns),
		Utterance: utterance,
		At:        now,
	}
	turn.Language = e.detectLanguage(s, utterance, log)
	e.sampleSentiment(ctx, s, turn.Index, utterance, log)
	s.Notice = ""

	switch {
	case e.exits.Match(utterance):
		e.conclude(s, EndExitKeyword, log)
		turn.Action = "exit"
	case s.Stage == StageGreeting:
		e.transition(s, StageCollectingInfo, log)
		turn.Action = "greeted"
	case s.Stage == StageCollectingInfo:
		turn.Action = e.collect(ctx, s, utterance, log)
	case s.Stage == StageAwaitingAnswers:
		turn.Action = e.answer(s, utterance, log)
	default:
		// Transient stages are never persisted between turns.
		log.Warn("utterance received in transient stage", zap.String("stage", string(s.Stage)))
		turn.Action = "ignored"
	}

	turn.Stage = s.Stage
	s.Turns = append(s.Turns, turn)
	s.UpdatedAt = now
	return s.intent()
}

func (e *Engine) detectLanguage(s *Session, utterance string, log *zap.Logger) string {
	code, confidence := e.detector.Detect(utterance)
	if code == langid.Undetermined || confidence < e.cfg.LanguageThreshold {
		return code
	}
	if code != s.Language && e.catalog.Supported(code) {
		log.Debug("session language switched",
			zap.String("from", s.Language), zap.String("to", code), zap.Float64("confidence", confidence))
		s.Language = code
	}
	return code
}

func (e *Engine) sampleSentiment(ctx context.Context, s *Session, turn int, utterance string, log *zap.Logger) {
	res, err := e.analyzer.Analyze(ctx, utterance)
	if err != nil {
		log.Warn("sentiment classification failed, recording neutral", zap.Error(err))
		res = sentiment.NeutralResult
	}
	s.Sentiment = append(s.Sentiment, SentimentSample{TurnIndex: turn, Label: res.Label, Score: res.Score})
}

// collect runs extraction for the pending fields and moves to the question
// phase once nothing is pending.
func (e *Engine) collect(ctx context.Context, s *Session, utterance string, log *zap.Logger) string {
	focus := extract.Focus(s.Pending)
	res := e.extractor.Extract(s.Pending, utterance)

	for _, a := range res.Assignments {
		s.Candidate.Apply(a)
		s.removePending(a.Field)
		log.Debug("field collected", zap.String("field", string(a.Field)))
	}

	action := "extracted"
	if res.Empty() {
		action = "fallback"
		e.fallback(s, focus, log)
	} else {
		s.Fallbacks = 0
		s.FallbackField = ""
	}

	next := extract.Focus(s.Pending)
	for _, v := range res.Invalid {
		if v.Field == next {
			s.Notice = v.Reason
			break
		}
	}

	if len(s.Pending) > 0 {
		e.transition(s, StageCollectingInfo, log)
		return action
	}
	e.transition(s, StageTechStackDeclared, log)
	e.startQuestions(ctx, s, log)
	return action
}

// fallback counts a failed turn against focus and skips the field once the
// threshold is reached.
func (e *Engine) fallback(s *Session, focus extract.Field, log *zap.Logger) {
	if focus == "" {
		return
	}
	if s.FallbackField != focus {
		s.FallbackField = focus
		s.Fallbacks = 0
	}
	s.Fallbacks++
	if s.Fallbacks < e.cfg.FallbackThreshold {
		return
	}

	log.Info("field skipped after repeated failed turns",
		zap.String("field", string(focus)), zap.Int("attempts", s.Fallbacks))
	s.removePending(focus)
	s.Skipped = append(s.Skipped, focus)
	s.Fallbacks = 0
	s.FallbackField = ""
}

// startQuestions invokes the generator once per session and surfaces the
// first question.
func (e *Engine) startQuestions(ctx context.Context, s *Session, log *zap.Logger) {
	e.transition(s, StageAskingQuestions, log)

	if !s.QuestionsGenerated {
		s.QuestionsGenerated = true
		stack := s.Candidate.TechStack
		years := s.Candidate.YearsOrZero()

		qs, err := e.questions.Questions(ctx, stack, years)
		if err != nil || len(qs) == 0 {
			log.Warn("question source failed, using placeholder set", zap.Error(err))
			qs = questions.Fallback(stack, years, e.cfg.MaxQuestions)
		}
		s.Questions = qs
		s.Answers = nil
	}

	if len(s.Answers) >= len(s.Questions) {
		e.finish(s, log)
		return
	}
	e.transition(s, StageAwaitingAnswers, log)
}

// answer records the utterance against the current question. An empty
// utterance re-asks the question; after the fallback threshold the
// question is recorded as unanswered and the interview moves on.
func (e *Engine) answer(s *Session, utterance string, log *zap.Logger) string {
	action := "answered"
	if utterance == "" {
		s.Fallbacks++
		if s.Fallbacks < e.cfg.FallbackThreshold {
			e.transition(s, StageAskingQuestions, log)
			e.transition(s, StageAwaitingAnswers, log)
			return "fallback"
		}
		action = "skipped"
	}
	s.Fallbacks = 0
	s.Answers = append(s.Answers, utterance)

	if len(s.Answers) >= len(s.Questions) {
		e.finish(s, log)
		return action
	}
	e.transition(s, StageAskingQuestions, log)
	e.transition(s, StageAwaitingAnswers, log)
	return action
}

func (e *Engine) finish(s *Session, log *zap.Logger) {
	e.transition(s, StageSentimentSummary, log)
	e.conclude(s, EndCompleted, log)
}

func (e *Engine) conclude(s *Session, reason string, log *zap.Logger) {
	e.transition(s, StageConcluded, log)
	s.Ended = true
	s.Completed = reason == EndCompleted
	s.EndReason = reason
	s.Fallbacks = 0
	s.FallbackField = ""
	log.Info("interview concluded",
		zap.String("reason", reason),
		zap.Int("pending_fields", len(s.Pending)),
		zap.Int("unanswered", len(s.Unanswered())))
}

func (e *Engine) transition(s *Session, to Stage, log *zap.Logger) {
	if !CanTransition(s.Stage, to) {
		log.Error("illegal stage transition refused",
			zap.String("from", string(s.Stage)), zap.String("to", string(to)))
		return
	}
	if s.Stage != to {
		log.Debug("stage transition", zap.String("from", string(s.Stage)), zap.String("to", string(to)))
	}
	s.enter(to)
}
