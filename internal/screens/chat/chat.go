// Package chat is the interview screen of the terminal app.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/talentscout/screener/internal/extract"
	"github.com/talentscout/screener/internal/interview"
	"github.com/talentscout/screener/internal/record"
	"github.com/talentscout/screener/internal/router"
	"github.com/talentscout/screener/internal/screen"
	"github.com/talentscout/screener/internal/screening"
	"github.com/talentscout/screener/internal/screens/summary"
	"github.com/talentscout/screener/internal/ui/components"
	"github.com/talentscout/screener/internal/ui/layout"
)

// maxMessage caps what the composer accepts.
const maxMessage = 2000

// turnTimeout bounds a single turn including any model calls.
const turnTimeout = 90 * time.Second

var spinnerFrames = []string{"·  ", "·· ", "···", " ··", "  ·", "   "}

// Conversation is the part of screening.Service the screen drives.
type Conversation interface {
	Start(ctx context.Context) (*screening.Reply, error)
	Resume(ctx context.Context, sessionID string) (*screening.Reply, error)
	HandleTurn(ctx context.Context, sessionID, utterance string) (*screening.Reply, error)
	Record(ctx context.Context, sessionID string) (record.Record, error)
}

// ChatScreen implements screen.Screen for a live interview.
type ChatScreen struct {
	conv       Conversation
	sessionID  string
	transcript components.Transcript
	input      components.TextInput
	intent     interview.ResponseIntent
	started    bool
	waiting    bool
	frame      int
	ended      bool
	confirm    bool
	errMsg     string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.StatusProvider = (*ChatScreen)(nil)

// New creates a chat screen. A non-empty sessionID resumes that session;
// otherwise a new one is started.
func New(conv Conversation, sessionID string) *ChatScreen {
	return &ChatScreen{
		conv:      conv,
		sessionID: sessionID,
		input:     components.NewTextInput("Type your reply and press Enter...", maxMessage),
		waiting:   true,
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	s.input.SetDisabled(true)
	return tea.Batch(s.openCmd(), s.input.Init(), spinnerTick())
}

func (s *ChatScreen) Title() string {
	return "Screening Interview"
}

// Status shows the interview stage and session language.
func (s *ChatScreen) Status() string {
	if !s.started {
		return ""
	}
	return fmt.Sprintf("%s · %s  ", stageLabel(s.intent.Summary.Stage), s.intent.Summary.Language)
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Quit"}}
	case s.confirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep going"},
		}
	case s.ended:
		return []layout.KeyHint{
			{Key: "Enter", Description: "View summary"},
			{Key: "Q", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Leave"},
		{Key: "bye", Description: "End interview"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		return s.handleReply(msg)

	case recordMsg:
		if msg.Err != nil {
			s.transcript.Add(components.SpeakerNotice, "Could not load the summary: "+msg.Err.Error())
			return s, nil
		}
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: summary.New(msg.Record)}
		}

	case spinnerTickMsg:
		if !s.waiting {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) handleReply(msg replyMsg) (screen.Screen, tea.Cmd) {
	s.waiting = false
	if msg.Reply == nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.started = true
	s.sessionID = msg.Reply.SessionID
	s.intent = msg.Reply.Intent
	s.transcript.Add(components.SpeakerAssistant, msg.Reply.Text)
	if screening.IsPersistence(msg.Err) {
		s.transcript.Add(components.SpeakerNotice, "This reply could not be saved. The interview continues, but may not survive a restart.")
	}

	if msg.Reply.Ended {
		s.ended = true
		s.input.SetDisabled(true)
		return s, nil
	}
	s.input.SetDisabled(false)
	return s, s.input.Init()
}

func (s *ChatScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, tea.Quit
	}

	if s.confirm {
		switch key {
		case "y", "Y":
			return s, tea.Quit
		case "n", "N", "esc":
			s.confirm = false
		}
		return s, nil
	}

	if s.ended {
		switch key {
		case "enter":
			return s, s.recordCmd()
		case "q", "Q", "esc":
			return s, tea.Quit
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirm = true
		return s, nil
	case "enter":
		if s.waiting {
			return s, nil
		}
		return s.send()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// send submits the composer content. Empty messages are sent too; the
// interview treats them as a failed attempt and re-prompts.
func (s *ChatScreen) send() (screen.Screen, tea.Cmd) {
	text := s.input.Take()
	s.transcript.Add(components.SpeakerCandidate, text)
	s.waiting = true
	s.input.SetDisabled(true)

	conv, id := s.conv, s.sessionID
	return s, tea.Batch(func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
		defer cancel()
		reply, err := conv.HandleTurn(ctx, id, text)
		return replyMsg{Reply: reply, Err: err}
	}, spinnerTick())
}

func (s *ChatScreen) openCmd() tea.Cmd {
	conv, id := s.conv, s.sessionID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
		defer cancel()
		var reply *screening.Reply
		var err error
		if id != "" {
			reply, err = conv.Resume(ctx, id)
		} else {
			reply, err = conv.Start(ctx)
		}
		return replyMsg{Reply: reply, Err: err}
	}
}

func (s *ChatScreen) recordCmd() tea.Cmd {
	conv, id := s.conv, s.sessionID
	return func() tea.Msg {
		rec, err := conv.Record(context.Background(), id)
		return recordMsg{Record: rec, Err: err}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func stageLabel(st interview.Stage) string {
	switch st {
	case interview.StageGreeting:
		return "Welcome"
	case interview.StageCollectingInfo, interview.StageTechStackDeclared:
		return "Your details"
	case interview.StageAskingQuestions, interview.StageAwaitingAnswers:
		return "Technical questions"
	case interview.StageSentimentSummary, interview.StageConcluded:
		return "Finished"
	}
	return strings.ToLower(string(st))
}

// profileProgress counts collected or skipped fields.
func profileProgress(snap interview.Snapshot) (done, total int) {
	total = len(extract.AllFields)
	return total - len(snap.Pending), total
}
