package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/talentscout/screener/internal/interview"
	"github.com/talentscout/screener/internal/record"
	"github.com/talentscout/screener/internal/screening"
)

type stubConversation struct{}

func (stubConversation) Start(context.Context) (*screening.Reply, error) {
	return &screening.Reply{SessionID: "new", Text: "Welcome!", Intent: interview.ResponseIntent{Kind: interview.KindAcknowledge}}, nil
}

func (stubConversation) Resume(_ context.Context, id string) (*screening.Reply, error) {
	return &screening.Reply{SessionID: id, Text: "Welcome back!", Intent: interview.ResponseIntent{Kind: interview.KindAcknowledge}}, nil
}

func (stubConversation) HandleTurn(_ context.Context, id, _ string) (*screening.Reply, error) {
	return &screening.Reply{SessionID: id, Text: "ok"}, nil
}

func (stubConversation) Record(context.Context, string) (record.Record, error) {
	return record.Record{}, nil
}

func TestNewInterviewOpensOnWelcome(t *testing.T) {
	m := newAppModel(stubConversation{}, "")
	if got := m.router.Active().Title(); got != "" {
		t.Fatalf("expected the welcome screen, got %q", got)
	}
}

func TestResumeOpensChat(t *testing.T) {
	m := newAppModel(stubConversation{}, "abc")
	if got := m.router.Active().Title(); got != "Screening Interview" {
		t.Fatalf("expected the chat screen, got %q", got)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(stubConversation{}, "abc")
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected QuitMsg")
	}
}
