package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/talentscout/screener/internal/router"
	"github.com/talentscout/screener/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "chat" }
func (s *stubScreen) Title() string                          { return "Chat" }

func newTestWelcome() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcome()

	if strings.Contains(w.View(80, 30), "first-round screening") {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 4)
	if w.elapsed != phase1End {
		t.Errorf("expected elapsed %v, got %v", phase1End, w.elapsed)
	}

	sendTicks(w, 6)
	view := w.View(80, 30)
	if !strings.Contains(view, "first-round screening") {
		t.Error("tagline should be visible after phase 2")
	}
	if !strings.Contains(view, `Type "bye" at any time`) {
		t.Error("agenda should mention the exit keyword")
	}
}

func TestKeypressDuringAnimationSkipsToTransition(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress during animation should trigger transition")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, callCount := newTestWelcome()

	sendTicks(w, 40)
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcome()

	sendTicks(w, 40)
	w.Update(tea.KeyPressMsg{Code: 'a'})

	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if _, cmd := w.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("ticks should stop after the transition")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestCompactBanner(t *testing.T) {
	if !strings.Contains(RenderBanner(40), "T A L E N T") {
		t.Error("narrow terminals should get the compact banner")
	}
}
