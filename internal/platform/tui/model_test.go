package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	game := tetris.New(tetris.ModeMarathon)
	game.SetConfig(config.DefaultTetrisConfig())
	m := NewModel(game, nil, testRuntime())
	m.Init()
	return m
}

// press feeds a key and then one tick, the way the program loop would.
func press(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	next, _ = next.(Model).Update(TickMsg{})
	return next.(Model)
}

func TestModelBackOnlyWhenPausedOrOver(t *testing.T) {
	m := newTestModel(t)

	m = press(m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("B left a running game")
	}

	m = press(m, runeKey('p'))
	if !m.gameState.Paused {
		t.Fatal("P did not pause")
	}

	m = press(m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("B did not leave a paused game")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(runeKey('q'))
	if !next.(Model).IsQuitting() {
		t.Error("IsQuitting() = false after q")
	}
	if cmd == nil {
		t.Error("quit returned no command")
	}
	if got := next.(Model).View(); got != "" {
		t.Errorf("View() after quit = %q, want empty", got)
	}
}

func TestModelViewShowsBoard(t *testing.T) {
	m := newTestModel(t)
	m = press(m, runeKey('x'))
	if view := m.View(); !strings.Contains(view, "SCORE") {
		t.Error("View() is missing the stats panel")
	}
}

func TestSessionModelFlow(t *testing.T) {
	s := NewSessionModel(nil, testRuntime(), "", "alice")

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if !s.InGame() {
		t.Fatal("Enter did not start a game")
	}

	next, _ = s.Update(runeKey('p'))
	next, _ = next.(SessionModel).Update(TickMsg{})
	next, _ = next.(SessionModel).Update(runeKey('b'))
	next, _ = next.(SessionModel).Update(TickMsg{})
	s = next.(SessionModel)
	if s.InGame() {
		t.Fatal("B on a paused game did not return to the menu")
	}

	next, cmd := s.Update(runeKey('q'))
	if next.(SessionModel).View() != "" || cmd == nil {
		t.Error("q in the menu did not end the session")
	}
}
