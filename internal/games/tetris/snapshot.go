package tetris

import "github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"

// GameStateType represents the current session state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StateWin         GameStateType = "win"
	StateTimeUp      GameStateType = "time_up"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the session for determinism testing.
type Snapshot struct {
	Mode   Mode
	State  GameStateType
	Engine engine.Snapshot
}

// Snapshot returns the current session snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.screenTooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.timeUp:
		state = StateTimeUp
	case g.eng.GameOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}
	return Snapshot{
		Mode:   g.mode,
		State:  state,
		Engine: g.eng.Snapshot(),
	}
}
