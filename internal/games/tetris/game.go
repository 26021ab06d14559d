// Package tetris adapts the SRS engine to the platform: it registers the
// playable modes, maps input actions to engine intents and renders the
// playfield into a core.Screen.
package tetris

import (
	"math/rand"
	"strconv"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// startLevel overrides the configured start level when positive
var startLevel int

// SetStartLevel sets the starting level. 0 keeps the configured one.
func SetStartLevel(level int) {
	startLevel = level
}

// LoadConfig resolves the configuration the CLI flags point at.
func LoadConfig() config.TetrisConfig {
	return config.Resolve(configPath, difficultyPreset, startLevel)
}

// ConfigPath returns the path set with SetConfigPath.
func ConfigPath() string {
	return configPath
}

// flashTicks is how long a line clear banner stays on screen.
const flashTicks = 60

// Game implements registry.Game for one Tetris mode.
type Game struct {
	mode Mode

	eng        *engine.Engine
	cfg        config.TetrisConfig
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	rng        *rand.Rand // seeds for restarts

	paused bool
	won    bool
	timeUp bool

	flash      string
	flashTimer int
	lastEvents []engine.Event

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a game in the given mode.
func New(mode Mode) *Game {
	return &Game{mode: mode}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.mode.Title()
}

// Description returns a one-line summary of the mode rules.
func (g *Game) Description() string {
	return g.mode.Description()
}

// Mode returns the rule set.
func (g *Game) Mode() Mode {
	return g.mode
}

// SetConfig replaces the configuration used by the next Reset.
func (g *Game) SetConfig(cfg config.TetrisConfig) {
	g.cfg = cfg
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime
	if g.cfg.Board.Cols == 0 {
		g.cfg = LoadConfig()
	}
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	g.paused = false
	g.won = false
	g.timeUp = false
	g.flash = ""
	g.flashTimer = 0
	g.lastEvents = nil

	g.eng = engine.New(g.cfg.Engine(runtime.TickRate), runtime.Seed)
	g.eng.StartRecording()
	g.eng.Events() // discard the first spawn

	g.minScreenW = g.cfg.Board.Cols*2 + 2 + 2*panelWidth + 2
	g.minScreenH = g.cfg.Board.Rows + 2
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH
}

// Resize updates the screen dimensions without restarting.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
}

// actionIntents maps platform actions to engine intents in application order.
// Terminals report key repeats but no key releases, so held shifting
// (DAS) is only reachable through engine intents sent by the transports.
var actionIntents = []struct {
	action core.Action
	intent engine.Intent
}{
	{core.ActionLeft, engine.IntentMoveLeft},
	{core.ActionRight, engine.IntentMoveRight},
	{core.ActionRotateCW, engine.IntentRotateCW},
	{core.ActionRotateCCW, engine.IntentRotateCCW},
	{core.ActionHold, engine.IntentHold},
	{core.ActionSoftDrop, engine.IntentSoftDrop},
	{core.ActionHardDrop, engine.IntentHardDrop},
}

// Step applies this frame's actions and advances the engine one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.eng == nil {
		g.Reset(g.runtime)
	}

	if in.Has(core.ActionRestart) && g.finished() {
		runtime := g.runtime
		runtime.Seed = g.rng.Int63()
		g.Reset(runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.finished() {
		g.paused = !g.paused
	}

	if g.paused || g.finished() || g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	for _, ai := range actionIntents {
		if in.Has(ai.action) {
			g.eng.Apply(ai.intent)
		}
	}
	g.eng.Tick()

	g.lastEvents = g.eng.Events()
	g.consumeEvents(g.lastEvents)
	g.applyRules()

	return core.StepResult{State: g.State()}
}

// consumeEvents turns line clears into a short banner.
func (g *Game) consumeEvents(events []engine.Event) {
	if g.flashTimer > 0 {
		g.flashTimer--
		if g.flashTimer == 0 {
			g.flash = ""
		}
	}
	for _, ev := range events {
		if ev.Type != engine.EventLineClear {
			continue
		}
		g.flash = clearBanner(ev)
		g.flashTimer = flashTicks
	}
}

func clearBanner(ev engine.Event) string {
	var name string
	switch ev.Lines {
	case 1:
		name = "SINGLE"
	case 2:
		name = "DOUBLE"
	case 3:
		name = "TRIPLE"
	default:
		name = "TETRIS!"
	}
	if ev.BackToBack {
		name = "B2B " + name
	}
	if ev.Combo > 0 {
		name += " x" + strconv.Itoa(ev.Combo+1)
	}
	return name
}

// applyRules ends the session when the mode goal is met.
func (g *Game) applyRules() {
	switch g.mode {
	case ModeSprint:
		if g.eng.Lines() >= SprintLines {
			g.won = true
		}
	case ModeUltra:
		if g.eng.CurrentTick() >= g.ultraTicks() {
			g.timeUp = true
		}
	}
}

func (g *Game) ultraTicks() uint64 {
	return uint64(UltraSeconds * g.runtime.TickRate)
}

// finished reports whether the session has ended for any reason.
func (g *Game) finished() bool {
	return g.eng.GameOver() || g.won || g.timeUp
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.eng.Score(),
		Lines:    g.eng.Lines(),
		Level:    g.eng.Level(),
		GameOver: g.finished(),
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Engine exposes the underlying engine for hosts that need raw queries.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// Replay returns the recorded session.
func (g *Game) Replay() engine.Replay {
	return g.eng.Replay()
}

// LastEvents returns the events emitted during the most recent step.
func (g *Game) LastEvents() []engine.Event {
	return g.lastEvents
}

// ElapsedSeconds returns the time played at the configured tick rate.
func (g *Game) ElapsedSeconds() float64 {
	return float64(g.eng.CurrentTick()) / float64(g.runtime.TickRate)
}
