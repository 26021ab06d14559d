package tetris

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

func testConfig() config.TetrisConfig {
	cfg := config.DefaultTetrisConfig()
	cfg.Difficulty.Enabled = false
	cfg.Timing.GravityFrames = 1000
	return cfg
}

func newTestGame(mode Mode, seed int64, tickRate int) *Game {
	g := New(mode)
	g.SetConfig(testConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: tickRate, Seed: seed})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestModesRegistered(t *testing.T) {
	for _, m := range Modes {
		if !registry.Exists(string(m)) {
			t.Errorf("mode %q not registered", m)
		}
		g, err := registry.Create(string(m))
		if err != nil {
			t.Fatalf("Create(%q) error = %v", m, err)
		}
		if g.ID() != string(m) {
			t.Errorf("ID() = %q, want %q", g.ID(), m)
		}
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(ModeMarathon, 12345, 60)
	g2 := newTestGame(ModeMarathon, 12345, 60)

	script := map[int][]core.Action{
		5:  {core.ActionLeft},
		9:  {core.ActionRotateCW},
		14: {core.ActionHardDrop},
		20: {core.ActionHold},
		26: {core.ActionRight},
		40: {core.ActionRotateCCW},
		44: {core.ActionSoftDrop},
		50: {core.ActionHardDrop},
	}
	for i := 0; i < 120; i++ {
		in := frame(script[i]...)
		g1.Step(in)
		g2.Step(in)
	}

	if !reflect.DeepEqual(g1.Snapshot(), g2.Snapshot()) {
		t.Errorf("snapshots differ:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
	if _, err := g1.Replay().Verify(); err != nil {
		t.Errorf("recorded replay does not verify: %v", err)
	}
}

func TestPauseStopsTime(t *testing.T) {
	g := newTestGame(ModeMarathon, 1, 60)
	g.Step(frame())
	before := g.Engine().CurrentTick()

	g.Step(frame(core.ActionPause))
	g.Step(frame(core.ActionHardDrop))
	if got := g.Engine().CurrentTick(); got != before {
		t.Errorf("tick advanced while paused: %d, want %d", got, before)
	}
	if !g.State().Paused {
		t.Error("State().Paused = false after pause")
	}
	if g.Snapshot().State != StatePaused {
		t.Errorf("Snapshot().State = %q, want %q", g.Snapshot().State, StatePaused)
	}

	g.Step(frame(core.ActionPause))
	if got := g.Engine().CurrentTick(); got != before+1 {
		t.Errorf("tick after resume = %d, want %d", got, before+1)
	}
}

func TestHardDropAction(t *testing.T) {
	g := newTestGame(ModeMarathon, 7, 60)
	g.Step(frame(core.ActionHardDrop))

	var locked bool
	for _, ev := range g.LastEvents() {
		if ev.Type == engine.EventLock {
			locked = true
		}
	}
	if !locked {
		t.Errorf("no lock event after hard drop, events = %+v", g.LastEvents())
	}
	if g.State().Score <= 0 {
		t.Errorf("Score = %d, want hard drop points", g.State().Score)
	}
}

func TestUltraEndsOnTime(t *testing.T) {
	g := newTestGame(ModeUltra, 3, 1)

	for i := 0; i < UltraSeconds+20; i++ {
		g.Step(frame())
	}

	if got := g.Engine().CurrentTick(); got != UltraSeconds {
		t.Errorf("CurrentTick() = %d, want %d", got, UltraSeconds)
	}
	st := g.State()
	if !st.GameOver || st.Won {
		t.Errorf("State() = %+v, want game over without win", st)
	}
	if g.Snapshot().State != StateTimeUp {
		t.Errorf("Snapshot().State = %q, want %q", g.Snapshot().State, StateTimeUp)
	}

	g.Step(frame(core.ActionRestart))
	if g.State().GameOver {
		t.Error("restart did not start a new session")
	}
	if got := g.Engine().CurrentTick(); got != 0 {
		t.Errorf("CurrentTick() after restart = %d, want 0", got)
	}
}

func TestRenderShowsLockedPiece(t *testing.T) {
	g := newTestGame(ModeMarathon, 11, 60)
	p, ok := g.Engine().Piece()
	if !ok {
		t.Fatal("no active piece after reset")
	}
	g.Step(frame(core.ActionHardDrop))

	scr := core.NewScreen(80, 24)
	g.Render(scr)

	text := scr.String()
	for _, want := range []string{"HOLD", "NEXT", "SCORE", "LINES", "LEVEL"} {
		if !strings.Contains(text, want) {
			t.Errorf("render missing %q", want)
		}
	}

	// Board interior: 10 cells of two columns, centered, below a one-row frame.
	bx := (80-22)/2 + 1
	blocks := 0
	for y := 2; y < 22; y++ {
		for x := bx; x < bx+20; x++ {
			c := scr.GetCell(x, y)
			if c.Rune == '█' && c.Color == KindColor(p.Kind) {
				blocks++
			}
		}
	}
	if blocks != 8 {
		t.Errorf("board shows %d block glyphs of the dropped piece, want 8", blocks)
	}
}

func TestRenderClipsHiddenRows(t *testing.T) {
	g := newTestGame(ModeMarathon, 11, 60)
	if p, ok := g.Engine().Piece(); !ok || p.Row >= g.cfg.Board.Hidden-1 {
		t.Fatalf("spawned piece not in the hidden rows: %+v", p)
	}

	scr := core.NewScreen(80, 24)
	g.Render(scr)

	// 22-row board centered in 24 rows: frame at y=1, interior 2..21.
	bx := (80 - 22) / 2
	for x := bx + 1; x < bx+21; x++ {
		if r := scr.Get(x, 1); r != '─' {
			t.Fatalf("top frame at x=%d = %q, want '─'", x, r)
		}
	}
	for y := 2; y < 22; y++ {
		for x := bx + 1; x < bx+21; x++ {
			if scr.Get(x, y) == '█' {
				t.Fatalf("hidden piece drawn at (%d, %d)", x, y)
			}
		}
	}
}

func TestLevelBar(t *testing.T) {
	tests := []struct {
		progress float64
		want     string
	}{
		{0, "░░░░"},
		{0.5, "██░░"},
		{1, "████"},
		{1.5, "████"},
	}
	for _, tt := range tests {
		if got := levelBar(tt.progress, 4); got != tt.want {
			t.Errorf("levelBar(%v) = %q, want %q", tt.progress, got, tt.want)
		}
	}
}

func TestRenderLevelProgress(t *testing.T) {
	g := New(ModeMarathon)
	cfg := testConfig()
	cfg.Difficulty.Enabled = true
	g.SetConfig(cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 2})

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	text := scr.String()
	if !strings.Contains(text, "NEXT LV") || !strings.Contains(text, levelBar(0, panelWidth-2)) {
		t.Errorf("marathon HUD lacks the level bar:\n%s", text)
	}

	fixed := newTestGame(ModeMarathon, 2, 60)
	fixed.Render(scr)
	if text := scr.String(); !strings.Contains(text, "FIXED") || strings.Contains(text, "NEXT LV") {
		t.Errorf("fixed speed HUD = \n%s", text)
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New(ModeMarathon)
	g.SetConfig(testConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 12, TickRate: 60, Seed: 1})

	g.Step(frame())
	if got := g.Engine().CurrentTick(); got != 0 {
		t.Errorf("tick advanced on a small screen: %d", got)
	}

	scr := core.NewScreen(30, 12)
	g.Render(scr)
	if !strings.Contains(scr.String(), "Window too small") {
		t.Error("render does not report the small window")
	}

	g.Resize(80, 24)
	g.Step(frame())
	if got := g.Engine().CurrentTick(); got != 1 {
		t.Errorf("tick after resize = %d, want 1", got)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeMarathon, false},
		{"marathon", ModeMarathon, false},
		{"sprint", ModeSprint, false},
		{"ultra", ModeUltra, false},
		{"zen", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00.00"},
		{5.5, "0:05.50"},
		{75.25, "1:15.25"},
		{180, "3:00.00"},
	}
	for _, tt := range tests {
		if got := formatTime(tt.seconds); got != tt.want {
			t.Errorf("formatTime(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestKindColorsDistinct(t *testing.T) {
	seen := make(map[core.Color]bool)
	for _, k := range []string{"I", "O", "T", "S", "Z", "J", "L"} {
		kind := mustKind(t, k)
		c := KindColor(kind)
		if c == core.ColorDefault {
			t.Errorf("KindColor(%s) = default", k)
		}
		if seen[c] {
			t.Errorf("KindColor(%s) = %v, already used", k, c)
		}
		seen[c] = true
	}
}

func mustKind(t *testing.T, s string) engine.Kind {
	t.Helper()
	k, err := engine.ParseKind(s)
	if err != nil {
		t.Fatalf("ParseKind(%q) error = %v", s, err)
	}
	return k
}
