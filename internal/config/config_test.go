package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(defaultTetrisYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTetrisConfig()) {
		t.Errorf("embedded config = %+v, want %+v", cfg, DefaultTetrisConfig())
	}
}

// A resting piece that keeps moving must never lock under the shipped config.
func TestShippedConfigResetsLockOnEveryMove(t *testing.T) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(defaultTetrisYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	for _, preset := range []DifficultyPreset{"", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed} {
		t.Run(string(preset), func(t *testing.T) {
			c := cfg
			if preset != "" {
				ApplyTetrisPreset(&c, preset)
			}
			ec := c.Engine(60)
			e := engine.New(ec, 1)
			for e.SoftDropStep() {
			}

			wait := ec.LockDelay - 1
			for i := 0; i < 40; i++ {
				for j := 0; j < wait; j++ {
					e.Tick()
				}
				var moved bool
				if i%2 == 0 {
					moved = e.MoveLeft()
				} else {
					moved = e.MoveRight()
				}
				if !moved {
					t.Fatalf("move %d rejected", i)
				}
				if e.LockCounter() != 0 {
					t.Fatalf("LockCounter() after move %d = %d, want 0", i, e.LockCounter())
				}
				if !e.Grid().IsEmpty() {
					t.Fatalf("piece locked before move %d", i)
				}
			}

			for j := 0; j < ec.LockDelay; j++ {
				e.Tick()
			}
			if e.Grid().IsEmpty() {
				t.Error("piece did not lock once the moves stopped")
			}
		})
	}
}

func TestLoadCustomPathOverridesOnlyNamedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	data := []byte("board:\n  cols: 12\ntiming:\n  das_delay: 6\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris() error = %v", err)
	}
	if cfg.Board.Cols != 12 {
		t.Errorf("Board.Cols = %d, want 12", cfg.Board.Cols)
	}
	if cfg.Timing.DASDelay != 6 {
		t.Errorf("Timing.DASDelay = %d, want 6", cfg.Timing.DASDelay)
	}
	if cfg.Board.Rows != 20 || cfg.Timing.LockDelay != 30 {
		t.Errorf("unnamed fields changed: rows %d, lock delay %d", cfg.Board.Rows, cfg.Timing.LockDelay)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadTetris(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadTetris(missing) succeeded")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("board: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTetris(broken); err == nil {
		t.Error("LoadTetris(broken) succeeded")
	}

	tiny := filepath.Join(dir, "tiny.yaml")
	if err := os.WriteFile(tiny, []byte("board:\n  cols: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTetris(tiny); !errors.Is(err, ErrBoardTooSmall) {
		t.Errorf("LoadTetris(tiny) error = %v, want ErrBoardTooSmall", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TetrisConfig)
		wantErr bool
	}{
		{"defaults", func(*TetrisConfig) {}, false},
		{"narrow board", func(c *TetrisConfig) { c.Board.Cols = 3 }, true},
		{"short board", func(c *TetrisConfig) { c.Board.Rows = 2 }, true},
		{"no hidden rows", func(c *TetrisConfig) { c.Board.Hidden = 0 }, true},
		{"negative arr", func(c *TetrisConfig) { c.Timing.ARR = -1 }, true},
		{"too many line scores", func(c *TetrisConfig) { c.Scoring.LineScores = make([]int, 6) }, true},
		{"negative preview", func(c *TetrisConfig) { c.Preview.Next = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyTetrisPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		wantEnabled bool
		wantLevel   int
	}{
		{DifficultyEasy, true, 1},
		{DifficultyNormal, true, 5},
		{DifficultyHard, true, 10},
		{DifficultyFixed, false, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			ApplyTetrisPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.wantEnabled {
				t.Errorf("Enabled = %v, want %v", cfg.Difficulty.Enabled, tt.wantEnabled)
			}
			if cfg.Difficulty.StartLevel != tt.wantLevel {
				t.Errorf("StartLevel = %d, want %d", cfg.Difficulty.StartLevel, tt.wantLevel)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v, want normal", p, err)
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(nightmare) succeeded")
	}
}

func TestEngineConversion(t *testing.T) {
	cfg := DefaultTetrisConfig()
	ec := cfg.Engine(30)

	if ec.TickRate != 30 {
		t.Errorf("TickRate = %d, want 30", ec.TickRate)
	}
	if ec.Cols != 10 || ec.VisibleRows != 20 || ec.HiddenRows != 4 {
		t.Errorf("board = %dx%d+%d, want 10x20+4", ec.Cols, ec.VisibleRows, ec.HiddenRows)
	}
	if ec.Scoring.LineScores != [5]int{0, 100, 300, 500, 800} {
		t.Errorf("LineScores = %v", ec.Scoring.LineScores)
	}
	if !ec.LevelGravity || ec.MaxLockResets != 0 || ec.NextCount != 5 {
		t.Errorf("engine config = %+v", ec)
	}
}

func TestDifficultyManager(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{Enabled: true, StartLevel: 1, LinesPerLevel: 10, MaxLevel: 3})

	tests := []struct {
		lines     int
		wantLevel int
		wantNext  int
	}{
		{0, 1, 10},
		{7, 1, 3},
		{10, 2, 10},
		{19, 2, 1},
		{20, 3, 0},
		{95, 3, 0},
	}

	for _, tt := range tests {
		if got := d.Level(tt.lines); got != tt.wantLevel {
			t.Errorf("Level(%d) = %d, want %d", tt.lines, got, tt.wantLevel)
		}
		if got := d.LinesToNextLevel(tt.lines); got != tt.wantNext {
			t.Errorf("LinesToNextLevel(%d) = %d, want %d", tt.lines, got, tt.wantNext)
		}
	}

	if got := d.Progress(5); got != 0.5 {
		t.Errorf("Progress(5) = %v, want 0.5", got)
	}
	if got := d.Progress(30); got != 1 {
		t.Errorf("Progress at cap = %v, want 1", got)
	}

	if !d.IsEnabled() {
		t.Error("IsEnabled() = false for an enabled config")
	}
	if NewDifficultyManager(DifficultyConfig{}).IsEnabled() {
		t.Error("IsEnabled() = true for a disabled config")
	}
}

func TestResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	if err := os.WriteFile(path, []byte("timing:\n  das_delay: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Resolve(path, DifficultyHard, 0)
	if cfg.Timing.DASDelay != 4 {
		t.Errorf("DASDelay = %d, want 4", cfg.Timing.DASDelay)
	}
	if cfg.Difficulty.StartLevel != 10 || cfg.Timing.LockDelay != 20 {
		t.Errorf("hard preset not applied: start %d, lock delay %d", cfg.Difficulty.StartLevel, cfg.Timing.LockDelay)
	}

	cfg = Resolve(path, "", 7)
	if cfg.Difficulty.StartLevel != 7 {
		t.Errorf("StartLevel = %d, want 7", cfg.Difficulty.StartLevel)
	}

	cfg = Resolve(filepath.Join(t.TempDir(), "missing.yaml"), "", 0)
	if !reflect.DeepEqual(cfg, DefaultTetrisConfig()) {
		t.Errorf("missing file = %+v, want defaults", cfg)
	}
}
