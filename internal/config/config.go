// Package config provides YAML-based game configuration loading and
// difficulty presets for the Tetris platform.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// TetrisConfig contains all tunable parameters of a Tetris session.
type TetrisConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Preview    PreviewConfig    `yaml:"preview"`
}

// BoardConfig defines the playfield dimensions.
type BoardConfig struct {
	Cols   int `yaml:"cols"`
	Rows   int `yaml:"rows"`   // Visible rows
	Hidden int `yaml:"hidden"` // Spawn rows above the visible area
}

// TimingConfig defines frame-based timers. All values are in ticks.
type TimingConfig struct {
	GravityFrames int `yaml:"gravity_frames"`  // Used when level gravity is off
	LockDelay     int `yaml:"lock_delay"`      // Resting ticks before a piece locks
	MaxLockResets int `yaml:"max_lock_resets"` // 0 = unlimited
	DASDelay      int `yaml:"das_delay"`
	ARR           int `yaml:"arr"` // 0 = slide to the wall
	ClearDelay    int `yaml:"clear_delay"`
}

// ScoringConfig defines point awards.
type ScoringConfig struct {
	LineScores      []int `yaml:"line_scores"` // Indexed by lines cleared, 0..4
	BackToBackBonus int   `yaml:"back_to_back_bonus"`
	ComboBonus      int   `yaml:"combo_bonus"`
	SoftDropPoints  int   `yaml:"soft_drop_points"`
	HardDropPoints  int   `yaml:"hard_drop_points"`
}

// DifficultyConfig defines level progression.
type DifficultyConfig struct {
	Enabled       bool `yaml:"enabled"` // Level-based gravity curve
	StartLevel    int  `yaml:"start_level"`
	LinesPerLevel int  `yaml:"lines_per_level"`
	MaxLevel      int  `yaml:"max_level"`
}

// PreviewConfig defines what the player can see ahead.
type PreviewConfig struct {
	Next  int  `yaml:"next"`
	Ghost bool `yaml:"ghost"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// StartLevelForPreset returns the starting level for a difficulty preset.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 5
	case DifficultyHard:
		return 10
	default:
		return 1
	}
}

// IsFixedPreset returns true if the preset disables level gravity.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ErrBoardTooSmall is returned by Validate for boards that cannot fit a piece.
var ErrBoardTooSmall = errors.New("board must be at least 4x4")

// Validate reports configuration values the engine cannot run with.
func (c TetrisConfig) Validate() error {
	if c.Board.Cols < engine.MatrixSize || c.Board.Rows < engine.MatrixSize {
		return fmt.Errorf("%w: got %dx%d", ErrBoardTooSmall, c.Board.Cols, c.Board.Rows)
	}
	if c.Board.Hidden < 2 {
		return fmt.Errorf("hidden rows must be at least 2, got %d", c.Board.Hidden)
	}
	if c.Timing.LockDelay < 0 || c.Timing.DASDelay < 0 || c.Timing.ARR < 0 || c.Timing.ClearDelay < 0 {
		return errors.New("timing values must not be negative")
	}
	if len(c.Scoring.LineScores) > 5 {
		return fmt.Errorf("line_scores has %d entries, at most 5 allowed", len(c.Scoring.LineScores))
	}
	if c.Preview.Next < 0 {
		return fmt.Errorf("preview.next must not be negative, got %d", c.Preview.Next)
	}
	return nil
}

// Engine converts the YAML configuration into engine settings at the given tick rate.
func (c TetrisConfig) Engine(tickRate int) engine.Config {
	ec := engine.Config{
		Cols:          c.Board.Cols,
		VisibleRows:   c.Board.Rows,
		HiddenRows:    c.Board.Hidden,
		TickRate:      tickRate,
		GravityFrames: c.Timing.GravityFrames,
		LockDelay:     c.Timing.LockDelay,
		MaxLockResets: c.Timing.MaxLockResets,
		DASDelay:      c.Timing.DASDelay,
		ARR:           c.Timing.ARR,
		ClearDelay:    c.Timing.ClearDelay,
		LevelGravity:  c.Difficulty.Enabled,
		StartLevel:    c.Difficulty.StartLevel,
		LinesPerLevel: c.Difficulty.LinesPerLevel,
		MaxLevel:      c.Difficulty.MaxLevel,
		NextCount:     c.Preview.Next,
		Scoring: engine.Scoring{
			BackToBackBonus: c.Scoring.BackToBackBonus,
			ComboBonus:      c.Scoring.ComboBonus,
			SoftDropPoints:  c.Scoring.SoftDropPoints,
			HardDropPoints:  c.Scoring.HardDropPoints,
		},
	}
	copy(ec.Scoring.LineScores[:], c.Scoring.LineScores)
	return ec
}
