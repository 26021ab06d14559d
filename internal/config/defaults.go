package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration, matching defaults/tetris.yaml.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Cols:   10,
			Rows:   20,
			Hidden: 4,
		},
		Timing: TimingConfig{
			GravityFrames: 60,
			LockDelay:     30,
			MaxLockResets: 0,
			DASDelay:      10,
			ARR:           2,
			ClearDelay:    0,
		},
		Scoring: ScoringConfig{
			LineScores:      []int{0, 100, 300, 500, 800},
			BackToBackBonus: 400,
			ComboBonus:      50,
			SoftDropPoints:  1,
			HardDropPoints:  2,
		},
		Difficulty: DifficultyConfig{
			Enabled:       true,
			StartLevel:    1,
			LinesPerLevel: 10,
			MaxLevel:      20,
		},
		Preview: PreviewConfig{
			Next:  5,
			Ghost: true,
		},
	}
}
