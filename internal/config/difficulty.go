package config

// DifficultyManager answers progression questions for the HUD from the
// difficulty section. The engine remains the authority on the live level.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	if cfg.StartLevel < 1 {
		cfg.StartLevel = 1
	}
	if cfg.LinesPerLevel <= 0 {
		cfg.LinesPerLevel = 10
	}
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether gravity follows the level.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the level reached after clearing the given number of lines.
func (d *DifficultyManager) Level(lines int) int {
	level := d.cfg.StartLevel + lines/d.cfg.LinesPerLevel
	if d.cfg.MaxLevel > 0 && level > d.cfg.MaxLevel {
		level = d.cfg.MaxLevel
	}
	return level
}

// LinesToNextLevel returns how many more lines raise the level, or 0 at the cap.
func (d *DifficultyManager) LinesToNextLevel(lines int) int {
	if d.cfg.MaxLevel > 0 && d.Level(lines) >= d.cfg.MaxLevel {
		return 0
	}
	return d.cfg.LinesPerLevel - lines%d.cfg.LinesPerLevel
}

// Progress returns the fraction of the current level completed; 1 at the cap.
func (d *DifficultyManager) Progress(lines int) float64 {
	if d.LinesToNextLevel(lines) == 0 {
		return 1
	}
	return float64(lines%d.cfg.LinesPerLevel) / float64(d.cfg.LinesPerLevel)
}
