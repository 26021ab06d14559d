package engine

// Config holds the board size, timing thresholds (in ticks) and scoring policy
// of one engine session.
type Config struct {
	Cols        int `json:"cols"`
	VisibleRows int `json:"visible_rows"`
	HiddenRows  int `json:"hidden_rows"`

	TickRate      int `json:"tick_rate"`      // ticks per second, used by the level gravity curve
	GravityFrames int `json:"gravity_frames"` // ticks per row when LevelGravity is off
	LockDelay     int `json:"lock_delay"`     // resting ticks before a piece locks
	MaxLockResets int `json:"max_lock_resets"` // 0 means unlimited
	DASDelay      int `json:"das_delay"`
	ARR           int `json:"arr"` // 0 shifts to the wall once DAS charges
	ClearDelay    int `json:"clear_delay"`

	LevelGravity  bool `json:"level_gravity"`
	StartLevel    int  `json:"start_level"`
	LinesPerLevel int  `json:"lines_per_level"`
	MaxLevel      int  `json:"max_level"`

	NextCount int     `json:"next_count"`
	Scoring   Scoring `json:"scoring"`
}

// Scoring is the point policy. Line awards and bonuses are multiplied by the level.
type Scoring struct {
	LineScores      [5]int `json:"line_scores"` // indexed by cleared line count
	BackToBackBonus int    `json:"back_to_back_bonus"`
	ComboBonus      int    `json:"combo_bonus"`
	SoftDropPoints  int    `json:"soft_drop_points"` // per row
	HardDropPoints  int    `json:"hard_drop_points"` // per row
}

// DefaultScoring returns the standard table: 100/300/500/800, B2B +400.
func DefaultScoring() Scoring {
	return Scoring{
		LineScores:      [5]int{0, 100, 300, 500, 800},
		BackToBackBonus: 400,
		ComboBonus:      50,
		SoftDropPoints:  1,
		HardDropPoints:  2,
	}
}

// DefaultConfig returns a 10x20 board with a 4-row hidden margin and
// 60 tick/s timings.
func DefaultConfig() Config {
	return Config{
		Cols:          DefaultCols,
		VisibleRows:   DefaultVisible,
		HiddenRows:    DefaultHidden,
		TickRate:      60,
		GravityFrames: 60,
		LockDelay:     30,
		DASDelay:      10,
		ARR:           2,
		LevelGravity:  true,
		StartLevel:    1,
		LinesPerLevel: 10,
		MaxLevel:      20,
		NextCount:     5,
		Scoring:       DefaultScoring(),
	}
}

// normalized fills zero values that would stall the engine.
func (c Config) normalized() Config {
	if c.Cols <= 0 {
		c.Cols = DefaultCols
	}
	if c.VisibleRows <= 0 {
		c.VisibleRows = DefaultVisible
	}
	if c.HiddenRows < 0 {
		c.HiddenRows = 0
	}
	if c.TickRate <= 0 {
		c.TickRate = 60
	}
	if c.GravityFrames <= 0 {
		c.GravityFrames = 1
	}
	if c.LockDelay <= 0 {
		c.LockDelay = 1
	}
	if c.StartLevel < 1 {
		c.StartLevel = 1
	}
	if c.LinesPerLevel <= 0 {
		c.LinesPerLevel = 10
	}
	if c.NextCount < 0 {
		c.NextCount = 0
	}
	return c
}
