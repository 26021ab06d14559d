package engine

import "math"

// comboInactive is the combo value between clearing streaks.
const comboInactive = -1

// Level returns the current level: the start level plus one per
// LinesPerLevel cleared lines, capped at MaxLevel when set.
func (e *Engine) Level() int {
	level := e.cfg.StartLevel + e.lines/e.cfg.LinesPerLevel
	if e.cfg.MaxLevel > 0 && level > e.cfg.MaxLevel {
		level = e.cfg.MaxLevel
	}
	return level
}

// GravityThreshold returns the ticks per row of automatic fall at the current level.
func (e *Engine) GravityThreshold() int {
	if !e.cfg.LevelGravity {
		return e.cfg.GravityFrames
	}
	return LevelGravityFrames(e.Level(), e.cfg.TickRate)
}

// LevelGravityFrames converts the guideline fall curve
// (0.8 - (level-1)*0.007)^(level-1) seconds per row into ticks. Never below 1.
func LevelGravityFrames(level, tickRate int) int {
	if level < 1 {
		level = 1
	}
	seconds := math.Pow(0.8-float64(level-1)*0.007, float64(level-1))
	frames := int(math.Round(seconds * float64(tickRate)))
	if frames < 1 {
		return 1
	}
	return frames
}

// award applies the scoring policy for a lock that cleared n lines and
// returns the points added. The level used is the one before the clear.
func (e *Engine) award(n int) int {
	if n <= 0 {
		e.combo = comboInactive
		return 0
	}

	level := e.Level()
	s := e.cfg.Scoring
	idx := n
	if idx >= len(s.LineScores) {
		idx = len(s.LineScores) - 1
	}
	points := s.LineScores[idx] * level

	// Back-to-back only chains tetrises; T-spins are not detected.
	if n >= 4 {
		if e.backToBack {
			points += s.BackToBackBonus * level
		}
		e.backToBack = true
	} else {
		e.backToBack = false
	}

	if e.combo >= 0 {
		e.combo++
	} else {
		e.combo = 0
	}
	if e.combo > 0 {
		points += s.ComboBonus * e.combo * level
	}

	e.lines += n
	e.score += points
	return points
}
