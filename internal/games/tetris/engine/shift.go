package engine

// Direction is a horizontal auto-shift direction.
type Direction int

const (
	DirNone  Direction = 0
	DirLeft  Direction = -1
	DirRight Direction = 1
)

// String returns "left", "right" or "none".
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// PressShift starts holding a direction: the piece moves once and the DAS and
// ARR counters restart. Pressing the opposite direction while one is held
// reverses immediately.
func (e *Engine) PressShift(dir Direction) bool {
	if dir != DirLeft && dir != DirRight {
		return false
	}
	e.record(shiftIntent(dir, true))
	if dir == DirLeft {
		e.leftHeld = true
	} else {
		e.rightHeld = true
	}
	e.shiftDir = dir
	e.dasCounter = 0
	e.arrCounter = 0
	return e.shift(dir)
}

// ReleaseShift stops holding a direction. If the other direction is still
// held it takes over with a fresh DAS delay. It reports whether the
// effective direction changed; releasing a direction that is not driving
// the shift only forgets it.
func (e *Engine) ReleaseShift(dir Direction) bool {
	if dir != DirLeft && dir != DirRight {
		return false
	}
	e.record(shiftIntent(dir, false))
	if dir == DirLeft {
		e.leftHeld = false
	} else {
		e.rightHeld = false
	}
	if e.shiftDir != dir {
		return false
	}

	e.shiftDir = DirNone
	if e.leftHeld {
		e.shiftDir = DirLeft
	} else if e.rightHeld {
		e.shiftDir = DirRight
	}
	e.dasCounter = 0
	e.arrCounter = 0
	return true
}

// ShiftDir returns the effective auto-shift direction.
func (e *Engine) ShiftDir() Direction {
	return e.shiftDir
}

// stepShift advances DAS/ARR by one tick.
func (e *Engine) stepShift() {
	if e.shiftDir == DirNone {
		return
	}
	e.dasCounter++
	if e.dasCounter <= e.cfg.DASDelay {
		return
	}
	if e.cfg.ARR <= 0 {
		for e.shift(e.shiftDir) {
		}
		return
	}
	e.arrCounter++
	if e.arrCounter >= e.cfg.ARR {
		e.shift(e.shiftDir)
		e.arrCounter = 0
	}
}

func shiftIntent(dir Direction, press bool) Intent {
	switch {
	case dir == DirLeft && press:
		return IntentShiftLeft
	case dir == DirRight && press:
		return IntentShiftRight
	case dir == DirLeft:
		return IntentReleaseLeft
	default:
		return IntentReleaseRight
	}
}
