package engine

import "fmt"

// Intent is a discrete player command in text form, as sent by remote hosts
// and stored in replays.
type Intent string

const (
	IntentMoveLeft     Intent = "move_left"
	IntentMoveRight    Intent = "move_right"
	IntentSoftDrop     Intent = "soft_drop"
	IntentHardDrop     Intent = "hard_drop"
	IntentRotateCW     Intent = "rotate_cw"
	IntentRotateCCW    Intent = "rotate_ccw"
	IntentHold         Intent = "hold"
	IntentTick         Intent = "tick"
	IntentShiftLeft    Intent = "shift_left"
	IntentShiftRight   Intent = "shift_right"
	IntentReleaseLeft  Intent = "release_left"
	IntentReleaseRight Intent = "release_right"
)

// Intents lists every intent in a stable order.
var Intents = []Intent{
	IntentMoveLeft, IntentMoveRight, IntentSoftDrop, IntentHardDrop,
	IntentRotateCW, IntentRotateCCW, IntentHold, IntentTick,
	IntentShiftLeft, IntentShiftRight, IntentReleaseLeft, IntentReleaseRight,
}

// aliases accepts short spellings from humans and agents.
var aliases = map[string]Intent{
	"left":   IntentMoveLeft,
	"right":  IntentMoveRight,
	"down":   IntentSoftDrop,
	"drop":   IntentHardDrop,
	"cw":     IntentRotateCW,
	"ccw":    IntentRotateCCW,
	"rotate": IntentRotateCW,
}

// ParseIntent converts a name such as "rotate_cw" (or an alias such as
// "cw") into an Intent.
func ParseIntent(s string) (Intent, error) {
	for _, in := range Intents {
		if string(in) == s {
			return in, nil
		}
	}
	if in, ok := aliases[s]; ok {
		return in, nil
	}
	return "", fmt.Errorf("unknown intent %q", s)
}

// Apply performs an intent and reports whether it changed the session.
func (e *Engine) Apply(in Intent) bool {
	switch in {
	case IntentMoveLeft:
		return e.MoveLeft()
	case IntentMoveRight:
		return e.MoveRight()
	case IntentSoftDrop:
		return e.SoftDropStep()
	case IntentHardDrop:
		return e.HardDrop()
	case IntentRotateCW:
		return e.RotateCW()
	case IntentRotateCCW:
		return e.RotateCCW()
	case IntentHold:
		return e.Hold()
	case IntentTick:
		return e.Tick()
	case IntentShiftLeft:
		return e.PressShift(DirLeft)
	case IntentShiftRight:
		return e.PressShift(DirRight)
	case IntentReleaseLeft:
		return e.ReleaseShift(DirLeft)
	case IntentReleaseRight:
		return e.ReleaseShift(DirRight)
	default:
		return false
	}
}
