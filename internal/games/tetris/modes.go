package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Mode selects the win and end conditions of a session.
type Mode string

const (
	ModeMarathon Mode = "marathon" // Endless, level progression
	ModeSprint   Mode = "sprint"   // Clear SprintLines as fast as possible
	ModeUltra    Mode = "ultra"    // Highest score in UltraSeconds
)

// Mode goals.
const (
	SprintLines  = 40
	UltraSeconds = 180
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModeMarathon, ModeSprint, ModeUltra}

// ParseMode validates a mode name. Empty means marathon.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeMarathon, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Title returns the display name of the mode.
func (m Mode) Title() string {
	switch m {
	case ModeSprint:
		return "Sprint 40L"
	case ModeUltra:
		return "Ultra 3:00"
	default:
		return "Marathon"
	}
}

// Description returns the one-line rules summary.
func (m Mode) Description() string {
	switch m {
	case ModeSprint:
		return fmt.Sprintf("Clear %d lines as fast as you can", SprintLines)
	case ModeUltra:
		return fmt.Sprintf("Score as much as possible in %d seconds", UltraSeconds)
	default:
		return "Play until you top out; speed rises every level"
	}
}

func init() {
	for _, m := range Modes {
		registry.Register(string(m), func() registry.Game {
			return New(m)
		})
	}
}
