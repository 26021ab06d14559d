package engine

import "fmt"

// Frame is one recorded intent and the tick count at which it was issued.
type Frame struct {
	Tick   uint64 `json:"tick"`
	Intent Intent `json:"intent"`
}

// Replay is everything needed to re-simulate a session: seed, config and
// the intents between ticks. Score and Lines are the recorded outcome.
type Replay struct {
	Seed   int64   `json:"seed"`
	Config Config  `json:"config"`
	Frames []Frame `json:"frames"`
	Ticks  uint64  `json:"ticks"`
	Score  int     `json:"score"`
	Lines  int     `json:"lines"`
}

// StartRecording begins capturing intents. Reset keeps recording enabled
// and starts an empty journal.
func (e *Engine) StartRecording() {
	e.recording = true
	e.frames = nil
}

// Recording reports whether intents are being captured.
func (e *Engine) Recording() bool { return e.recording }

func (e *Engine) record(in Intent) {
	if !e.recording {
		return
	}
	e.frames = append(e.frames, Frame{Tick: e.tick, Intent: in})
}

// Replay returns the recorded session so far.
func (e *Engine) Replay() Replay {
	frames := make([]Frame, len(e.frames))
	copy(frames, e.frames)
	return Replay{
		Seed:   e.seed,
		Config: e.cfg,
		Frames: frames,
		Ticks:  e.tick,
		Score:  e.score,
		Lines:  e.lines,
	}
}

// Run re-simulates the replay on a fresh engine.
func (r Replay) Run() *Engine {
	e := New(r.Config, r.Seed)
	idx := 0
	for {
		for idx < len(r.Frames) && r.Frames[idx].Tick == e.tick {
			e.Apply(r.Frames[idx].Intent)
			idx++
		}
		if e.tick >= r.Ticks || e.phase == PhaseGameOver {
			break
		}
		e.Tick()
	}
	return e
}

// Verify re-simulates the replay and checks the recorded outcome.
func (r Replay) Verify() (*Engine, error) {
	e := r.Run()
	if e.score != r.Score || e.lines != r.Lines {
		return e, fmt.Errorf("replay diverged: score %d lines %d, recorded score %d lines %d",
			e.score, e.lines, r.Score, r.Lines)
	}
	return e, nil
}
