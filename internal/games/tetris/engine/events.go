package engine

// EventType names something the engine reports to its host.
type EventType string

const (
	EventSpawn     EventType = "spawn"
	EventHold      EventType = "hold"
	EventLock      EventType = "lock"
	EventLineClear EventType = "line_clear"
	EventGameOver  EventType = "game_over"
)

// Game over reasons.
const (
	ReasonSpawnCollision = "spawn_collision"
	ReasonOverflow       = "overflow"
)

// Event is emitted by intents and ticks and drained by the host with Events.
type Event struct {
	Type       EventType `json:"type"`
	Tick       uint64    `json:"tick"`
	Kind       Kind      `json:"kind,omitempty"`
	Lines      int       `json:"lines,omitempty"`
	Points     int       `json:"points,omitempty"`
	Combo      int       `json:"combo"`
	BackToBack bool      `json:"back_to_back,omitempty"`
	Reason     string    `json:"reason,omitempty"`
}

// maxPendingEvents bounds the queue when the host never drains it.
const maxPendingEvents = 256

func (e *Engine) emit(ev Event) {
	ev.Tick = e.tick
	if len(e.events) >= maxPendingEvents {
		e.events = e.events[1:]
	}
	e.events = append(e.events, ev)
}

// Events returns and clears the pending events, oldest first.
func (e *Engine) Events() []Event {
	out := e.events
	e.events = nil
	return out
}
