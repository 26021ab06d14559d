package websocket

import (
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// maxPendingIntents bounds the intents queued between two ticks.
const maxPendingIntents = 64

// Message types sent by the server.
const (
	TypeWelcome = "welcome"
	TypeState   = "state"
	TypeError   = "error"
)

// Message types sent by clients.
const (
	TypeIntent = "intent"
	TypeReset  = "reset"
	TypePause  = "pause"
	TypeQuery  = "state"
)

// ClientMessage is a command from a client. Intent and Intents may both be
// set; Intent is applied first.
type ClientMessage struct {
	Type    string   `json:"type"`
	Intent  string   `json:"intent,omitempty"`
	Intents []string `json:"intents,omitempty"`
	Seed    *int64   `json:"seed,omitempty"`
}

// ServerMessage is a state update or an error.
type ServerMessage struct {
	Type      string           `json:"type"`
	SessionID string           `json:"session_id"`
	Paused    bool             `json:"paused,omitempty"`
	Snapshot  *engine.Snapshot `json:"snapshot,omitempty"`
	Events    []engine.Event   `json:"events,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// Session is one engine shared by every client attached to it. Intents are
// queued and applied at the start of the next tick in arrival order.
type Session struct {
	id string

	mu      sync.Mutex
	eng     *engine.Engine
	cfg     engine.Config
	pending []engine.Intent
	paused  bool
	refs    int
	stop    func()
}

func newSession(id string, cfg engine.Config, seed int64) *Session {
	return &Session{
		id:  id,
		cfg: cfg,
		eng: engine.New(cfg, seed),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Enqueue queues intents for the next tick. It returns false when the queue
// is full and nothing was queued.
func (s *Session) Enqueue(intents ...engine.Intent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending)+len(intents) > maxPendingIntents {
		return false
	}
	s.pending = append(s.pending, intents...)
	return true
}

// Reset starts a new game with the given seed.
func (s *Session) Reset(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eng.Reset(s.cfg, seed)
	s.pending = nil
	s.paused = false
}

// TogglePause stops or resumes the clock. Paused sessions drop intents.
func (s *Session) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
	s.pending = nil
	return s.paused
}

// step applies the queued intents and advances one tick. It reports false
// when the session is paused or over and nothing changed.
func (s *Session) step() (ServerMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused || s.eng.GameOver() {
		s.pending = nil
		return ServerMessage{}, false
	}
	for _, in := range s.pending {
		s.eng.Apply(in)
	}
	s.pending = nil
	s.eng.Tick()

	msg := s.stateLocked(TypeState)
	msg.Events = s.eng.Events()
	return msg, true
}

// State returns the current state without advancing. Pending events stay
// queued for the next tick broadcast.
func (s *Session) State(msgType string) ServerMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked(msgType)
}

func (s *Session) stateLocked(msgType string) ServerMessage {
	snap := s.eng.Snapshot()
	return ServerMessage{
		Type:      msgType,
		SessionID: s.id,
		Paused:    s.paused,
		Snapshot:  &snap,
	}
}

// parseIntents converts the intents of a message. Tick is rejected because
// the server owns the clock.
func parseIntents(msg ClientMessage) ([]engine.Intent, error) {
	names := msg.Intents
	if msg.Intent != "" {
		names = append([]string{msg.Intent}, names...)
	}
	if len(names) == 0 {
		return nil, errNoIntent
	}
	out := make([]engine.Intent, 0, len(names))
	for _, name := range names {
		in, err := engine.ParseIntent(name)
		if err != nil {
			return nil, err
		}
		if in == engine.IntentTick {
			return nil, errTickIntent
		}
		out = append(out, in)
	}
	return out, nil
}
