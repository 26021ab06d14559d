package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

var (
	errNoIntent   = errors.New("message has no intent")
	errTickIntent = errors.New("tick is driven by the server")
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Options configures a Server.
type Options struct {
	// FPS is the tick rate of every session.
	FPS int

	// Config is the engine configuration of new sessions.
	Config engine.Config

	// Seed returns the seed of a session that did not ask for one.
	// Defaults to the current time.
	Seed func() int64

	Logger *log.Logger
}

// Server accepts WebSocket connections and runs one engine per session.
type Server struct {
	opts Options
	hub  *Hub
	ctx  context.Context

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewServer creates a server and starts its hub. Sessions stop when ctx is
// cancelled.
func NewServer(ctx context.Context, opts Options) *Server {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Seed == nil {
		opts.Seed = func() int64 { return time.Now().UnixNano() }
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	s := &Server{
		opts:     opts,
		hub:      NewHub(opts.Logger),
		ctx:      ctx,
		sessions: make(map[string]*Session),
	}
	go s.hub.Run(ctx)
	return s
}

// Handler returns the HTTP routes: /ws upgrades, /healthz reports liveness.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// ServeWS upgrades the request and attaches it to a session. The optional
// "session" query parameter joins an existing session, "seed" fixes the
// seed of a new one.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	var seed int64
	if v := r.URL.Query().Get("seed"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid seed", http.StatusBadRequest)
			return
		}
		seed = parsed
	} else {
		seed = s.opts.Seed()
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.opts.Logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sess := s.acquire(sessionID, seed)
	client := newClient(s.hub, conn, sess.ID())
	welcome := sess.State(TypeWelcome)
	s.hub.Register(client, &welcome)

	s.opts.Logger.Info("client connected", "session", sess.ID(), "remote", r.RemoteAddr)

	go client.writePump()
	go func() {
		client.readPump(func(data []byte) { s.handleMessage(client, sess, data) })
		s.release(sess)
		s.opts.Logger.Info("client disconnected", "session", sess.ID())
	}()
}

// Sessions returns the IDs of the running sessions.
func (s *Server) Sessions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

// acquire returns the session with the given ID, creating and starting it
// when it does not exist.
func (s *Server) acquire(id string, seed int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			sess.refs++
			return sess
		}
	} else {
		id = uuid.NewString()
	}

	sess := newSession(id, s.opts.Config, seed)
	sess.refs = 1
	ctx, cancel := context.WithCancel(s.ctx)
	sess.stop = cancel
	s.sessions[id] = sess
	go s.runSession(ctx, sess)
	return sess
}

// release drops a reference and stops the session when nobody is left.
func (s *Server) release(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.refs--
	if sess.refs > 0 {
		return
	}
	sess.stop()
	delete(s.sessions, sess.ID())
}

// runSession ticks the session at the configured rate and broadcasts
// every change.
func (s *Server) runSession(ctx context.Context, sess *Session) {
	ticker := time.NewTicker(time.Second / time.Duration(s.opts.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if msg, changed := sess.step(); changed {
				s.hub.Broadcast(sess.ID(), msg)
			}
		}
	}
}

// handleMessage applies one client command.
func (s *Server) handleMessage(c *Client, sess *Session, data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(c, "invalid message: "+err.Error())
		return
	}

	switch msg.Type {
	case TypeIntent, "":
		intents, err := parseIntents(msg)
		if err != nil {
			s.sendError(c, err.Error())
			return
		}
		if !sess.Enqueue(intents...) {
			s.sendError(c, "too many queued intents")
		}

	case TypeReset:
		seed := s.opts.Seed()
		if msg.Seed != nil {
			seed = *msg.Seed
		}
		sess.Reset(seed)
		s.hub.Broadcast(sess.ID(), sess.State(TypeState))

	case TypePause:
		sess.TogglePause()
		s.hub.Broadcast(sess.ID(), sess.State(TypeState))

	case TypeQuery:
		s.hub.Send(c, sess.State(TypeState))

	default:
		s.sendError(c, "unknown message type "+strconv.Quote(msg.Type))
	}
}

func (s *Server) sendError(c *Client, text string) {
	s.hub.Send(c, ServerMessage{Type: TypeError, SessionID: c.sessionID, Error: text})
}
