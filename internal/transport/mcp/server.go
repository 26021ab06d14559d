// Package mcp exposes Tetris sessions as Model Context Protocol tools so an
// agent can start games, send intents and advance the clock one call at a time.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

const (
	// maxTicksPerCall bounds a single tick call to one minute of play at 60 fps.
	maxTicksPerCall = 3600
)

// Options configures a Server.
type Options struct {
	Config engine.Config

	// FPS converts the ultra time limit to ticks. Defaults to 60.
	FPS int

	// Store receives the score and replay of ended sessions. Optional.
	Store *storage.Store

	// Seed returns the seed of a game started without one.
	Seed func() int64

	Logger *log.Logger
}

type session struct {
	id      string
	mode    tetris.Mode
	eng     *engine.Engine
	created time.Time

	ultraTicks uint64
}

// goalReached reports whether the mode ended the session: 40 lines in
// sprint, the time limit in ultra.
func (s *session) goalReached() bool {
	switch s.mode {
	case tetris.ModeSprint:
		return s.eng.Lines() >= tetris.SprintLines
	case tetris.ModeUltra:
		return s.eng.CurrentTick() >= s.ultraTicks
	default:
		return false
	}
}

// finished reports whether the session accepts no more input.
func (s *session) finished() bool {
	return s.eng.GameOver() || s.goalReached()
}

// Server holds the running sessions and the MCP tool definitions.
type Server struct {
	opts      Options
	mcpServer *server.MCPServer

	mu       sync.Mutex
	sessions map[string]*session
}

// NewServer creates a server with all tools registered.
func NewServer(opts Options) *Server {
	if opts.Seed == nil {
		opts.Seed = func() int64 { return time.Now().UnixNano() }
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}

	s := &Server{
		opts:     opts,
		sessions: make(map[string]*session),
	}
	s.mcpServer = server.NewMCPServer(
		"Tetris",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Tetris (SRS rules) - MCP Interface

Start a game with new_game, then drive it with act and tick. Modes:
marathon (endless), sprint (clear 40 lines), ultra (three minutes of ticks). The clock only
moves when you call tick or send the "tick" intent, so you can think as long
as you like between pieces.

BOARD LEGEND: letters are locked or active cells (I O T S Z J L), ':' is the
ghost piece, '.' is empty.

INTENTS: move_left, move_right, soft_drop, hard_drop, rotate_cw, rotate_ccw,
hold, tick, shift_left, shift_right, release_left, release_right
(aliases: left, right, down, drop, cw, ccw, rotate).

Call end_game when done to store the score and replay.`),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves the tools over stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID returned by new_game",
	}
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new game and return its session ID and board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"seed": map[string]interface{}{
					"type":        "number",
					"description": "Seed of the piece sequence (optional, random when omitted)",
				},
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"marathon", "sprint", "ultra"},
					"description": "Game mode (default marathon)",
				},
			},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "act",
		Description: "Apply intents in order, optionally followed by ticks",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"intents": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Intents to apply, e.g. [\"rotate_cw\", \"left\", \"hard_drop\"]",
				},
				"ticks": map[string]interface{}{
					"type":        "number",
					"description": "Ticks to advance after the intents (default 0)",
				},
			},
			Required: []string{"session_id", "intents"},
		},
	}, s.handleAct)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "tick",
		Description: "Advance the game clock",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"frames": map[string]interface{}{
					"type":        "number",
					"description": fmt.Sprintf("Ticks to advance (default 1, max %d)", maxTicksPerCall),
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleTick)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "state",
		Description: "Get the board as text and the full state as JSON",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all running sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "end_game",
		Description: "End a session, storing its score and replay",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleEndGame)
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a numeric argument. JSON numbers arrive as float64.
func intArg(args map[string]interface{}, name string, def int) int {
	switch v := args[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	default:
		return def
	}
}

func (s *Server) lookup(args map[string]interface{}) (*session, error) {
	id, _ := args["session_id"].(string)
	if id == "" {
		return nil, fmt.Errorf("session_id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}
	return sess, nil
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	modeName, _ := args["mode"].(string)
	mode, err := tetris.ParseMode(modeName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var seed int64
	if v, ok := args["seed"].(float64); ok {
		seed = int64(v)
	} else {
		seed = s.opts.Seed()
	}

	sess := &session{
		id:         uuid.NewString(),
		mode:       mode,
		eng:        engine.New(s.opts.Config, seed),
		created:    time.Now(),
		ultraTicks: uint64(tetris.UltraSeconds * s.opts.FPS),
	}
	sess.eng.StartRecording()

	s.opts.Logger.Info("game started", "session", sess.id, "mode", mode, "seed", seed)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.id] = sess
	return mcp.NewToolResultText(formatState(sess, sess.eng.Events())), nil
}

func (s *Server) handleAct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sess, err := s.lookup(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	raw, _ := args["intents"].([]interface{})
	intents := make([]engine.Intent, 0, len(raw))
	for _, r := range raw {
		name, _ := r.(string)
		in, err := engine.ParseIntent(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		intents = append(intents, in)
	}
	if len(intents) == 0 {
		return mcp.NewToolResultError("intents must list at least one intent"), nil
	}
	ticks := intArg(args, "ticks", 0)
	if ticks < 0 || ticks > maxTicksPerCall {
		return mcp.NewToolResultError(fmt.Sprintf("ticks must be between 0 and %d", maxTicksPerCall)), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.finished() {
		return mcp.NewToolResultError("session is over, call end_game or new_game"), nil
	}
	var rejected []string
	for _, in := range intents {
		if sess.finished() || !sess.eng.Apply(in) {
			rejected = append(rejected, string(in))
		}
	}
	advance(sess, ticks)

	text := formatState(sess, sess.eng.Events())
	if len(rejected) > 0 {
		text = "No effect: " + strings.Join(rejected, ", ") + "\n" + text
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleTick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sess, err := s.lookup(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	frames := intArg(args, "frames", 1)
	if frames < 1 || frames > maxTicksPerCall {
		return mcp.NewToolResultError(fmt.Sprintf("frames must be between 1 and %d", maxTicksPerCall)), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	advance(sess, frames)
	return mcp.NewToolResultText(formatState(sess, sess.eng.Events())), nil
}

// advance ticks the engine n times, stopping early when the session ends.
func advance(sess *session, n int) {
	for i := 0; i < n && !sess.finished(); i++ {
		sess.eng.Tick()
	}
}

func (s *Server) handleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.lookup(arguments(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return mcp.NewToolResultText(formatState(sess, nil)), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.sessions[ids[i]].created.Before(s.sessions[ids[j]].created)
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", len(ids))
	for _, id := range ids {
		sess := s.sessions[id]
		fmt.Fprintf(&b, "- %s (%s, score %d, lines %d, tick %d, %s)\n",
			id, sess.mode, sess.eng.Score(), sess.eng.Lines(), sess.eng.CurrentTick(), sess.eng.Phase())
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleEndGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.lookup(arguments(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()

	eng := sess.eng
	result := fmt.Sprintf("Ended session %s\nScore: %d  Lines: %d  Level: %d\n",
		sess.id, eng.Score(), eng.Lines(), eng.Level())

	if s.opts.Store != nil {
		gameID := string(sess.mode)
		if _, err := s.opts.Store.SaveScore(gameID, eng.Score(), eng.Lines(), eng.Level()); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := s.opts.Store.SaveReplay(gameID, eng.Replay())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result += "Replay: " + id + "\n"
	}

	s.opts.Logger.Info("game ended", "session", sess.id, "score", eng.Score())
	return mcp.NewToolResultText(result), nil
}

// formatState renders a session for an agent: a header, the board and the
// JSON snapshot. Callers hold the server lock.
func formatState(sess *session, events []engine.Event) string {
	eng := sess.eng
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s (%s)\n", sess.id, sess.mode)
	fmt.Fprintf(&b, "Tick: %d  Score: %d  Lines: %d  Level: %d\n",
		eng.CurrentTick(), eng.Score(), eng.Lines(), eng.Level())
	switch {
	case eng.GameOver():
		fmt.Fprintf(&b, "GAME OVER (%s)\n", eng.GameOverReason())
	case sess.goalReached() && sess.mode == tetris.ModeSprint:
		fmt.Fprintf(&b, "COMPLETE in %d ticks\n", eng.CurrentTick())
	case sess.goalReached():
		b.WriteString("TIME UP\n")
	}
	for _, ev := range events {
		b.WriteString(describeEvent(ev))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(eng.ASCII())
	b.WriteString("\n\n")

	data, err := json.MarshalIndent(eng.Snapshot(), "", "  ")
	if err == nil {
		b.Write(data)
		b.WriteByte('\n')
	}
	return b.String()
}

func describeEvent(ev engine.Event) string {
	switch ev.Type {
	case engine.EventLineClear:
		text := fmt.Sprintf("Event: cleared %d line(s) for %d points", ev.Lines, ev.Points)
		if ev.BackToBack {
			text += " (back-to-back)"
		}
		if ev.Combo > 0 {
			text += fmt.Sprintf(" (combo %d)", ev.Combo)
		}
		return text
	case engine.EventGameOver:
		return "Event: game over, " + ev.Reason
	default:
		return fmt.Sprintf("Event: %s %s", ev.Type, ev.Kind)
	}
}
