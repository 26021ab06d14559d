package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/transport/websocket"
)

var flagWSAddr string

var wsCmd = &cobra.Command{
	Use:   "ws",
	Short: "Start the WebSocket server",
	Long: `Serve Tetris sessions over WebSocket at /ws.

Each connection starts a session, or joins one with ?session=<id>. A new
session can fix its seed with ?seed=<n>. The server ticks every session at
--fps and pushes a JSON state message after each tick.

Client messages:
  {"type":"intent","intent":"rotate_cw"}
  {"type":"intent","intents":["left","left","hard_drop"]}
  {"type":"pause"}
  {"type":"reset","seed":42}
  {"type":"state"}

Examples:
  tetris ws
  tetris ws --addr :9000 --fps 30`,
	RunE: runWS,
}

func init() {
	wsCmd.Flags().StringVar(&flagWSAddr, "addr", ":8080", "HTTP listen address")
}

func runWS(_ *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris-ws",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := tetris.LoadConfig()
	srv := websocket.NewServer(ctx, websocket.Options{
		FPS:    flagFPS,
		Config: cfg.Engine(flagFPS),
		Seed:   seedSource(),
		Logger: logger,
	})

	httpServer := &http.Server{
		Addr:              flagWSAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting WebSocket server", "address", flagWSAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// seedSource returns the seed of each new session: the --seed flag when
// set, the clock otherwise.
func seedSource() func() int64 {
	if flagSeed != 0 {
		seed := flagSeed
		return func() int64 { return seed }
	}
	return func() int64 { return time.Now().UnixNano() }
}
