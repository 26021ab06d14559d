package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/transport/mcp"
)

var flagMCPNoStore bool

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve MCP tools over stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout so an agent can play.

Tools: new_game, act, tick, state, list_sessions, end_game.
The clock only advances on tick calls (or "tick" intents), so agents play
at their own pace. Ended games are saved to the scores database.

Logs go to stderr. Example client config:
  {"command": "tetris", "args": ["mcp"]}`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().BoolVar(&flagMCPNoStore, "no-store", false, "Do not save ended games")
}

func runMCP(_ *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris-mcp",
	})

	opts := mcp.Options{
		Config: tetris.LoadConfig().Engine(flagFPS),
		FPS:    flagFPS,
		Seed:   seedSource(),
		Logger: logger,
	}
	if !flagMCPNoStore {
		opts.Store = openStore()
		if opts.Store != nil {
			defer opts.Store.Close()
		}
	}

	logger.Info("serving MCP over stdio")
	return mcp.NewServer(opts).ServeStdio()
}
