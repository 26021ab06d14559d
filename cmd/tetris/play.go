package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode (marathon when omitted).

Controls:
  Left/Right, A/D   - Move
  Down, S           - Soft drop
  Space             - Hard drop
  Up, X             - Rotate clockwise
  Z                 - Rotate counter-clockwise
  C, Tab            - Hold
  P/Esc             - Pause
  R                 - Restart (after game over)
  B                 - Leave a paused or finished game
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Marathon asks for a start level unless --level is given.

Difficulty options:
  easy   - Start at level 1 with a longer lock delay
  normal - Start at level 5
  hard   - Start at level 10 with a short lock delay
  fixed  - No level progression

Examples:
  tetris play
  tetris play marathon --level 8
  tetris play sprint --seed 42
  tetris play ultra --difficulty hard
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start level for marathon (0 = ask)")
}

// terminalConfig builds the runtime config from the terminal size and global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// chooseLevel asks for a marathon start level. It returns false when the
// user backed out.
func chooseLevel(mode tetris.Mode, cfg core.RuntimeConfig, level int) (bool, error) {
	if mode != tetris.ModeMarathon {
		return true, nil
	}
	if level <= 0 {
		selected, err := tui.RunLevelSelector(cfg, tetris.LoadConfig().Difficulty.StartLevel)
		if err != nil {
			return false, err
		}
		if selected == 0 {
			return false, nil
		}
		level = selected
	}
	tetris.SetStartLevel(level)
	return true, nil
}

func runPlay(_ *cobra.Command, args []string) {
	mode, err := tetris.ParseMode(firstArg(args))
	if err != nil || !registry.Exists(string(mode)) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", firstArg(args))
		fmt.Fprintln(os.Stderr, "Run 'tetris modes' to see available modes.")
		os.Exit(1)
	}

	cfg := terminalConfig()

	ok, err := chooseLevel(mode, cfg, flagLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		return
	}

	game, err := registry.Create(string(mode))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	result, runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	if result.ReplayID != "" {
		fmt.Printf("Replay saved: %s (verify with 'tetris replay %s')\n", result.ReplayID, result.ReplayID)
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
