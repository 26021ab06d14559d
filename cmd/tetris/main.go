// tetris is a Super Rotation System Tetris for the terminal, with SSH,
// WebSocket and MCP hosts for remote and agent play.
//
// Usage:
//
//	tetris modes            - List the game modes
//	tetris play [mode]      - Play a mode (default marathon)
//	tetris menu             - Pick modes interactively
//	tetris scores [mode]    - Show high scores
//	tetris replay [id]      - Verify a stored replay
//	tetris serve            - Start the SSH server
//	tetris ws               - Start the WebSocket server
//	tetris mcp              - Serve MCP tools over stdio
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible piece sequences
//	--db <path>           - Set database path (default: ~/.tetris/scores.db)
//	--config <path>       - Custom tetris.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//
// Every global flag can also be set with a TETRIS_* environment variable
// (TETRIS_FPS, TETRIS_SEED, TETRIS_DB, TETRIS_CONFIG, TETRIS_DIFFICULTY),
// read from the environment or a .env file in the working directory.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

// envFlags maps global flags to the environment variables that default them.
var envFlags = map[string]string{
	"fps":        "TETRIS_FPS",
	"seed":       "TETRIS_SEED",
	"db":         "TETRIS_DB",
	"config":     "TETRIS_CONFIG",
	"difficulty": "TETRIS_DIFFICULTY",
}

func main() {
	// A missing .env is normal; anything else is worth a warning
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("could not load .env", "error", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - SRS Tetris in your terminal",
	Long: `Tetris is a guideline-style falling block game with the Super Rotation
System, a 7-bag randomizer, hold, ghost piece and lock delay.

Available commands:
  modes    - Show the game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  scores   - View high scores
  replay   - List and verify stored replays
  serve    - Start SSH server for remote play
  ws       - Start WebSocket server
  mcp      - Serve MCP tools over stdio

Examples:
  tetris play
  tetris play sprint --seed 42
  tetris menu --difficulty hard
  tetris serve --ssh :2222
  tetris scores marathon`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := applyEnv(cmd.Flags()); err != nil {
			return err
		}
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
		tetris.SetConfigPath(flagConfig)
		tetris.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

// applyEnv fills flags the user did not set from TETRIS_* variables.
func applyEnv(flags *pflag.FlagSet) error {
	for name, env := range envFlags {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		v, ok := os.LookupEnv(env)
		if !ok || v == "" {
			continue
		}
		if err := f.Value.Set(v); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", env, v, err)
		}
	}
	return nil
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tetris.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(wsCmd)
	rootCmd.AddCommand(mcpCmd)
}
