package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagReplayList  bool
	flagReplayLimit int
	flagReplayBoard bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [id]",
	Short: "List stored replays or verify one",
	Long: `Every finished game stores its seed and intents. Re-simulating them must
reproduce the recorded score and lines exactly.

Examples:
  tetris replay --list
  tetris replay 3f2c9a1e-...
  tetris replay 3f2c9a1e-... --board`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayList, "list", false, "List recent replays")
	replayCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Number of replays to list")
	replayCmd.Flags().BoolVar(&flagReplayBoard, "board", false, "Print the final board")
}

func runReplay(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagReplayList || len(args) == 0 {
		listReplays(store)
		return
	}

	entry, err := store.LoadReplay(args[0])
	if errors.Is(err, storage.ErrReplayNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no replay %q\n", args[0])
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading replay: %v\n", err)
		os.Exit(1)
	}

	r := entry.Replay
	fmt.Printf("Replay %s (%s, %s)\n", entry.ID, entry.GameID, entry.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("Seed %d, %d intents over %d ticks\n", r.Seed, len(r.Frames), r.Ticks)

	eng, verifyErr := r.Verify()
	if flagReplayBoard {
		fmt.Println()
		fmt.Println(eng.ASCII())
		fmt.Println()
	}
	if verifyErr != nil {
		fmt.Fprintf(os.Stderr, "FAILED: %v\n", verifyErr)
		os.Exit(1)
	}
	fmt.Printf("OK: score %d, lines %d, level %d\n", eng.Score(), eng.Lines(), eng.Level())
}

func listReplays(store *storage.Store) {
	replays, err := store.ListReplays("", flagReplayLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing replays: %v\n", err)
		os.Exit(1)
	}
	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		return
	}

	fmt.Printf("  %-36s  %-10s  %-10s  %-6s  %s\n", "ID", "Mode", "Score", "Lines", "Date")
	for _, r := range replays {
		fmt.Printf("  %-36s  %-10s  %-10d  %-6d  %s\n",
			r.ID, r.GameID, r.Score, r.Lines, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
