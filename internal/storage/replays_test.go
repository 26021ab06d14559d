package storage

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

func recordedReplay(seed int64) engine.Replay {
	e := engine.New(engine.DefaultConfig(), seed)
	e.StartRecording()
	// Each piece lands in a different column so the stack stays low.
	offsets := []int{-4, -2, 0, 2, 4, -3, 3}
	for i := 0; i < 300; i++ {
		piece := i / 40
		switch i % 40 {
		case 5:
			shift, move := offsets[piece%len(offsets)], e.MoveRight
			if shift < 0 {
				shift, move = -shift, e.MoveLeft
			}
			for j := 0; j < shift; j++ {
				move()
			}
		case 12:
			e.RotateCW()
		case 30:
			e.HardDrop()
		}
		e.Tick()
	}
	return e.Replay()
}

func TestStoreSaveLoadReplay(t *testing.T) {
	store := openTestStore(t)
	r := recordedReplay(99)

	id, err := store.SaveReplay("marathon", r)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("replay id %q is not a uuid", id)
	}

	loaded, err := store.LoadReplay(id)
	if err != nil {
		t.Fatalf("LoadReplay() failed: %v", err)
	}
	if loaded.GameID != "marathon" {
		t.Errorf("GameID = %q, expected marathon", loaded.GameID)
	}
	if !reflect.DeepEqual(loaded.Replay, r) {
		t.Errorf("loaded replay differs:\n%+v\n%+v", loaded.Replay, r)
	}
	if _, err := loaded.Replay.Verify(); err != nil {
		t.Errorf("loaded replay does not verify: %v", err)
	}
}

func TestStoreLoadReplayNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadReplay("00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, ErrReplayNotFound) {
		t.Errorf("LoadReplay(unknown) error = %v, expected ErrReplayNotFound", err)
	}
}

func TestStoreListReplays(t *testing.T) {
	store := openTestStore(t)

	ticks := make(map[int64]uint64)
	for seed := int64(1); seed <= 3; seed++ {
		r := recordedReplay(seed)
		ticks[seed] = r.Ticks
		if _, err := store.SaveReplay("marathon", r); err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
	}
	if _, err := store.SaveReplay("sprint", recordedReplay(4)); err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	all, err := store.ListReplays("", 10)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 replays, got %d", len(all))
	}
	if all[0].Seed != 4 {
		t.Errorf("newest replay seed = %d, expected 4", all[0].Seed)
	}

	marathon, err := store.ListReplays("marathon", 2)
	if err != nil {
		t.Fatalf("ListReplays(marathon) failed: %v", err)
	}
	if len(marathon) != 2 {
		t.Errorf("Expected 2 marathon replays with limit, got %d", len(marathon))
	}
	for _, r := range marathon {
		if r.GameID != "marathon" || r.Ticks != ticks[r.Seed] || r.Ticks == 0 {
			t.Errorf("summary = %+v, want %d ticks", r, ticks[r.Seed])
		}
	}
}
