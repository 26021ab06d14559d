package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// ErrReplayNotFound is returned by LoadReplay for unknown IDs.
var ErrReplayNotFound = errors.New("storage: replay not found")

// ReplayEntry is a stored replay with its metadata.
type ReplayEntry struct {
	ID        string
	GameID    string
	Replay    engine.Replay
	CreatedAt time.Time
}

// ReplaySummary is a replay row without the frame journal.
type ReplaySummary struct {
	ID        string
	GameID    string
	Seed      int64
	Ticks     uint64
	Score     int
	Lines     int
	CreatedAt time.Time
}

// SaveReplay stores a recorded session and returns its generated ID.
func (s *Store) SaveReplay(gameID string, r engine.Replay) (string, error) {
	cfg, err := json.Marshal(r.Config)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode replay config: %w", err)
	}
	frames, err := json.Marshal(r.Frames)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode replay frames: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO replays (id, game_id, seed, config, frames, ticks, score, lines)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, gameID, r.Seed, string(cfg), string(frames), int64(r.Ticks), r.Score, r.Lines,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save replay: %w", err)
	}
	return id, nil
}

// LoadReplay retrieves a replay by ID.
func (s *Store) LoadReplay(id string) (*ReplayEntry, error) {
	var (
		entry     ReplayEntry
		cfg       string
		frames    string
		ticks     int64
		createdAt any
	)
	err := s.db.QueryRow(
		`SELECT id, game_id, seed, config, frames, ticks, score, lines, created_at
		 FROM replays WHERE id = ?`,
		id,
	).Scan(&entry.ID, &entry.GameID, &entry.Replay.Seed, &cfg, &frames, &ticks,
		&entry.Replay.Score, &entry.Replay.Lines, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrReplayNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	if err := json.Unmarshal([]byte(cfg), &entry.Replay.Config); err != nil {
		return nil, fmt.Errorf("storage: cannot decode replay config: %w", err)
	}
	if err := json.Unmarshal([]byte(frames), &entry.Replay.Frames); err != nil {
		return nil, fmt.Errorf("storage: cannot decode replay frames: %w", err)
	}
	entry.Replay.Ticks = uint64(ticks)
	entry.CreatedAt = parseTime(createdAt)
	return &entry, nil
}

// ListReplays returns the most recent replays, optionally filtered by mode.
func (s *Store) ListReplays(gameID string, limit int) ([]ReplaySummary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, game_id, seed, ticks, score, lines, created_at FROM replays`
	args := []any{}
	if gameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var list []ReplaySummary
	for rows.Next() {
		var r ReplaySummary
		var ticks int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Seed, &ticks, &r.Score, &r.Lines, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan replay row: %w", err)
		}
		r.Ticks = uint64(ticks)
		r.CreatedAt = parseTime(createdAt)
		list = append(list, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return list, nil
}
