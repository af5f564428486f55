package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-match3/internal/replay"
)

// ReplayEntry is a stored game that can be re-run and verified.
type ReplayEntry struct {
	ID          string
	GameID      string
	Record      replay.Record
	Fingerprint uint64 // Fingerprint of the final board
	Score       int
	CreatedAt   time.Time
}

// SaveReplay stores a replay and returns its generated ID.
func (s *Store) SaveReplay(gameID string, rec replay.Record, fingerprint uint64, score int) (string, error) {
	moves, err := replay.EncodeMoves(rec.Moves)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO replays
		 (id, game_id, width, height, variations, seed, moves, fingerprint, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		gameID,
		rec.Width,
		rec.Height,
		rec.Variations,
		rec.Seed,
		moves,
		formatFingerprint(fingerprint),
		score,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save replay: %w", err)
	}
	return id, nil
}

// ReplayByID retrieves a replay by its ID. Returns ErrNotFound if missing.
func (s *Store) ReplayByID(id string) (*ReplayEntry, error) {
	row := s.db.QueryRow(
		`SELECT id, game_id, width, height, variations, seed, moves, fingerprint, score, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	)

	entry, err := scanReplay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("replay %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// RecentReplays retrieves the most recent replays, optionally for one game.
func (s *Store) RecentReplays(gameID string, limit int) ([]ReplayEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, width, height, variations, seed, moves, fingerprint, score, created_at
		 FROM replays
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var entries []ReplayEntry
	for rows.Next() {
		entry, err := scanReplay(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

func scanReplay(row rowScanner) (*ReplayEntry, error) {
	var (
		e           ReplayEntry
		moves       string
		fingerprint string
		createdAt   any
	)
	err := row.Scan(
		&e.ID,
		&e.GameID,
		&e.Record.Width,
		&e.Record.Height,
		&e.Record.Variations,
		&e.Record.Seed,
		&moves,
		&fingerprint,
		&e.Score,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot scan replay: %w", err)
	}

	e.Record.Moves, err = replay.DecodeMoves(moves)
	if err != nil {
		return nil, fmt.Errorf("storage: replay %s: %w", e.ID, err)
	}
	e.Fingerprint, err = strconv.ParseUint(fingerprint, 16, 64)
	if err != nil {
		return nil, fmt.Errorf("storage: replay %s: bad fingerprint %q: %w", e.ID, fingerprint, err)
	}
	e.CreatedAt = parseTimestamp(createdAt)
	return &e, nil
}

func formatFingerprint(fp uint64) string {
	return fmt.Sprintf("%016x", fp)
}
