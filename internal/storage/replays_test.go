package storage

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-match3/internal/replay"
)

func testRecord(seed int64) replay.Record {
	return replay.Record{
		Width:      6,
		Height:     7,
		Variations: 4,
		Seed:       seed,
		Moves: []replay.Move{
			{AX: 0, AY: 0, BX: 1, BY: 0},
			{AX: 2, AY: 3, BX: 2, BY: 4, Variations: 5},
		},
	}
}

func TestStoreReplayRoundTrip(t *testing.T) {
	store := openTestStore(t)

	rec := testRecord(-42)
	const fp = uint64(0xfedcba9876543210)

	id, err := store.SaveReplay("gems", rec, fp, 1234)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("replay ID %q is not a UUID: %v", id, err)
	}

	got, err := store.ReplayByID(id)
	if err != nil {
		t.Fatalf("ReplayByID() failed: %v", err)
	}
	if got.GameID != "gems" || got.Score != 1234 || got.Fingerprint != fp {
		t.Errorf("unexpected entry: %+v", got)
	}
	if got.Record.Seed != -42 || got.Record.Width != 6 || got.Record.Height != 7 || got.Record.Variations != 4 {
		t.Errorf("record header = %+v", got.Record)
	}
	if len(got.Record.Moves) != 2 || got.Record.Moves[1] != rec.Moves[1] {
		t.Errorf("moves = %+v, expected %+v", got.Record.Moves, rec.Moves)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreReplayNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.ReplayByID("does-not-exist")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ReplayByID() error = %v, expected ErrNotFound", err)
	}
}

func TestStoreRecentReplays(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i := 0; i < 4; i++ {
		game := "gems"
		if i%2 == 1 {
			game = "gems_endless"
		}
		id, err := store.SaveReplay(game, testRecord(int64(i)), uint64(i), i*10)
		if err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
		ids = append(ids, id)
	}

	all, err := store.RecentReplays("", 10)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 replays, got %d", len(all))
	}
	// Same-second inserts fall back to insertion order, newest first
	if all[0].ID != ids[3] || all[3].ID != ids[0] {
		t.Errorf("replays not newest first: %s ... %s", all[0].ID, all[3].ID)
	}

	endless, err := store.RecentReplays("gems_endless", 10)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(endless) != 2 {
		t.Errorf("expected 2 endless replays, got %d", len(endless))
	}

	limited, err := store.RecentReplays("", 1)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 replay with limit, got %d", len(limited))
	}
}
