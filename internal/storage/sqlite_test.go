package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveRunAndLookup(t *testing.T) {
	store := openTestStore(t)

	rec := RunRecord{
		RunID:  "0b6f6a8e-0000-4000-8000-000000000001",
		GameID: "flappy",
		Score:  7,
		Reason: "collision",
		Ticks:  1234,
	}
	if _, err := store.SaveRun(rec); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.RunByID(rec.RunID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got.GameID != rec.GameID || got.Score != rec.Score || got.Reason != rec.Reason || got.Ticks != rec.Ticks {
		t.Errorf("RunByID() = %+v, expected %+v", got, rec)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}

	// Run IDs are unique.
	if _, err := store.SaveRun(rec); err == nil {
		t.Error("saving the same run twice should fail")
	}

	if _, err := store.RunByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RunByID(missing) = %v, expected ErrNotFound", err)
	}
}

func TestStoreSaveRunRequiresGame(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(RunRecord{Score: 1}); err == nil {
		t.Error("expected an error for a run without game id")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("flappy", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("flappy-halt", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("flappy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %+v", scores)
	}
	if scores[0].RunID == "" || scores[0].RunID == scores[1].RunID {
		t.Error("bare scores should get distinct generated run ids")
	}

	halt, err := store.TopScores("flappy-halt", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(halt) != 1 {
		t.Errorf("Expected 1 flappy-halt score, got %d", len(halt))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScoreAndStats(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveRun(RunRecord{GameID: "flappy", Score: 1, Ticks: 100})
	store.SaveRun(RunRecord{GameID: "flappy", Score: 3, Ticks: 300})
	store.SaveRun(RunRecord{GameID: "flappy", Score: 2, Ticks: 200})

	high, err = store.HighScore("flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 3 {
		t.Errorf("Expected high score of 3, got %d", high)
	}

	stats, err := store.Stats("flappy")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.RunsCount != 3 || stats.HighScore != 3 || stats.AvgScore != 2 || stats.TotalTicks != 600 {
		t.Errorf("Stats() = %+v", stats)
	}

	empty, err := store.Stats("nothing")
	if err != nil {
		t.Fatalf("Stats() on empty game failed: %v", err)
	}
	if empty.RunsCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty Stats() = %+v", empty)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("flappy", 100)
	store.SaveScore("flappy", 200)
	store.SaveScore("flappy-halt", 300)

	if err := store.ClearScores("flappy"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	flappyScores, _ := store.TopScores("flappy", 10)
	if len(flappyScores) != 0 {
		t.Errorf("Expected 0 flappy scores after clear, got %d", len(flappyScores))
	}

	haltScores, _ := store.TopScores("flappy-halt", 10)
	if len(haltScores) != 1 {
		t.Errorf("flappy-halt scores should not be affected by clearing flappy")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.flappy/scores.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".flappy", "scores.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}
