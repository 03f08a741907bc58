package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/arcadeloop/internal/score"
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
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if store.Dialect() != "sqlite" {
		t.Errorf("Dialect() = %q, want sqlite", store.Dialect())
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	// Reopening runs the migrations again without error.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	store.Close()
}

func TestStoreRecordAndRetrieve(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for _, v := range []int{100, 50, 200} {
		if err := store.SaveScore(ctx, "ann", "poop_breaker", v); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if err := store.SaveScore(ctx, "ann", "flappy_turd", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores(ctx, "poop_breaker", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	for i, want := range []int{200, 100, 50} {
		if scores[i].Score != want {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, want)
		}
	}
	if scores[0].RunID == "" || scores[0].RunID == scores[1].RunID {
		t.Errorf("run ids should be unique and non-empty: %q %q", scores[0].RunID, scores[1].RunID)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	other, err := store.TopScores(ctx, "flappy_turd", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 flappy_turd score, got %d", len(other))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore(ctx, "ann", "test", (i+1)*100)
	}

	scores, err := store.TopScores(ctx, "test", 3)
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

func TestStoreHighScoreOnlyImproves(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	high, err := store.HighScore(ctx, "ann", "whack_turd")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	for _, v := range []int{100, 300, 200} {
		store.SaveScore(ctx, "ann", "whack_turd", v)
	}
	store.SaveScore(ctx, "bob", "whack_turd", 999)

	high, err = store.HighScore(ctx, "ann", "whack_turd")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreLowerIsBetter(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	score.RegisterOrder("storage_time_trial", score.LowerIsBetter)

	for _, v := range []int{5400, 0, 4200, 6100} {
		if err := store.SaveScore(ctx, "ann", "storage_time_trial", v); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	high, err := store.HighScore(ctx, "ann", "storage_time_trial")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 4200 {
		t.Errorf("HighScore() = %d, want fastest time 4200", high)
	}

	top, err := store.TopScores(ctx, "storage_time_trial", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("TopScores() should skip zero times, got %d entries", len(top))
	}
	if top[0].Score != 4200 || top[2].Score != 6100 {
		t.Errorf("time trial order wrong: %v", top)
	}
}

func TestStoreUserScores(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	store.SaveScore(ctx, "ann", "tp_ninja", 10)
	store.SaveScore(ctx, "bob", "tp_ninja", 20)
	store.SaveScore(ctx, "ann", "tp_ninja", 30)

	scores, err := store.UserScores(ctx, "ann", "tp_ninja", 10)
	if err != nil {
		t.Fatalf("UserScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores for ann, got %d", len(scores))
	}
	for _, e := range scores {
		if e.UserID != "ann" {
			t.Errorf("UserScores() returned entry for %q", e.UserID)
		}
	}
}

func TestStoreClearScores(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	store.SaveScore(ctx, "ann", "snake_turd", 100)
	store.SaveScore(ctx, "ann", "snake_turd", 200)
	store.SaveScore(ctx, "ann", "doodle_poop", 300)

	if err := store.ClearScores(ctx, "snake_turd"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	cleared, _ := store.TopScores(ctx, "snake_turd", 10)
	if len(cleared) != 0 {
		t.Errorf("Expected 0 snake_turd scores after clear, got %d", len(cleared))
	}
	if high, _ := store.HighScore(ctx, "ann", "snake_turd"); high != 0 {
		t.Errorf("record should be cleared, got %d", high)
	}

	kept, _ := store.TopScores(ctx, "doodle_poop", 10)
	if len(kept) != 1 {
		t.Errorf("doodle_poop scores should not be affected by clearing snake_turd")
	}
}

func TestStoreAllScores(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore(ctx, "ann", "test", i*10)
	}

	scores, err := store.AllScores(ctx, "test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestRebind(t *testing.T) {
	tests := []struct {
		name string
		d    dialect
		in   string
		want string
	}{
		{"sqlite unchanged", dialectSQLite, "a = ? AND b = ?", "a = ? AND b = ?"},
		{"postgres numbered", dialectPostgres, "a = ? AND b = ?", "a = $1 AND b = $2"},
		{"no placeholders", dialectPostgres, "SELECT 1", "SELECT 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Store{dialect: tt.d}
			if got := s.rebind(tt.in); got != tt.want {
				t.Errorf("rebind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
