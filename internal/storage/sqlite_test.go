package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
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

func TestStoreOpenCreatesNestedPath(t *testing.T) {
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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("monk", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("roach", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("monk", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %v", scores)
	}

	roachScores, err := store.TopScores("roach", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(roachScores) != 1 {
		t.Errorf("Expected 1 roach score, got %d", len(roachScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 5; i++ {
		store.SaveScore("roach", (i+1)*100)
	}

	scores, err := store.TopScores("roach", 3)
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

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("monk")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("monk", 100)
	store.SaveScore("monk", 300)
	store.SaveScore("monk", 200)

	high, err = store.HighScore("monk")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 20; i++ {
		store.SaveScore("monk", i*10)
	}

	scores, err := store.AllScores("monk")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreSaveSession(t *testing.T) {
	store := openTestStore(t)

	rec := SessionRecord{
		GameID:   "roach",
		Score:    85,
		Accuracy: 75,
		MaxCombo: 6,
		Kills:    6,
		Attempts: 8,
		Elapsed:  60 * time.Second,
		Source:   "firebase",
	}
	id, err := store.SaveSession(rec)
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("session id %q is not a UUID: %v", id, err)
	}

	got, err := store.SessionByID(id)
	if err != nil {
		t.Fatalf("SessionByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("stored session not found")
	}
	rec.ID = id
	rec.CreatedAt = got.CreatedAt
	if *got != rec {
		t.Errorf("SessionByID() = %+v, expected %+v", *got, rec)
	}

	// The score table gets an entry too
	high, _ := store.HighScore("roach")
	if high != 85 {
		t.Errorf("HighScore() = %d after SaveSession, expected 85", high)
	}
}

func TestStoreSessionDefaults(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveSession(SessionRecord{ID: "fixed-id", GameID: "monk", Score: 3})
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("id = %q, a provided id should be kept", id)
	}

	got, _ := store.SessionByID(id)
	if got == nil || got.Source != "keyboard" {
		t.Errorf("session = %+v, expected keyboard source", got)
	}

	missing, err := store.SessionByID("nope")
	if err != nil || missing != nil {
		t.Errorf("SessionByID(missing) = %v, %v", missing, err)
	}

	if _, err := store.SaveSession(SessionRecord{ID: "fixed-id", GameID: "monk"}); err == nil {
		t.Error("duplicate session id should fail")
	}
	if scores, _ := store.AllScores("monk"); len(scores) != 1 {
		t.Errorf("failed save left %d scores, expected 1", len(scores))
	}
}

func TestStoreRecentSessions(t *testing.T) {
	store := openTestStore(t)
	for i := 1; i <= 5; i++ {
		store.SaveSession(SessionRecord{GameID: "monk", Score: i})
	}
	store.SaveSession(SessionRecord{GameID: "roach", Score: 99})

	recent, err := store.RecentSessions("monk", 3)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("got %d sessions, expected 3", len(recent))
	}
	if recent[0].Score != 5 || recent[1].Score != 4 || recent[2].Score != 3 {
		t.Errorf("sessions not newest first: %+v", recent)
	}
}

func TestStoreTopSessions(t *testing.T) {
	store := openTestStore(t)
	for _, score := range []int{30, 90, 60, 90} {
		store.SaveSession(SessionRecord{GameID: "roach", Score: score, MaxCombo: score / 10})
	}

	top, err := store.TopSessions("roach", 3)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if len(top) != 3 || top[0].Score != 90 || top[1].Score != 90 || top[2].Score != 60 {
		t.Errorf("TopSessions() = %+v", top)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("monk", 100)
	store.SaveSession(SessionRecord{GameID: "monk", Score: 200})
	store.SaveScore("roach", 300)

	if err := store.ClearScores("monk"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("monk", 10); len(scores) != 0 {
		t.Errorf("Expected 0 monk scores after clear, got %d", len(scores))
	}
	if sessions, _ := store.RecentSessions("monk", 10); len(sessions) != 0 {
		t.Errorf("Expected 0 monk sessions after clear, got %d", len(sessions))
	}
	if scores, _ := store.TopScores("roach", 10); len(scores) != 1 {
		t.Error("Roach scores should not be affected by clearing monk")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)
	store.SaveSession(SessionRecord{GameID: "roach", Score: 40, Accuracy: 80, MaxCombo: 4, Attempts: 5})
	store.SaveSession(SessionRecord{GameID: "roach", Score: 20, Accuracy: 40, MaxCombo: 7, Attempts: 5})
	store.SaveSession(SessionRecord{GameID: "roach", Score: 0})

	stats, err := store.GetGameStats("roach")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 40 || stats.TotalScore != 60 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.BestCombo != 7 {
		t.Errorf("BestCombo = %d, expected 7", stats.BestCombo)
	}
	if stats.AvgAccuracy != 60 {
		t.Errorf("AvgAccuracy = %v, expected 60 (sessions without attempts excluded)", stats.AvgAccuracy)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["roach"] == nil || all["roach"].GamesCount != 3 {
		t.Errorf("GetAllGamesStats() = %v", all)
	}
}
