package storage

import (
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

func save(t *testing.T, s *Store, mode string, score int) {
	t.Helper()
	if _, err := s.SaveScore(ScoreEntry{ModeID: mode, Player: "p", Score: score, Level: 1}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
}

func TestStoreOpenCreatesFile(t *testing.T) {
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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "classic", 100)
	save(t, store, "classic", 50)
	save(t, store, "classic", 200)
	save(t, store, "frenzy", 500)

	scores, err := store.TopScores("classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %v", scores)
	}

	frenzy, err := store.TopScores("frenzy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(frenzy) != 1 {
		t.Errorf("Expected 1 frenzy score, got %d", len(frenzy))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		save(t, store, "classic", (i+1)*100)
	}

	scores, err := store.TopScores("classic", 3)
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

	high, err := store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score 0 for empty mode, got %d", high)
	}

	save(t, store, "classic", 100)
	save(t, store, "classic", 300)
	save(t, store, "classic", 200)

	high, err = store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "classic", 100)
	save(t, store, "classic", 200)
	save(t, store, "frenzy", 300)

	if err := store.ClearScores("classic"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	classic, _ := store.TopScores("classic", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 classic scores after clear, got %d", len(classic))
	}

	frenzy, _ := store.TopScores("frenzy", 10)
	if len(frenzy) != 1 {
		t.Error("Frenzy scores should not be affected by clearing classic")
	}
}

func TestStoreModeStats(t *testing.T) {
	store := openTestStore(t)

	entries := []ScoreEntry{
		{ModeID: "classic", Score: 100, Level: 2, MaxCombo: 8},
		{ModeID: "classic", Score: 300, Level: 4, MaxCombo: 15},
		{ModeID: "classic", Score: 200, Level: 3, MaxCombo: 10},
	}
	for _, e := range entries {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	stats, err := store.GetModeStats("classic")
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}

	if stats.RunCount != 3 {
		t.Errorf("RunCount = %d, expected 3", stats.RunCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, expected 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}
	if stats.BestCombo != 15 {
		t.Errorf("BestCombo = %d, expected 15", stats.BestCombo)
	}

	all, err := store.GetAllModeStats()
	if err != nil {
		t.Fatalf("GetAllModeStats() failed: %v", err)
	}
	if len(all) != 1 || all["classic"] == nil {
		t.Errorf("GetAllModeStats() = %v, expected one classic entry", all)
	}
}

func TestKVRoundTrip(t *testing.T) {
	store := openTestStore(t)

	type doc struct {
		A int    `json:"a"`
		B string `json:"b"`
	}

	in := doc{A: 7, B: "hello"}
	store.PutJSON("test-doc", in)

	var out doc
	if !store.GetJSON("test-doc", &out) {
		t.Fatal("GetJSON() should find the stored document")
	}
	if out != in {
		t.Errorf("GetJSON() = %+v, expected %+v", out, in)
	}

	// Overwrite
	store.PutJSON("test-doc", doc{A: 9})
	store.GetJSON("test-doc", &out)
	if out.A != 9 {
		t.Errorf("overwritten A = %d, expected 9", out.A)
	}
}

func TestKVMissingKeepsDefaults(t *testing.T) {
	store := openTestStore(t)

	out := 42
	if store.GetJSON("never-written", &out) {
		t.Error("GetJSON() should report missing keys")
	}
	if out != 42 {
		t.Errorf("out = %d, missing key must leave the default intact", out)
	}
}

func TestKVCorruptKeepsDefaults(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.db.Exec("INSERT INTO kv (key, value) VALUES ('bad', '{not json')"); err != nil {
		t.Fatal(err)
	}

	out := 42
	if store.GetJSON("bad", &out) {
		t.Error("GetJSON() should report corrupt documents")
	}
	if out != 42 {
		t.Errorf("out = %d, corrupt document must leave the default intact", out)
	}
}

func TestProfileDefaultsAndRoundTrip(t *testing.T) {
	store := openTestStore(t)

	p := store.LoadProfile()
	if p.Name != "player" || p.XP != 0 {
		t.Errorf("fresh profile = %+v, expected defaults", p)
	}

	p.XP = 450
	p.Currency = 120
	p.Chain = true
	store.SaveProfile(p)

	got := store.LoadProfile()
	if got != p {
		t.Errorf("LoadProfile() = %+v, expected %+v", got, p)
	}
}
