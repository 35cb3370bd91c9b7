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

func TestStoreLastLevel(t *testing.T) {
	store := openTestStore(t)

	level, err := store.LastLevel()
	if err != nil {
		t.Fatalf("LastLevel() failed: %v", err)
	}
	if level != "" {
		t.Errorf("LastLevel() = %q, expected empty for a fresh store", level)
	}

	for _, name := range []string{"level01", "level02", "level03"} {
		if err := store.SetLastLevel(name); err != nil {
			t.Fatalf("SetLastLevel(%q) failed: %v", name, err)
		}
	}
	level, err = store.LastLevel()
	if err != nil {
		t.Fatalf("LastLevel() failed: %v", err)
	}
	if level != "level03" {
		t.Errorf("LastLevel() = %q, expected level03", level)
	}

	if err := store.ResetProgress(); err != nil {
		t.Fatalf("ResetProgress() failed: %v", err)
	}
	if level, _ := store.LastLevel(); level != "" {
		t.Errorf("LastLevel() after reset = %q, expected empty", level)
	}
}

func TestStoreProgressSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SetLastLevel("level05"); err != nil {
		t.Fatalf("SetLastLevel() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if level, _ := store.LastLevel(); level != "level05" {
		t.Errorf("LastLevel() = %q, expected level05", level)
	}
}

func TestStoreCompletions(t *testing.T) {
	store := openTestStore(t)

	records := []Completion{
		{RunID: "run-a", Level: "level01", Ticks: 900, BombsUsed: 2},
		{RunID: "run-a", Level: "level02", Ticks: 1500, BombsUsed: 3},
		{RunID: "run-b", Level: "level01", Ticks: 600, BombsUsed: 4},
		{RunID: "run-c", Level: "level01", Ticks: 750, BombsUsed: 1},
	}
	for _, c := range records {
		if _, err := store.RecordCompletion(c); err != nil {
			t.Fatalf("RecordCompletion() failed: %v", err)
		}
	}

	best, err := store.BestCompletion("level01")
	if err != nil {
		t.Fatalf("BestCompletion() failed: %v", err)
	}
	if best == nil || best.Ticks != 600 || best.RunID != "run-b" {
		t.Errorf("BestCompletion() = %+v, expected the 600 tick run", best)
	}

	missing, err := store.BestCompletion("level09")
	if err != nil {
		t.Fatalf("BestCompletion() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("BestCompletion(unplayed) = %+v, expected nil", missing)
	}

	level1, err := store.Completions("level01", 2)
	if err != nil {
		t.Fatalf("Completions() failed: %v", err)
	}
	if len(level1) != 2 || level1[0].Ticks != 600 || level1[1].Ticks != 750 {
		t.Errorf("Completions(level01, 2) = %+v, expected 600 then 750", level1)
	}

	all, err := store.Completions("", 50)
	if err != nil {
		t.Fatalf("Completions() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Completions(all) = %d rows, expected 4", len(all))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.RecordCompletion(Completion{RunID: "a", Level: "level01", Ticks: 900, BombsUsed: 2})
	store.RecordCompletion(Completion{RunID: "b", Level: "level01", Ticks: 700, BombsUsed: 3})
	store.RecordCompletion(Completion{RunID: "b", Level: "level02", Ticks: 400, BombsUsed: 1})

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Stats() = %d levels, expected 2", len(stats))
	}
	s := stats["level01"]
	if s.Wins != 2 || s.BestTicks != 700 || s.FewestBombs != 2 {
		t.Errorf("Stats()[level01] = %+v, expected 2 wins, 700 ticks, 2 bombs", s)
	}
}

func TestStoreSchemaVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "schema.db")

	for i := range 2 {
		store, err := Open(dbPath)
		if err != nil {
			t.Fatalf("Open() #%d failed: %v", i+1, err)
		}
		version, err := store.SchemaVersion()
		store.Close()
		if err != nil {
			t.Fatalf("SchemaVersion() failed: %v", err)
		}
		if version != 2 {
			t.Errorf("SchemaVersion() = %d, expected 2", version)
		}
	}
}
