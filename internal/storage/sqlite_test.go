package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/bc-engines/internal/core"
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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieveRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Kind: "creative", Side: 1, Ticks: 200, Deploys: 3, Delivered: 120, FinalStage: "GREEN"},
		{Kind: "creative", Side: 4, Ticks: 400, Deploys: 7, Delivered: 310.5, FinalStage: "RED"},
		{Kind: "iron", Side: 1, Ticks: 100, Deploys: 1, Delivered: 20, FinalStage: "ORANGE"},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	creative, err := store.RecentRuns("creative", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(creative) != 2 {
		t.Fatalf("RecentRuns() returned %d runs, expected 2", len(creative))
	}
	if creative[0].Side != 4 || creative[0].FinalStage != "RED" {
		t.Errorf("RecentRuns()[0] = %+v, expected the newest run first", creative[0])
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("RecentRuns(\"\") returned %d runs, expected 3", len(all))
	}

	limited, err := store.RecentRuns("", 1)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(limited) != 1 || limited[0].Kind != "iron" {
		t.Errorf("RecentRuns(limit 1) = %+v", limited)
	}
}

func TestStoreBestDelivered(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestDelivered("creative")
	if err != nil {
		t.Fatalf("BestDelivered() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("BestDelivered() = %v, expected 0 with no runs", best)
	}

	_, _ = store.SaveRun(Run{Kind: "creative", Delivered: 50, FinalStage: "BLUE"})
	_, _ = store.SaveRun(Run{Kind: "creative", Delivered: 75.25, FinalStage: "BLUE"})

	best, err = store.BestDelivered("creative")
	if err != nil {
		t.Fatalf("BestDelivered() failed: %v", err)
	}
	if best != 75.25 {
		t.Errorf("BestDelivered() = %v, expected 75.25", best)
	}

	if err := store.ClearRuns("creative"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, _ := store.RecentRuns("creative", 10)
	if len(runs) != 0 {
		t.Errorf("ClearRuns() left %d runs", len(runs))
	}
}

func TestStoreTileStates(t *testing.T) {
	store := openTestStore(t)

	a := core.BlockPos{X: 1, Y: 64, Z: 0}
	b := core.BlockPos{X: -2, Y: 64, Z: 5}

	if err := store.SaveTileState(a, "creative", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("SaveTileState() failed: %v", err)
	}
	if err := store.SaveTileState(b, "iron", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("SaveTileState() failed: %v", err)
	}
	if err := store.SaveTileState(a, "stirling", []byte(`{"v":3}`)); err != nil {
		t.Fatalf("SaveTileState() upsert failed: %v", err)
	}

	states, err := store.TileStates()
	if err != nil {
		t.Fatalf("TileStates() failed: %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("TileStates() returned %d, expected 2", len(states))
	}
	if states[0].Pos != b || states[1].Pos != a {
		t.Errorf("TileStates() order = %v, %v", states[0].Pos, states[1].Pos)
	}
	if states[1].Kind != "stirling" || string(states[1].Data) != `{"v":3}` {
		t.Errorf("upserted state = %+v", states[1])
	}

	if err := store.DeleteTileState(b); err != nil {
		t.Fatalf("DeleteTileState() failed: %v", err)
	}
	states, _ = store.TileStates()
	if len(states) != 1 {
		t.Errorf("TileStates() after delete returned %d, expected 1", len(states))
	}

	if err := store.ClearTileStates(); err != nil {
		t.Fatalf("ClearTileStates() failed: %v", err)
	}
	states, _ = store.TileStates()
	if len(states) != 0 {
		t.Errorf("TileStates() after clear returned %d, expected 0", len(states))
	}
}
