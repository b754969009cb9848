package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
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
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	id, err := store.SaveRecording(Recording{Seed: 1, ScreenW: 400, ScreenH: 800, Tilts: []float64{1}})
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	rec, err := store.Recording(id)
	if err != nil || rec == nil {
		t.Fatalf("Recording(%q) = %v, %v", id, rec, err)
	}
}

func TestSaveAndLoadRecording(t *testing.T) {
	store := openTestStore(t)

	tilts := []float64{0, 0.5, -1, 0.25, 0}
	id, err := store.SaveRecording(Recording{
		Seed:     12345,
		ScreenW:  800,
		ScreenH:  480,
		Duration: 2480 * time.Millisecond,
		Tilts:    tilts,
	})
	if err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveRecording() should assign an ID")
	}

	rec, err := store.Recording(id)
	if err != nil {
		t.Fatalf("Recording() failed: %v", err)
	}
	if rec == nil {
		t.Fatal("Recording() returned nil for a saved ID")
	}

	if rec.Seed != 12345 || rec.ScreenW != 800 || rec.ScreenH != 480 {
		t.Errorf("header = %+v", rec)
	}
	if rec.Duration != 2480*time.Millisecond {
		t.Errorf("Duration = %v, expected 2.48s", rec.Duration)
	}
	if rec.SampleCount != len(tilts) {
		t.Errorf("SampleCount = %d, expected %d", rec.SampleCount, len(tilts))
	}
	if len(rec.Tilts) != len(tilts) {
		t.Fatalf("got %d tilts, expected %d", len(rec.Tilts), len(tilts))
	}
	for i := range tilts {
		if rec.Tilts[i] != tilts[i] {
			t.Errorf("tilt %d = %v, expected %v", i, rec.Tilts[i], tilts[i])
		}
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestSaveRecordingKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRecording(Recording{ID: "fixed-id", Seed: 1, ScreenW: 1, ScreenH: 1})
	if err != nil {
		t.Fatal(err)
	}
	if id != "fixed-id" {
		t.Errorf("ID = %q, expected fixed-id", id)
	}

	if _, err := store.SaveRecording(Recording{ID: "fixed-id", Seed: 2, ScreenW: 1, ScreenH: 1}); err == nil {
		t.Error("saving a duplicate ID should fail")
	}
}

func TestRecordingNotFound(t *testing.T) {
	store := openTestStore(t)

	rec, err := store.Recording("nope")
	if err != nil {
		t.Fatalf("Recording() failed: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil for unknown ID, got %+v", rec)
	}
}

func TestRecordingsListNewestFirst(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i := 0; i < 5; i++ {
		id, err := store.SaveRecording(Recording{Seed: int64(i), ScreenW: 400, ScreenH: 800, Tilts: []float64{float64(i)}})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	recs, err := store.Recordings(3)
	if err != nil {
		t.Fatalf("Recordings() failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d recordings, expected 3", len(recs))
	}
	if recs[0].ID != ids[4] || recs[2].ID != ids[2] {
		t.Errorf("order = %s, %s, %s", recs[0].ID, recs[1].ID, recs[2].ID)
	}
	if recs[0].Tilts != nil {
		t.Error("listing should not load samples")
	}
	if recs[0].SampleCount != 1 {
		t.Errorf("SampleCount = %d, expected 1", recs[0].SampleCount)
	}
}

func TestDeleteRecording(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRecording(Recording{Seed: 1, ScreenW: 400, ScreenH: 800, Tilts: []float64{1, 2, 3}})
	if err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteRecording(id); err != nil {
		t.Fatalf("DeleteRecording() failed: %v", err)
	}

	rec, err := store.Recording(id)
	if err != nil || rec != nil {
		t.Errorf("deleted recording still loads: %+v, %v", rec, err)
	}

	var samples int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM recording_samples WHERE recording_id = ?", id).Scan(&samples); err != nil {
		t.Fatal(err)
	}
	if samples != 0 {
		t.Errorf("%d orphan samples left", samples)
	}

	if err := store.DeleteRecording("unknown"); err != nil {
		t.Errorf("deleting an unknown ID should succeed, got %v", err)
	}
}
