package store

import (
	"path/filepath"
	"testing"
	"time"

	"TeleinfoBridge/internal/model"
)

func openTestStore(t *testing.T, keep int) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "teleinfo.db"), keep)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func record(papp string) model.TeleinfoRecord {
	return model.TeleinfoRecord{Adco: "012345678912", Papp: papp}
}

func TestStoreLatest(t *testing.T) {
	s := openTestStore(t, 10)

	if _, found, err := s.Latest(); err != nil || found {
		t.Fatalf("empty store: found=%v err=%v", found, err)
	}

	for _, papp := range []string{"00390", "00400"} {
		if err := s.Put(record(papp)); err != nil {
			t.Fatalf("Put: %v", err)
		}
		time.Sleep(time.Millisecond)
	}

	rec, found, err := s.Latest()
	if err != nil || !found {
		t.Fatalf("Latest: found=%v err=%v", found, err)
	}
	if rec.Papp != "00400" {
		t.Fatalf("latest papp = %q, want 00400", rec.Papp)
	}
}

func TestStoreRecentNewestFirst(t *testing.T) {
	s := openTestStore(t, 10)

	for _, papp := range []string{"00100", "00200", "00300"} {
		if err := s.Put(record(papp)); err != nil {
			t.Fatalf("Put: %v", err)
		}
		time.Sleep(time.Millisecond)
	}

	recs, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recs) != 2 || recs[0].Papp != "00300" || recs[1].Papp != "00200" {
		t.Fatalf("Recent = %+v", recs)
	}
}

// Request sizes far beyond the cap must not drive the result allocation.
func TestStoreRecentClampsToCap(t *testing.T) {
	s := openTestStore(t, 2)

	for _, papp := range []string{"00100", "00200"} {
		if err := s.Put(record(papp)); err != nil {
			t.Fatalf("Put: %v", err)
		}
		time.Sleep(time.Millisecond)
	}

	recs, err := s.Recent(1 << 60)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recs) != 2 || recs[0].Papp != "00200" {
		t.Fatalf("Recent = %+v", recs)
	}
}

func TestStorePrunesBeyondCap(t *testing.T) {
	s := openTestStore(t, 2)

	for _, papp := range []string{"00100", "00200", "00300"} {
		if err := s.Put(record(papp)); err != nil {
			t.Fatalf("Put: %v", err)
		}
		time.Sleep(time.Millisecond)
	}

	recs, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("retained %d records, want 2", len(recs))
	}
	if recs[0].Papp != "00300" || recs[1].Papp != "00200" {
		t.Fatalf("oldest record not pruned: %+v", recs)
	}
}
