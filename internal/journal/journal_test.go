package journal

import (
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndRecent(t *testing.T) {
	j := openTemp(t)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	j.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	if err := j.Record(OpCreate, ""); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := j.Record(OpSave, "vanilla"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := j.Record(OpLoad, "vanilla"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	entries, err := j.Recent(2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Op != OpLoad || entries[1].Op != OpSave {
		t.Errorf("Expected newest first (load, save), got (%s, %s)", entries[0].Op, entries[1].Op)
	}
	if entries[0].Profile != "vanilla" {
		t.Errorf("Expected profile 'vanilla', got '%s'", entries[0].Profile)
	}
	if !entries[0].At.Equal(base.Add(3 * time.Minute)) {
		t.Errorf("Unexpected timestamp %v", entries[0].At)
	}
}

func TestLastSaved(t *testing.T) {
	j := openTemp(t)

	if _, ok, err := j.LastSaved("vanilla"); err != nil || ok {
		t.Fatalf("Expected no save yet, got ok=%v err=%v", ok, err)
	}

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	j.now = func() time.Time { return first }
	j.Record(OpSave, "vanilla")
	j.now = func() time.Time { return second }
	j.Record(OpSave, "vanilla")
	j.Record(OpSave, "other")
	j.Record(OpLoad, "vanilla")

	at, ok, err := j.LastSaved("vanilla")
	if err != nil || !ok {
		t.Fatalf("LastSaved failed: ok=%v err=%v", ok, err)
	}
	if !at.Equal(second) {
		t.Errorf("Expected %v, got %v", second, at)
	}
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	j.Record(OpDelete, "old")
	j.Close()

	j, err = Open(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer j.Close()

	entries, err := j.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Op != OpDelete || entries[0].Profile != "old" {
		t.Errorf("Unexpected entries after reopen: %+v", entries)
	}
}
