package journal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDeferred_ReadsDoNotCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	d := NewDeferred(path)
	defer d.Close()

	if _, ok, err := d.LastSaved("vanilla"); err != nil || ok {
		t.Errorf("Expected no save, got ok=%v err=%v", ok, err)
	}
	entries, err := d.Recent(10)
	if err != nil || len(entries) != 0 {
		t.Errorf("Expected no entries, got %v err=%v", entries, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Reads must not create the database")
	}
}

func TestDeferred_RecordCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	d := NewDeferred(path)

	if err := d.Record(OpSave, "vanilla"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if _, ok, err := d.LastSaved("vanilla"); err != nil || !ok {
		t.Errorf("Expected a save, got ok=%v err=%v", ok, err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	d = NewDeferred(path)
	defer d.Close()
	entries, err := d.Recent(10)
	if err != nil || len(entries) != 1 || entries[0].Profile != "vanilla" {
		t.Errorf("Unexpected entries after reopen: %+v err=%v", entries, err)
	}
}
