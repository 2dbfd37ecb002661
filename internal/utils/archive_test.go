package utils

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
	f.Close()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestCheckZip(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "data.zip")
	writeZip(t, good, map[string]string{"a.txt": "a"})
	if err := CheckZip(good); err != nil {
		t.Errorf("CheckZip rejected a zip: %v", err)
	}

	bad := filepath.Join(dir, "tags.zip")
	os.WriteFile(bad, []byte("definitely not a zip"), 0644)
	if err := CheckZip(bad); !errors.Is(err, ErrNotZip) {
		t.Errorf("Expected ErrNotZip, got %v", err)
	}

	missing := filepath.Join(dir, "missing.zip")
	err := CheckZip(missing)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), missing) {
		t.Errorf("Error should name the path, got %v", err)
	}
}

func TestExtractZip_StripsMatchingTopFolder(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "data.zip")
	writeZip(t, archive, map[string]string{
		"data/maps/a.map": "map a",
		"data/readme.txt": "hello",
	})

	dest := filepath.Join(dir, "data")
	n, err := ExtractZip(archive, dest, "data")
	if err != nil {
		t.Fatalf("ExtractZip failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 files, got %d", n)
	}
	if got := readFile(t, filepath.Join(dest, "maps", "a.map")); got != "map a" {
		t.Errorf("Unexpected content %q", got)
	}
	if IsDir(filepath.Join(dest, "data")) {
		t.Error("Top-level folder should have been stripped")
	}
}

func TestExtractZip_FlatArchive(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "tags.zip")
	writeZip(t, archive, map[string]string{
		"weapons/rifle.tag": "rifle",
		"data/nested.tag":   "nested",
	})

	dest := filepath.Join(dir, "tags")
	if _, err := ExtractZip(archive, dest, "tags"); err != nil {
		t.Fatalf("ExtractZip failed: %v", err)
	}
	if got := readFile(t, filepath.Join(dest, "weapons", "rifle.tag")); got != "rifle" {
		t.Errorf("Unexpected content %q", got)
	}
	if got := readFile(t, filepath.Join(dest, "data", "nested.tag")); got != "nested" {
		t.Errorf("Unexpected content %q", got)
	}
}

func TestExtractZip_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "data.zip")
	writeZip(t, archive, map[string]string{"../evil.txt": "x"})

	if _, err := ExtractZip(archive, filepath.Join(dir, "data"), "data"); err == nil {
		t.Fatal("Expected error for entry escaping the destination")
	}
	if _, err := os.Stat(filepath.Join(dir, "evil.txt")); !os.IsNotExist(err) {
		t.Error("Traversal entry was written outside the destination")
	}
}

func TestCheckZip_Truncated(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "data.zip")
	writeZip(t, archive, map[string]string{"data/maps/a.map": "some map content"})

	data, err := os.ReadFile(archive)
	if err != nil {
		t.Fatalf("Failed to read zip: %v", err)
	}
	if err := os.WriteFile(archive, data[:40], 0644); err != nil {
		t.Fatalf("Failed to truncate zip: %v", err)
	}

	err = CheckZip(archive)
	if err == nil {
		t.Fatal("Expected error for a truncated archive with a valid signature")
	}
	if !strings.Contains(err.Error(), archive) {
		t.Errorf("Error should name the path, got %v", err)
	}
}
