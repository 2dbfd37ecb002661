package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
}

func TestCopyFolder_ReplacesDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	writeTree(t, src, map[string]string{"a.txt": "new a", "sub/b.txt": "b"})
	writeTree(t, dst, map[string]string{"a.txt": "old a", "stale.txt": "stale"})

	if err := CopyFolder(src, dst); err != nil {
		t.Fatalf("CopyFolder failed: %v", err)
	}

	if got := readFile(t, filepath.Join(dst, "a.txt")); got != "new a" {
		t.Errorf("Expected 'new a', got %q", got)
	}
	if got := readFile(t, filepath.Join(dst, "sub", "b.txt")); got != "b" {
		t.Errorf("Expected 'b', got %q", got)
	}
	if _, err := os.Stat(filepath.Join(dst, "stale.txt")); !os.IsNotExist(err) {
		t.Error("Stale file should not survive the copy")
	}
	if got := readFile(t, filepath.Join(src, "a.txt")); got != "new a" {
		t.Error("Source must be left untouched")
	}
}

func TestCopyFolder_MissingSource(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "dst")
	writeTree(t, dst, map[string]string{"keep.txt": "keep"})

	if err := CopyFolder(filepath.Join(dir, "nope"), dst); err == nil {
		t.Fatal("Expected error for missing source")
	}
	if !IsDir(dst) {
		t.Error("Destination must not be removed when the source is missing")
	}
}

func TestRemoveFolder(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "gone")
	writeTree(t, target, map[string]string{"x/y.txt": "y"})

	if err := RemoveFolder(target); err != nil {
		t.Fatalf("RemoveFolder failed: %v", err)
	}
	if IsDir(target) {
		t.Error("Folder still exists")
	}
	if err := RemoveFolder(target); err != nil {
		t.Errorf("Removing a missing folder should succeed, got %v", err)
	}
}

func TestDirSize(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a": "12345", "b/c": "123"})

	size, err := DirSize(dir)
	if err != nil {
		t.Fatalf("DirSize failed: %v", err)
	}
	if size != 8 {
		t.Errorf("Expected 8 bytes, got %d", size)
	}
}

func TestRequireDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	os.WriteFile(file, []byte("x"), 0644)

	if err := RequireDir(dir); err != nil {
		t.Errorf("RequireDir(dir) failed: %v", err)
	}
	if err := RequireDir(file); err == nil {
		t.Error("RequireDir should reject a regular file")
	}
	if err := RequireDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("RequireDir should reject a missing path")
	}
}
