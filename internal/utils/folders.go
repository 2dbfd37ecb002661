package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
)

var copyOptions = cp.Options{
	OnSymlink: func(string) cp.SymlinkAction {
		return cp.Shallow
	},
	OnDirExists: func(string, string) cp.DirExistsAction {
		return cp.Replace
	},
	PreserveTimes: true,
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// RequireDir returns an error naming path unless it is an existing directory.
func RequireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("folder %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("folder %s: not a directory", path)
	}
	return nil
}

// CopyFolder copies the tree at src to dst. Anything already at dst is removed first.
func CopyFolder(src, dst string) error {
	if err := RequireDir(src); err != nil {
		return err
	}
	if err := RemoveFolder(dst); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
	}
	if err := cp.Copy(src, dst, copyOptions); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return nil
}

// RemoveFolder deletes path and everything below it. A missing path is not an error.
func RemoveFolder(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// DirSize sums the sizes of the regular files below path.
func DirSize(path string) (int64, error) {
	var total int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to size %s: %w", path, err)
	}
	return total, nil
}
