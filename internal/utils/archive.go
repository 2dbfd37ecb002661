package utils

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// ErrNotZip is returned when an archive does not carry a zip signature.
var ErrNotZip = errors.New("not a zip archive")

// headerSize is enough for every matcher filetype ships with.
const headerSize = 262

// CheckZip verifies that archivePath exists, carries a zip signature and that
// every entry can be read back with a matching checksum.
func CheckZip(archivePath string) error {
	if err := sniffZip(archivePath); err != nil {
		return err
	}

	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("archive %s: %w", archivePath, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if err := readEntry(f); err != nil {
			return fmt.Errorf("archive %s: %w", archivePath, err)
		}
	}
	return nil
}

func readEntry(f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	defer rc.Close()
	if _, err := io.Copy(io.Discard, rc); err != nil {
		return fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	return nil
}

func sniffZip(archivePath string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("archive %s: %w", archivePath, err)
	}
	defer f.Close()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("archive %s: %w", archivePath, err)
	}
	if !filetype.Is(head[:n], "zip") {
		return fmt.Errorf("archive %s: %w", archivePath, ErrNotZip)
	}
	return nil
}

// ExtractZip unpacks archivePath into dest and returns the number of files written.
// When every entry lives under a top-level directory named strip, that directory
// is dropped so data.zip may hold either "data/..." or the folder contents directly.
func ExtractZip(archivePath, dest, strip string) (int, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	defer r.Close()

	prefix := ""
	if strip != "" && allUnder(r.File, strip) {
		prefix = strip + "/"
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dest, err)
	}
	root := filepath.Clean(dest)

	files := 0
	for _, f := range r.File {
		name := strings.TrimPrefix(f.Name, prefix)
		if name == "" {
			continue
		}
		target := filepath.Join(root, filepath.FromSlash(name))
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return files, fmt.Errorf("archive %s: entry %q escapes %s", archivePath, f.Name, dest)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return files, fmt.Errorf("failed to create %s: %w", target, err)
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return files, fmt.Errorf("archive %s: %w", archivePath, err)
		}
		files++
	}
	return files, nil
}

func allUnder(files []*zip.File, dir string) bool {
	if len(files) == 0 {
		return false
	}
	for _, f := range files {
		first, _, _ := strings.Cut(path.Clean(f.Name), "/")
		if first != dir {
			return false
		}
	}
	return true
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
	}

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return dst.Close()
}
