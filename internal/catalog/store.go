package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNoCatalogPath is returned when no catalog file was given.
var ErrNoCatalogPath = errors.New("no catalog path configured")

// BackupSuffix is appended to the catalog path when a backup is requested.
const BackupSuffix = ".bak"

// Store reads and replaces catalog files on disk.
type Store struct {
	// Backup copies the current file to <path>.bak before it is replaced.
	Backup bool
	// InPlace truncates and rewrites the file directly instead of writing a
	// temp file and renaming it over the target.
	InPlace bool
}

// Read returns the full contents of the catalog at path.
func (s Store) Read(path string) (string, error) {
	if path == "" {
		return "", ErrNoCatalogPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read catalog %s: %w", path, err)
	}
	return string(data), nil
}

// Write replaces the catalog at path with content.
func (s Store) Write(path, content string) error {
	if path == "" {
		return ErrNoCatalogPath
	}

	perm := fs.FileMode(0o644)
	info, err := os.Stat(path)
	switch {
	case err == nil:
		perm = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat catalog %s: %w", path, err)
	}

	if s.Backup && err == nil {
		if err := copyFile(path, path+BackupSuffix, perm); err != nil {
			return fmt.Errorf("backup catalog %s: %w", path, err)
		}
	}

	if s.InPlace {
		if err := os.WriteFile(path, []byte(content), perm); err != nil {
			return fmt.Errorf("write catalog %s: %w", path, err)
		}
		return nil
	}
	if err := writeAtomic(path, []byte(content), perm); err != nil {
		return fmt.Errorf("write catalog %s: %w", path, err)
	}
	return nil
}

func writeAtomic(dest string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

func copyFile(src, dst string, perm fs.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, perm)
}
