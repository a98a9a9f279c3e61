package util

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Example output for "ex.txt": "21313123123_ex.txt"
func AddUniquePrefixToFileName(fileName string) string {
	uniquePrefix := fmt.Sprintf("%d", time.Now().UnixNano())
	return fmt.Sprintf("%s_%s", uniquePrefix, fileName)
}

// WriteFileAtomic writes data through a temp file in the target directory and
// renames it into place, so a failed run never leaves a partial file behind.
func WriteFileAtomic(path string, write func(f *os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}
