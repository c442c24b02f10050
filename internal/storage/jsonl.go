package storage

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxJSONLLineCapacity is the length at which a record line is refused (1MB).
const MaxJSONLLineCapacity = 1024 * 1024

// defaultFileMode applies to a save file written for the first time.
const defaultFileMode os.FileMode = 0644

// ReadLines returns every line of the save file in order, blank ones included.
// Lines of any length are returned whole; judging them is DecodeRecord's job.
// A missing file yields no lines and no error; any other failure is an *IOError.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			lines = append(lines, line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &IOError{Op: "read", Path: path, Err: err}
		}
	}

	return lines, nil
}

// WriteLines replaces the save file with the given lines, one per line.
// Uses temp file + rename so readers see either the old file or the new one.
// Any failure is an *IOError and leaves the previous file in place.
func WriteLines(path string, lines []string) error {
	for i, line := range lines {
		if strings.ContainsAny(line, "\r\n") {
			return &IOError{Op: "write", Path: path, Err: fmt.Errorf("line %d contains a line break", i+1)}
		}
	}

	// Create temp file in same directory for atomic rename
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*.txt")
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: fmt.Errorf("creating temp file: %w", err)}
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	success := false
	defer func() {
		if !success {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(tmpFile)
	for i, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return &IOError{Op: "write", Path: path, Err: fmt.Errorf("writing record %d: %w", i+1, err)}
		}
		if err := w.WriteByte('\n'); err != nil {
			return &IOError{Op: "write", Path: path, Err: fmt.Errorf("writing newline: %w", err)}
		}
	}
	if err := w.Flush(); err != nil {
		return &IOError{Op: "write", Path: path, Err: fmt.Errorf("flushing temp file: %w", err)}
	}

	// Keep the permissions of the file being replaced.
	mode := defaultFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmpFile.Chmod(mode); err != nil {
		return &IOError{Op: "write", Path: path, Err: fmt.Errorf("setting file mode: %w", err)}
	}

	if err := tmpFile.Sync(); err != nil {
		return &IOError{Op: "write", Path: path, Err: fmt.Errorf("syncing temp file: %w", err)}
	}
	if err := tmpFile.Close(); err != nil {
		return &IOError{Op: "write", Path: path, Err: fmt.Errorf("closing temp file: %w", err)}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return &IOError{Op: "write", Path: path, Err: fmt.Errorf("renaming temp file: %w", err)}
	}

	success = true
	return nil
}

// ComputeHash computes a SHA256 hash of the save file's contents.
// A missing file hashes like an empty one.
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			h := sha256.Sum256([]byte{})
			return hex.EncodeToString(h[:]), nil
		}
		return "", &IOError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", &IOError{Op: "read", Path: path, Err: err}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
