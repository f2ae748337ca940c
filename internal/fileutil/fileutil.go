// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrEmptyPath     = errors.New("path cannot be empty")
	ErrPathIsDir     = errors.New("path is a directory")
	ErrNotADirectory = errors.New("not a directory")
)

// MarkdownExtension is the only extension treated as article source.
const MarkdownExtension = ".md"

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsMarkdown reports whether name carries the .md extension.
// The check is case-sensitive: "post.MD" is not an article.
func IsMarkdown(name string) bool {
	return filepath.Ext(name) == MarkdownExtension
}

// BaseName returns the file name without directory and extension.
//
// Examples:
//   - "content/a.md" -> "a"
//   - "notes.v2.md" -> "notes.v2"
//   - "README" -> "README"
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers never observe a partially written file.
// Parent directories are created with dirPerm.
func WriteFileAtomic(path string, data []byte, filePerm, dirPerm os.FileMode) error {
	if path == "" {
		return ErrEmptyPath
	}
	if DirExists(path) {
		return fmt.Errorf("%w: %s", ErrPathIsDir, path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// EnsureDir creates path (and parents) if missing.
// Returns ErrNotADirectory if path exists as a regular file.
func EnsureDir(path string, perm os.FileMode) error {
	if path == "" {
		return ErrEmptyPath
	}
	if FileExists(path) {
		return fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}
	return os.MkdirAll(path, perm)
}

// IsURL returns true if the string looks like a URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
