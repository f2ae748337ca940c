package fileutil_test

// Notes:
// - WriteFileAtomic write/close/chmod error branches are not tested because
//   triggering disk failures is platform-specific.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitsboot/md2blog/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestIsMarkdown - Article source detection
// ---------------------------------------------------------------------------

func TestIsMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		want bool
	}{
		{name: "md extension", file: "post.md", want: true},
		{name: "nested md", file: "content/2025/post.md", want: true},
		{name: "markdown extension is not an article", file: "post.markdown", want: false},
		{name: "uppercase extension", file: "post.MD", want: false},
		{name: "no extension", file: "README", want: false},
		{name: "html file", file: "index.html", want: false},
		{name: "md in middle", file: "post.md.bak", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.IsMarkdown(tt.file); got != tt.want {
				t.Errorf("IsMarkdown(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBaseName - Extension stripping
// ---------------------------------------------------------------------------

func TestBaseName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{path: "a.md", want: "a"},
		{path: "content/boot-stages.md", want: "boot-stages"},
		{path: "notes.v2.md", want: "notes.v2"},
		{path: "README", want: "README"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.BaseName(tt.path); got != tt.want {
				t.Errorf("BaseName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFileExists / TestDirExists - Stat helpers
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true, want false")
	}
}

func TestDirExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if !fileutil.DirExists(dir) {
		t.Error("DirExists(dir) = false, want true")
	}
	if fileutil.DirExists(file) {
		t.Error("DirExists(file) = true, want false")
	}
	if fileutil.DirExists(filepath.Join(dir, "missing")) {
		t.Error("DirExists(missing) = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Atomic replacement
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "a", "b", "index.html")

		if err := fileutil.WriteFileAtomic(path, []byte("hello"), 0o644, 0o750); err != nil {
			t.Fatalf("WriteFileAtomic() error: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading result: %v", err)
		}
		if string(got) != "hello" {
			t.Errorf("content = %q, want %q", got, "hello")
		}
	})

	t.Run("overwrites existing file fully", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "posts.json")
		if err := os.WriteFile(path, []byte("a much longer previous content"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := fileutil.WriteFileAtomic(path, []byte("[]"), 0o644, 0o750); err != nil {
			t.Fatalf("WriteFileAtomic() error: %v", err)
		}

		got, _ := os.ReadFile(path)
		if string(got) != "[]" {
			t.Errorf("content = %q, want %q", got, "[]")
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "out.json")

		if err := fileutil.WriteFileAtomic(path, []byte("{}"), 0o644, 0o750); err != nil {
			t.Fatalf("WriteFileAtomic() error: %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("dir has %d entries, want 1", len(entries))
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		err := fileutil.WriteFileAtomic("", []byte("x"), 0o644, 0o750)
		if !errors.Is(err, fileutil.ErrEmptyPath) {
			t.Errorf("error = %v, want ErrEmptyPath", err)
		}
	})

	t.Run("path is a directory", func(t *testing.T) {
		t.Parallel()
		err := fileutil.WriteFileAtomic(t.TempDir(), []byte("x"), 0o644, 0o750)
		if !errors.Is(err, fileutil.ErrPathIsDir) {
			t.Errorf("error = %v, want ErrPathIsDir", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestEnsureDir - Directory creation
// ---------------------------------------------------------------------------

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	t.Run("creates nested directory", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "posts", "a")
		if err := fileutil.EnsureDir(path, 0o750); err != nil {
			t.Fatalf("EnsureDir() error: %v", err)
		}
		if !fileutil.DirExists(path) {
			t.Error("directory was not created")
		}
	})

	t.Run("existing file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := fileutil.EnsureDir(path, 0o750); !errors.Is(err, fileutil.ErrNotADirectory) {
			t.Errorf("error = %v, want ErrNotADirectory", err)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		if err := fileutil.EnsureDir("", 0o750); !errors.Is(err, fileutil.ErrEmptyPath) {
			t.Errorf("error = %v, want ErrEmptyPath", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestIsURL - URL detection
// ---------------------------------------------------------------------------

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"https://example.com", true},
		{"http://localhost:8080", true},
		{"localhost:8080", false},
		{"/posts", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.IsURL(tt.input); got != tt.want {
				t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
