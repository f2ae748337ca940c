package md2blog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fixedNow is the build clock used by tests.
var fixedNow = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

func writeArticle(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

// scenarioDir holds the two-article content directory used across tests.
func scenarioDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeArticle(t, dir, "a.md", "---\ntitle: Post A\ndate: 2025-01-01\n---\n## Intro\n\nHello from a.\n")
	writeArticle(t, dir, "b.md", "---\ntitle: Post B\ndate: 2025-02-01\nslug: custom-b\n---\n## Intro\n\nHello from b.\n")
	return dir
}

func slugsOf(records []PostRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Slug
	}
	return out
}
