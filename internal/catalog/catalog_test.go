package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bitsboot/md2blog"
	"github.com/bitsboot/md2blog/internal/catalog"
)

func fixture() *catalog.Catalog {
	return catalog.New([]md2blog.PostRecord{
		{ID: "1", Slug: "kernel-1", Category: "Linux"},
		{ID: "2", Slug: "secret", Category: "Linux", Hidden: 1},
		{ID: "3", Slug: "fpga-1", Category: "FPGA"},
		{ID: "4", Slug: "kernel-2", Category: "Linux"},
		{ID: "5", Slug: "draft", Category: "FPGA", Hidden: 1},
		{ID: "6", Slug: "soc-1", Category: "SoC", Hidden: 2},
		{ID: "7", Slug: "kernel-3", Category: "Linux"},
	})
}

func slugs(posts []md2blog.PostRecord) []string {
	out := []string{}
	for _, p := range posts {
		out = append(out, p.Slug)
	}
	return out
}

func TestCatalog_Visible(t *testing.T) {
	t.Parallel()

	c := fixture()

	tests := []struct {
		category string
		want     []string
	}{
		{category: "", want: []string{"kernel-1", "fpga-1", "kernel-2", "soc-1", "kernel-3"}},
		{category: "All", want: []string{"kernel-1", "fpga-1", "kernel-2", "soc-1", "kernel-3"}},
		{category: "Linux", want: []string{"kernel-1", "kernel-2", "kernel-3"}},
		{category: "FPGA", want: []string{"fpga-1"}},
		{category: "Robotics", want: []string{}},
	}

	for _, tt := range tests {
		t.Run("category="+tt.category, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, slugs(c.Visible(tt.category))); diff != "" {
				t.Errorf("Visible(%q) mismatch (-want +got):\n%s", tt.category, diff)
			}
		})
	}
}

func TestCatalog_HiddenNeverListed(t *testing.T) {
	t.Parallel()

	c := fixture()
	for _, category := range append(c.Categories(), "", "FPGA", "Linux") {
		for _, p := range c.Visible(category) {
			if p.Hidden == 1 {
				t.Errorf("Visible(%q) includes hidden post %q", category, p.Slug)
			}
		}
	}
	for _, p := range c.Featured(10) {
		if p.Hidden == 1 {
			t.Errorf("Featured includes hidden post %q", p.Slug)
		}
	}
}

func TestCatalog_BySlug(t *testing.T) {
	t.Parallel()

	c := fixture()
	if p, ok := c.BySlug("secret"); !ok || p.ID != "2" {
		t.Errorf("BySlug(secret) = %+v, %v", p, ok)
	}
	if _, ok := c.BySlug("missing"); ok {
		t.Error("BySlug(missing) found a post")
	}
}

func TestCatalog_Featured(t *testing.T) {
	t.Parallel()

	c := fixture()
	if diff := cmp.Diff([]string{"kernel-1", "fpga-1", "kernel-2"}, slugs(c.Featured(catalog.FeaturedCount))); diff != "" {
		t.Errorf("Featured mismatch (-want +got):\n%s", diff)
	}
	if got := len(c.Featured(100)); got != 5 {
		t.Errorf("len(Featured(100)) = %d, want 5", got)
	}
	if got := len(c.Featured(0)); got != 0 {
		t.Errorf("len(Featured(0)) = %d, want 0", got)
	}
}

func TestCatalog_Related(t *testing.T) {
	t.Parallel()

	c := fixture()
	post, _ := c.BySlug("kernel-2")

	if diff := cmp.Diff([]string{"kernel-1", "kernel-3"}, slugs(c.Related(post, catalog.RelatedCount))); diff != "" {
		t.Errorf("Related mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"kernel-1"}, slugs(c.Related(post, 1))); diff != "" {
		t.Errorf("Related(n=1) mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_Categories(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff([]string{"All", "Linux", "FPGA", "SoC"}, fixture().Categories()); diff != "" {
		t.Errorf("Categories mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "posts.json")
	data, err := md2blog.MarshalIndex([]md2blog.PostRecord{{ID: "1", Slug: "a", Tags: []string{}}})
	if err != nil {
		t.Fatalf("MarshalIndex: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	c, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	if _, err := catalog.Load(filepath.Join(dir, "missing.json")); !errors.Is(err, catalog.ErrReadIndex) {
		t.Errorf("Load(missing) error = %v, want ErrReadIndex", err)
	}
	if _, err := catalog.Parse([]byte("{not json")); !errors.Is(err, catalog.ErrParseIndex) {
		t.Errorf("Parse() error = %v, want ErrParseIndex", err)
	}
}
