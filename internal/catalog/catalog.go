// Package catalog answers the list queries the blog front end makes against
// the post index: category listings, featured posts and related posts.
// Hidden posts (hidden == 1) never appear in any listing.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/bitsboot/md2blog"
)

// AllCategories selects every category in Visible.
const AllCategories = "All"

// Listing sizes used by the front end.
const (
	FeaturedCount = 3
	RelatedCount  = 3
)

// Sentinel errors for catalog loading.
var (
	ErrReadIndex  = errors.New("failed to read post index")
	ErrParseIndex = errors.New("failed to parse post index")
)

// Catalog is an immutable view over the post index, in index order.
type Catalog struct {
	posts  []md2blog.PostRecord
	bySlug map[string]int
}

// New wraps records, which must already be in index order.
func New(records []md2blog.PostRecord) *Catalog {
	c := &Catalog{
		posts:  append([]md2blog.PostRecord(nil), records...),
		bySlug: make(map[string]int, len(records)),
	}
	for i, p := range c.posts {
		if _, dup := c.bySlug[p.Slug]; !dup {
			c.bySlug[p.Slug] = i
		}
	}
	return c
}

// Load reads a JSON index file written by the indexer.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- configured index path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadIndex, err)
	}
	return Parse(data)
}

// Parse decodes a JSON index.
func Parse(data []byte) (*Catalog, error) {
	var records []md2blog.PostRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseIndex, err)
	}
	return New(records), nil
}

// Len returns the number of records, hidden ones included.
func (c *Catalog) Len() int {
	return len(c.posts)
}

// Visible returns the non-hidden posts of category in index order.
// "" and "All" select every category.
func (c *Catalog) Visible(category string) []md2blog.PostRecord {
	out := []md2blog.PostRecord{}
	for _, p := range c.posts {
		if p.IsHidden() {
			continue
		}
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// BySlug finds a post by slug. Hidden posts are still reachable by direct
// link, as in the front end.
func (c *Catalog) BySlug(slug string) (md2blog.PostRecord, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return md2blog.PostRecord{}, false
	}
	return c.posts[i], true
}

// Featured returns the first n visible posts.
func (c *Catalog) Featured(n int) []md2blog.PostRecord {
	return firstN(c.Visible(AllCategories), n)
}

// Related returns up to n visible posts sharing post's category, excluding
// post itself.
func (c *Catalog) Related(post md2blog.PostRecord, n int) []md2blog.PostRecord {
	out := []md2blog.PostRecord{}
	if n <= 0 {
		return out
	}
	for _, p := range c.Visible(post.Category) {
		if p.ID == post.ID && p.Slug == post.Slug {
			continue
		}
		out = append(out, p)
		if len(out) == n {
			break
		}
	}
	return out
}

// Categories returns "All" followed by each category that has a visible
// post, in order of first appearance.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	out := []string{AllCategories}
	for _, p := range c.Visible(AllCategories) {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

func firstN(posts []md2blog.PostRecord, n int) []md2blog.PostRecord {
	if n >= 0 && n < len(posts) {
		return posts[:n]
	}
	return posts
}
