package md2blog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitsboot/md2blog/internal/fileutil"
	"github.com/bitsboot/md2blog/internal/frontmatter"
)

// article is one parsed source file. The Indexer and Renderer each load
// their own copies; nothing parsed is shared between them.
type article struct {
	file   string // base name, e.g. "a.md"
	path   string
	meta   frontmatter.Meta
	source []byte // whole file, front matter included
	body   []byte
	slug   string
}

// listArticles returns the .md files of dir in os.ReadDir order.
// Sub-directories and other files are ignored.
func listArticles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrContentDirNotFound, dir)
		}
		if !fileutil.DirExists(dir) {
			return nil, fmt.Errorf("%w: not a directory: %s", ErrContentDirNotFound, dir)
		}
		return nil, fmt.Errorf("%w: listing %s: %v", ErrReadArticle, dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !fileutil.IsMarkdown(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}

// loadArticle reads and parses one source file.
func loadArticle(dir, file string) (article, error) {
	path := filepath.Join(dir, file)
	source, err := os.ReadFile(path) // #nosec G304 -- listed from the content directory
	if err != nil {
		return article{}, fmt.Errorf("%w: %s: %v", ErrReadArticle, path, err)
	}

	meta, body, err := frontmatter.Parse(source)
	if err != nil {
		return article{}, fmt.Errorf("%w: %s: %v", ErrFrontMatter, path, err)
	}

	slug, err := resolveSlug(meta.Slug, file)
	if err != nil {
		return article{}, fmt.Errorf("%s: %w", path, err)
	}

	return article{
		file:   file,
		path:   path,
		meta:   meta,
		source: source,
		body:   body,
		slug:   slug,
	}, nil
}

// resolveSlug picks the front-matter slug, else the file name without .md.
// A slug becomes a directory name, so separators and dot segments are rejected.
func resolveSlug(fromMeta, file string) (string, error) {
	slug := strings.TrimSpace(fromMeta)
	if slug == "" {
		slug = fileutil.BaseName(file)
	}
	if slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}
	return slug, nil
}

// loadArticles parses every article of dir in listing order and rejects
// duplicate slugs before anything is written.
func loadArticles(ctx context.Context, dir string, logger *slog.Logger) ([]article, error) {
	files, err := listArticles(dir)
	if err != nil {
		return nil, err
	}

	articles := make([]article, 0, len(files))
	owners := make(map[string]string, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		a, err := loadArticle(dir, file)
		if err != nil {
			return nil, err
		}
		if prev, ok := owners[a.slug]; ok {
			return nil, fmt.Errorf("%w: %q is used by %s and %s", ErrDuplicateSlug, a.slug, prev, file)
		}
		owners[a.slug] = file

		if !frontmatter.ValidSlug(a.slug) {
			logger.Warn("slug is not URL safe", "file", file, "slug", a.slug)
		}
		articles = append(articles, a)
	}

	logger.Debug("loaded articles", "dir", dir, "count", len(articles))
	return articles, nil
}
