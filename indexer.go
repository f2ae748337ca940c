package md2blog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bitsboot/md2blog/internal/dateutil"
	"github.com/bitsboot/md2blog/internal/fileutil"
)

// WordsPerMinute is the reading speed behind the computed readTime.
const WordsPerMinute = 200

// Output permissions for index and article files.
const (
	dirPermissions  = 0o750 // rwxr-x---
	filePermissions = 0o644 // rw-r--r--
)

// Indexer builds the post index from a content directory.
type Indexer struct {
	cfg config
}

// NewIndexer creates an Indexer.
func NewIndexer(opts ...Option) *Indexer {
	return &Indexer{cfg: newConfig(opts)}
}

// BuildIndex parses every article of contentDir and returns the records
// sorted newest first.
func (ix *Indexer) BuildIndex(ctx context.Context, contentDir string) ([]PostRecord, error) {
	fallbackDate, err := dateutil.ResolveDate(ix.cfg.defaults.Date, ix.cfg.now())
	if err != nil {
		return nil, fmt.Errorf("%w: date: %v", ErrInvalidDefaults, err)
	}

	articles, err := loadArticles(ctx, contentDir, ix.cfg.logger)
	if err != nil {
		return nil, err
	}

	records := make([]PostRecord, len(articles))
	for i, a := range articles {
		records[i] = ix.record(a, i, fallbackDate)
	}

	SortByDate(records)
	return records, nil
}

// WriteIndex builds the index and writes it to outFile, replacing any
// previous file atomically.
func (ix *Indexer) WriteIndex(ctx context.Context, contentDir, outFile string) ([]PostRecord, error) {
	records, err := ix.BuildIndex(ctx, contentDir)
	if err != nil {
		return nil, err
	}

	data, err := MarshalIndex(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteIndex, err)
	}
	if err := fileutil.WriteFileAtomic(outFile, data, filePermissions, dirPermissions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteIndex, err)
	}

	ix.cfg.logger.Info("wrote post index", "path", outFile, "posts", len(records))
	return records, nil
}

// record applies defaults and derived fields. index is the position of
// the file in listing order.
func (ix *Indexer) record(a article, index int, fallbackDate string) PostRecord {
	m := a.meta
	d := ix.cfg.defaults

	readTime := EstimateReadTime(a.source)
	if m.ReadTime != nil {
		readTime = *m.ReadTime
	}

	return PostRecord{
		ID:       strconv.Itoa(index + 1),
		Title:    m.Title,
		Slug:     a.slug,
		Excerpt:  m.Excerpt,
		MDFile:   a.file,
		Date:     orDefault(m.Date, fallbackDate),
		Author:   orDefault(m.Author, d.Author),
		Category: orDefault(m.Category, d.Category),
		Tags:     nonNil(m.Tags),
		ReadTime: readTime,
		Hidden:   m.Hidden,
	}
}

// EstimateReadTime returns max(1, ceil(words/200)), counting
// whitespace-separated runs of text. The indexer passes the whole file,
// front matter included.
func EstimateReadTime(text []byte) int {
	words := len(strings.Fields(string(text)))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	return max(1, minutes)
}

// SortByDate orders records by date, newest first. The sort is stable:
// equal dates keep their order, and dates that do not parse go after every
// valid date in their original order.
func SortByDate(records []PostRecord) {
	type keyed struct {
		rec   PostRecord
		at    time.Time
		valid bool
	}

	keys := make([]keyed, len(records))
	for i, r := range records {
		at, ok := dateutil.ParsePostDate(r.Date)
		keys[i] = keyed{rec: r, at: at, valid: ok}
	}

	slices.SortStableFunc(keys, func(a, b keyed) int {
		switch {
		case a.valid && b.valid:
			return b.at.Compare(a.at)
		case a.valid:
			return -1
		case b.valid:
			return 1
		default:
			return 0
		}
	})

	for i, k := range keys {
		records[i] = k.rec
	}
}

// MarshalIndex encodes records as 2-space indented JSON with a trailing
// newline. HTML characters are not escaped so excerpts stay readable.
func MarshalIndex(records []PostRecord) ([]byte, error) {
	if records == nil {
		records = []PostRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
