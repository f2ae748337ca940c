// Package frontmatter splits an article into its YAML front-matter block and
// Markdown body, and normalizes the loosely typed block into Meta.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	adrg "github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"

	"github.com/bitsboot/md2blog/internal/yamlutil"
)

// ErrFrontMatter indicates the front-matter block could not be decoded.
var ErrFrontMatter = errors.New("invalid front-matter")

// Delimiter opens and closes the front-matter block.
const Delimiter = "---"

// yamlFormat routes decoding through yamlutil so config and articles share
// one YAML implementation.
var yamlFormat = adrg.NewFormat(Delimiter, Delimiter, yamlutil.UnmarshalOptional)

// Meta is the normalized front-matter of one article.
// Zero values mean the key was missing or unusable; defaults are applied by
// the caller, not here.
type Meta struct {
	Title    string
	Slug     string
	Excerpt  string
	Date     string
	Author   string
	Category string
	Tags     []string

	// ReadTime is nil unless the block carries an integer (or numeric
	// string) readTime. Explicit values are kept verbatim, including <= 0.
	ReadTime *int

	// Hidden follows JavaScript parseInt semantics over the value's text.
	Hidden int
}

// Parse splits source into Meta and body. A source without a front-matter
// block yields zero Meta and the whole source as body. A leading UTF-8 BOM
// is dropped first so the opening "---" is still found.
func Parse(source []byte) (Meta, []byte, error) {
	source = bytes.TrimPrefix(source, []byte("\uFEFF"))
	raw := map[string]any{}
	body, err := adrg.Parse(bytes.NewReader(source), &raw, yamlFormat)
	if err != nil {
		return Meta{}, nil, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	return Normalize(raw), body, nil
}

// Normalize converts a decoded YAML mapping into Meta.
func Normalize(raw map[string]any) Meta {
	m := Meta{
		Title:    scalarString(raw["title"]),
		Slug:     scalarString(raw["slug"]),
		Excerpt:  scalarString(raw["excerpt"]),
		Date:     dateString(raw["date"]),
		Author:   scalarString(raw["author"]),
		Category: scalarString(raw["category"]),
		Tags:     stringList(raw["tags"]),
		Hidden:   parseIntPrefix(textOf(raw["hidden"])),
	}
	if n, ok := explicitInt(raw["readTime"]); ok {
		m.ReadTime = &n
	}
	return m
}

// ValidSlug reports whether s is already URL safe.
// Slugs that are not still work as output directory names; callers may warn.
func ValidSlug(s string) bool {
	return slug.IsValid(s)
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any, map[string]any:
		return ""
	default:
		return textOf(t)
	}
}

func dateString(v any) string {
	t, ok := v.(time.Time)
	if !ok {
		return scalarString(v)
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

func stringList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := scalarString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return append([]string{}, t...)
	default:
		if s := scalarString(t); s != "" {
			return []string{s}
		}
		return []string{}
	}
}

// textOf renders a decoded YAML value the way it reads in the source.
// Sequences join their items with ",".
func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return dateString(t)
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = textOf(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(t)
	}
}

// parseIntPrefix mirrors parseInt(s) || 0: skip leading whitespace, accept
// an optional sign, then read decimal digits until the first non-digit.
func parseIntPrefix(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		if n > (math.MaxInt32-9)/10 {
			break
		}
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}

// explicitInt accepts whole numbers and strings that parse as one.
func explicitInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case uint64:
		if t > math.MaxInt32 {
			return 0, false
		}
		return int(t), true
	case float64:
		if t != math.Trunc(t) || math.Abs(t) > math.MaxInt32 {
			return 0, false
		}
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
