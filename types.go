package md2blog

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/bitsboot/md2blog/internal/assets"
	"github.com/bitsboot/md2blog/internal/dateutil"
)

// PostRecord is one entry of the post index. Field names are the JSON
// contract consumed by the front end.
type PostRecord struct {
	// ID is the 1-based position of the source file in directory listing
	// order. It changes when files are added or removed and must not be
	// used as a durable key.
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	Excerpt  string   `json:"excerpt"`
	MDFile   string   `json:"mdFile"`
	Date     string   `json:"date"`
	Author   string   `json:"author"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	ReadTime int      `json:"readTime"`
	Hidden   int      `json:"hidden"`
}

// IsHidden reports whether list views must skip the record.
func (p PostRecord) IsHidden() bool {
	return p.Hidden == 1
}

// Built-in defaults for missing front-matter fields.
const (
	DefaultAuthor   = "Avinash"
	DefaultCategory = "Linux"
	DefaultDate     = "auto"
)

// Defaults supplies values for missing front-matter fields.
type Defaults struct {
	Author   string
	Category string
	// Date is a literal date or "auto" / "auto:FORMAT", resolved against
	// the build clock.
	Date string
}

// DefaultDefaults returns the built-in defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		Author:   DefaultAuthor,
		Category: DefaultCategory,
		Date:     DefaultDate,
	}
}

// Validate checks that the date default resolves.
func (d Defaults) Validate() error {
	if _, err := dateutil.ResolveDate(d.Date, time.Now()); err != nil {
		return fmt.Errorf("%w: date: %v", ErrInvalidDefaults, err)
	}
	return nil
}

// BuildInput names the directories and files of one build.
type BuildInput struct {
	ContentDir string
	OutputRoot string
	IndexFile  string
}

// RenderResult describes one written article document.
type RenderResult struct {
	Slug       string
	SourceFile string
	OutputPath string
}

// BuildReport summarizes a successful build.
type BuildReport struct {
	Posts    []PostRecord
	Rendered []RenderResult
	Duration time.Duration
}

// Option configures an Indexer, Renderer or Service.
type Option func(*config)

type config struct {
	now         func() time.Time
	defaults    Defaults
	logger      *slog.Logger
	workers     int
	loader      assets.AssetLoader
	style       string
	appRootID   string
	titleSuffix string
	postsPath   string
	rawHTML     bool
}

// DefaultPostsPath is the URL path articles are published under.
const DefaultPostsPath = "/posts"

func newConfig(opts []Option) config {
	cfg := config{
		now:       time.Now,
		defaults:  DefaultDefaults(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		style:     assets.DefaultStyleName,
		postsPath: DefaultPostsPath,
		rawHTML:   true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithNow injects the clock used for date defaults.
func WithNow(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithDefaults overrides the front-matter defaults. Empty fields keep the
// built-in values.
func WithDefaults(d Defaults) Option {
	return func(c *config) {
		if d.Author != "" {
			c.defaults.Author = d.Author
		}
		if d.Category != "" {
			c.defaults.Category = d.Category
		}
		if d.Date != "" {
			c.defaults.Date = d.Date
		}
	}
}

// WithLogger sets the diagnostics logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithWorkers sets the number of concurrent article renders.
// Zero or less means automatic sizing (see ResolvePoolSize).
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithAssetLoader sets where the stylesheet and article template come from.
func WithAssetLoader(l assets.AssetLoader) Option {
	return func(c *config) { c.loader = l }
}

// WithStyle selects the stylesheet by name (without .css).
func WithStyle(name string) Option {
	return func(c *config) {
		if name != "" {
			c.style = name
		}
	}
}

// WithAppRootID sets the id of the app shell element the redirect script
// looks for.
func WithAppRootID(id string) Option {
	return func(c *config) { c.appRootID = id }
}

// WithTitleSuffix appends a suffix to every document <title>.
func WithTitleSuffix(s string) Option {
	return func(c *config) { c.titleSuffix = s }
}

// WithPostsPath sets the URL path articles are served under. Relative URLs
// in an article are rooted at <path>/<slug>/. An empty path disables the
// rewrite.
func WithPostsPath(p string) Option {
	return func(c *config) { c.postsPath = p }
}

// WithRawHTML controls whether raw HTML in Markdown is kept (default true).
func WithRawHTML(enabled bool) Option {
	return func(c *config) { c.rawHTML = enabled }
}
