package viewer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// NotFoundHTML replaces the content of a post that could not be fetched.
const NotFoundHTML = "<h2>Post not found</h2>"

// DefaultFetchTimeout bounds one article request.
const DefaultFetchTimeout = 10 * time.Second

// maxArticleSize caps the bytes read from one article response.
const maxArticleSize = 8 << 20

// Fetcher loads rendered articles from a site.
type Fetcher struct {
	baseURL   string
	postsPath string
	client    *http.Client
	logger    *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithFetchLogger sets the logger for failed requests.
func WithFetchLogger(l *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithPostsPath overrides the "/posts" URL prefix of articles.
func WithPostsPath(p string) FetcherOption {
	return func(f *Fetcher) { f.postsPath = p }
}

// NewFetcher creates a Fetcher for the site at baseURL.
func NewFetcher(baseURL string, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		baseURL:   strings.TrimRight(baseURL, "/"),
		postsPath: "/posts",
		client:    &http.Client{Timeout: DefaultFetchTimeout},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ArticleURL returns the URL of slug's rendered article.
func (f *Fetcher) ArticleURL(slug string) string {
	prefix := "/" + strings.Trim(f.postsPath, "/")
	if prefix == "/" {
		prefix = ""
	}
	return fmt.Sprintf("%s%s/%s/index.html", f.baseURL, prefix, url.PathEscape(slug))
}

// Fetch returns the article HTML for slug. Any failure, including a
// non-2xx status, yields NotFoundHTML and false.
func (f *Fetcher) Fetch(ctx context.Context, slug string) (string, bool) {
	target := f.ArticleURL(slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		f.logger.Warn("invalid article request", "url", target, "error", err)
		return NotFoundHTML, false
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("article request failed", "url", target, "error", err)
		return NotFoundHTML, false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Info("article not available", "url", target, "status", resp.StatusCode)
		return NotFoundHTML, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxArticleSize))
	if err != nil {
		f.logger.Warn("reading article failed", "url", target, "error", err)
		return NotFoundHTML, false
	}
	return string(body), true
}

// Open fetches slug and loads it into v. A missing post still loads
// NotFoundHTML; the boolean reports whether the post was found.
func Open(ctx context.Context, f *Fetcher, v *Viewer, slug string) ([]Entry, bool, error) {
	content, found := f.Fetch(ctx, slug)
	toc, err := v.Load(content)
	return toc, found, err
}
