package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion wraps goldmark failures.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter turns an article body into an HTML fragment.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// ConverterOption configures NewGoldmarkConverter.
type ConverterOption func(*GoldmarkConverter)

// WithRawHTML lets inline HTML such as <details> or <kbd> through.
// It is on unless disabled.
func WithRawHTML(enabled bool) ConverterOption {
	return func(c *GoldmarkConverter) { c.rawHTML = enabled }
}

// GoldmarkConverter renders GFM with footnotes, {#id} heading attributes
// and chroma highlighting emitted as CSS classes for post.css.
type GoldmarkConverter struct {
	rawHTML bool
	md      goldmark.Markdown
}

// NewGoldmarkConverter builds a converter with raw HTML enabled unless an
// option turns it off.
func NewGoldmarkConverter(opts ...ConverterOption) *GoldmarkConverter {
	c := &GoldmarkConverter{rawHTML: true}
	for _, opt := range opts {
		opt(c)
	}

	var rendererOpts []renderer.Option
	if c.rawHTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}
	highlighter := highlighting.NewHighlighting(
		highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
	)

	c.md = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote, highlighter),
		goldmark.WithParserOptions(
			parser.WithAttribute(),
			parser.WithASTTransformers(util.Prioritized(headingIDTransformer{}, 100)),
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return c
}

// convert runs goldmark once over content.
func (c *GoldmarkConverter) convert(content string) (string, error) {
	var out bytes.Buffer
	if err := c.md.Convert([]byte(content), &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return out.String(), nil
}

// ToHTML converts content, giving up as soon as ctx is done. goldmark
// itself cannot be interrupted, so an abandoned conversion finishes in the
// background and is dropped.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type outcome struct {
		html string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		out, err := c.convert(content)
		done <- outcome{out, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case o := <-done:
		return o.html, o.err
	}
}

var _ HTMLConverter = (*GoldmarkConverter)(nil)
