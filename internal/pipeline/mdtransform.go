package pipeline

import (
	"context"
	"strings"
)

// MarkdownPreprocessor cleans an article body before conversion.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// newlines folds CRLF and lone CR into LF. CRLF is listed first so it is
// never split into two line breaks.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// CommonMarkPreprocessor strips a leading BOM and normalizes line endings.
// Blank lines stay: fenced code depends on them.
type CommonMarkPreprocessor struct{}

func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	return newlines.Replace(strings.TrimPrefix(content, "\uFEFF"))
}
