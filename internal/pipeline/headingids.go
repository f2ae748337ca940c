package pipeline

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/bitsboot/md2blog/internal/anchor"
)

// headingIDTransformer gives every heading without an explicit {#id} the
// id the post viewer would derive. The fallback position counts h2 and h3
// only, as the viewer's table of contents does; other levels get a plain
// slug or no id. Repeated ids are not disambiguated.
type headingIDTransformer struct{}

func (headingIDTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	position := 0
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		inTOC := h.Level == 2 || h.Level == 3
		if inTOC {
			position++
		}
		if _, explicit := h.AttributeString("id"); explicit {
			return ast.WalkSkipChildren, nil
		}

		label := headingText(h, source)
		id := anchor.Slugify(label)
		if inTOC {
			id = anchor.ForHeading(label, position)
		}
		if id != "" {
			h.SetAttributeString("id", []byte(id))
		}
		return ast.WalkSkipChildren, nil
	})
}

// headingText is the heading's visible text, the same string a browser
// reports as textContent.
func headingText(h *ast.Heading, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(h, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

var _ parser.ASTTransformer = headingIDTransformer{}
