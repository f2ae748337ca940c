package viewer

import (
	"errors"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoTOCList indicates the document has no <ul class="toc-list">.
var ErrNoTOCList = errors.New("document has no toc-list element")

// ActiveClass marks the table-of-contents link of the active heading.
const ActiveClass = "active"

// TOCItemClass is the class of a table-of-contents <li>: "toc-h2" for
// level 2, "toc-h3" otherwise.
func TOCItemClass(level int) string {
	if level == 2 {
		return "toc-h2"
	}
	return "toc-h3"
}

// HTMLDocument is a Document over a parsed HTML tree. It has no layout, so
// every heading reports zero geometry; it serves table-of-contents work on
// rendered files and tests.
type HTMLDocument struct {
	root   *html.Node
	region *html.Node
}

// NewHTMLDocument parses page. The content region is the first <article>
// element, or <body> when there is none.
func NewHTMLDocument(page string) (*HTMLDocument, error) {
	root, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, err
	}
	region := findFirst(root, func(n *html.Node) bool { return n.DataAtom == atom.Article })
	if region == nil {
		region = findFirst(root, func(n *html.Node) bool { return n.DataAtom == atom.Body })
	}
	return &HTMLDocument{root: root, region: region}, nil
}

// SetContent replaces the content region's children with content.
func (d *HTMLDocument) SetContent(content string) error {
	nodes, err := html.ParseFragment(strings.NewReader(content), d.region)
	if err != nil {
		return err
	}
	for c := d.region.FirstChild; c != nil; {
		next := c.NextSibling
		d.region.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		d.region.AppendChild(n)
	}
	return nil
}

// Headings returns the h2 and h3 elements of the content region.
func (d *HTMLDocument) Headings() ([]Heading, error) {
	var out []Heading
	walk(d.region, func(n *html.Node) {
		if n.DataAtom == atom.H2 || n.DataAtom == atom.H3 {
			out = append(out, &htmlHeading{n: n})
		}
	})
	return out, nil
}

// RenderTOC fills the toc-list with one <li class="toc-hN"><a href="#id">
// per entry.
func (d *HTMLDocument) RenderTOC(entries []Entry) error {
	list := d.tocList()
	if list == nil {
		return ErrNoTOCList
	}
	for c := list.FirstChild; c != nil; {
		next := c.NextSibling
		list.RemoveChild(c)
		c = next
	}
	for _, e := range entries {
		a := &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.A,
			Data:     "a",
			Attr:     []html.Attribute{{Key: "href", Val: "#" + e.ID}},
		}
		a.AppendChild(&html.Node{Type: html.TextNode, Data: e.Text})
		li := &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Li,
			Data:     "li",
			Attr:     []html.Attribute{{Key: "class", Val: TOCItemClass(e.Level)}},
		}
		li.AppendChild(a)
		list.AppendChild(li)
	}
	return nil
}

// MarkActive moves the active class to the link targeting id.
func (d *HTMLDocument) MarkActive(id string) error {
	list := d.tocList()
	if list == nil {
		return ErrNoTOCList
	}
	walk(list, func(n *html.Node) {
		if n.DataAtom != atom.A {
			return
		}
		setClass(n, ActiveClass, attr(n, "href") == "#"+id)
	})
	return nil
}

// Render writes the whole document.
func (d *HTMLDocument) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (d *HTMLDocument) tocList() *html.Node {
	return findFirst(d.root, func(n *html.Node) bool {
		return n.DataAtom == atom.Ul && hasClass(n, "toc-list")
	})
}

type htmlHeading struct {
	n *html.Node
}

func (h *htmlHeading) Level() int {
	if h.n.DataAtom == atom.H2 {
		return 2
	}
	return 3
}

func (h *htmlHeading) ID() string      { return attr(h.n, "id") }
func (h *htmlHeading) SetID(id string) { setAttr(h.n, "id", id) }
func (h *htmlHeading) Top() float64    { return 0 }
func (h *htmlHeading) Height() float64 { return 0 }

func (h *htmlHeading) Text() string {
	var b strings.Builder
	walk(h.n, func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	})
	return b.String()
}

func walk(n *html.Node, visit func(*html.Node)) {
	if n == nil {
		return
	}
	if n.Type == html.ElementNode || n.Type == html.TextNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(attr(n, "class")), class)
}

func setClass(n *html.Node, class string, on bool) {
	classes := slices.DeleteFunc(strings.Fields(attr(n, "class")), func(c string) bool { return c == class })
	if on {
		classes = append(classes, class)
	}
	if len(classes) == 0 {
		n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool { return a.Key == "class" })
		return
	}
	setAttr(n, "class", strings.Join(classes, " "))
}

var (
	_ Document = (*HTMLDocument)(nil)
	_ NavPanel = (*HTMLDocument)(nil)
)
