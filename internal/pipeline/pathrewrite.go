package pipeline

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rewriteTargets lists the URL-bearing attribute of each element rewritten.
var rewriteTargets = map[atom.Atom]string{
	atom.Img:    "src",
	atom.A:      "href",
	atom.Source: "src",
	atom.Video:  "src",
	atom.Audio:  "src",
}

// RewriteRelativeURLs roots relative image, media and link URLs in an HTML
// fragment at base (e.g. "/posts/boot-stages/").
//
// A rendered document is opened both at its own URL and injected into the
// app shell under a different path; rooting its relative references makes
// both resolve the same files. An empty base returns the fragment unchanged.
//
// Not rewritten: anchors, absolute paths, URLs with a scheme, protocol
// relative URLs, srcset and CSS url() references.
func RewriteRelativeURLs(fragment, base string) (string, error) {
	if base == "" {
		return fragment, nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}

	root, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}
	rewriteNode(root, baseURL)
	return renderFragment(root)
}

func parseFragment(content string) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

func renderFragment(root *html.Node) (string, error) {
	var buf strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node, base *url.URL) {
	if n.Type == html.ElementNode {
		if attrName, ok := rewriteTargets[n.DataAtom]; ok {
			rewriteAttr(n, attrName, base)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, base)
	}
}

func rewriteAttr(n *html.Node, attrName string, base *url.URL) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativeURL(attr.Val) {
			continue
		}
		ref, err := url.Parse(attr.Val)
		if err != nil {
			continue
		}
		n.Attr[i].Val = base.ResolveReference(ref).String()
	}
}

// isRelativeURL reports whether a reference depends on the page it is
// rendered in.
func isRelativeURL(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "/") {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}
