package viewer

// Entry is one table-of-contents line.
type Entry struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"` // 2 or 3
}

// Heading is an h2 or h3 element of the loaded document.
// Top is the absolute document offset of the element's box.
type Heading interface {
	Level() int
	ID() string
	SetID(id string)
	Text() string
	Top() float64
	Height() float64
}

// Document is the content region the viewer injects articles into.
type Document interface {
	// SetContent replaces the region's content with html.
	SetContent(html string) error
	// Headings returns the h2 and h3 elements in document order.
	Headings() ([]Heading, error)
}

// NavPanel is implemented by documents that carry the article's own
// navigation list (<aside id="post-toc"> ... <ul class="toc-list">).
type NavPanel interface {
	RenderTOC(entries []Entry) error
	MarkActive(id string) error
}

// Viewport is the scrolling window around the document.
type Viewport interface {
	ScrollY() float64
	InnerHeight() float64
	// ContentBox returns the absolute top and the scroll height of the
	// content region.
	ContentBox() (top, scrollHeight float64)
	// OnScroll registers fn for scroll events and returns a function that
	// removes it. fn must not be called synchronously from OnScroll.
	OnScroll(fn func()) (unsubscribe func())
}

// Scroller is implemented by viewports that can scroll programmatically.
type Scroller interface {
	ScrollTo(y float64) error
}
