package viewer_test

import (
	"errors"
	"sync"

	"github.com/bitsboot/md2blog/internal/viewer"
)

type fakeHeading struct {
	level  int
	id     string
	text   string
	top    float64
	height float64
}

func (h *fakeHeading) Level() int      { return h.level }
func (h *fakeHeading) ID() string      { return h.id }
func (h *fakeHeading) SetID(id string) { h.id = id }
func (h *fakeHeading) Text() string    { return h.text }
func (h *fakeHeading) Top() float64    { return h.top }
func (h *fakeHeading) Height() float64 { return h.height }

// fakeDocument maps content strings to prepared heading sets.
type fakeDocument struct {
	pages    map[string][]*fakeHeading
	content  string
	setErr   error
	rendered [][]viewer.Entry
	marked   []string
}

func (d *fakeDocument) SetContent(html string) error {
	if d.setErr != nil {
		return d.setErr
	}
	d.content = html
	return nil
}

func (d *fakeDocument) Headings() ([]viewer.Heading, error) {
	var out []viewer.Heading
	for _, h := range d.pages[d.content] {
		out = append(out, h)
	}
	return out, nil
}

func (d *fakeDocument) RenderTOC(entries []viewer.Entry) error {
	d.rendered = append(d.rendered, entries)
	return nil
}

func (d *fakeDocument) MarkActive(id string) error {
	d.marked = append(d.marked, id)
	return nil
}

// fakeViewport is a window of innerHeight over a content region starting
// at contentTop.
type fakeViewport struct {
	mu          sync.Mutex
	scrollY     float64
	innerHeight float64
	contentTop  float64
	contentH    float64
	listeners   map[int]func()
	nextID      int
}

func newViewport(innerHeight, contentTop, contentH float64) *fakeViewport {
	return &fakeViewport{
		innerHeight: innerHeight,
		contentTop:  contentTop,
		contentH:    contentH,
		listeners:   map[int]func(){},
	}
}

func (v *fakeViewport) ScrollY() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scrollY
}

func (v *fakeViewport) InnerHeight() float64 { return v.innerHeight }

func (v *fakeViewport) ContentBox() (float64, float64) { return v.contentTop, v.contentH }

func (v *fakeViewport) OnScroll(fn func()) func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.listeners, id)
	}
}

func (v *fakeViewport) ScrollTo(y float64) error {
	v.mu.Lock()
	v.scrollY = y
	fns := make([]func(), 0, len(v.listeners))
	for _, fn := range v.listeners {
		fns = append(fns, fn)
	}
	v.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
	return nil
}

func (v *fakeViewport) listenerCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.listeners)
}

var errBoom = errors.New("boom")
