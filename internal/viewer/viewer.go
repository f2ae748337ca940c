// Package viewer tracks a reader's position in a rendered post: the table
// of contents built from its h2/h3 headings, the reading progress through
// the content region and the heading currently being read.
//
// The DOM is reached through small interfaces so the same logic drives a
// headless browser page (internal/browser) and a static HTML tree
// (HTMLDocument).
package viewer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/bitsboot/md2blog/internal/anchor"
)

// Sentinel errors for viewer operations.
var (
	ErrClosed        = errors.New("viewer is closed")
	ErrContentLoad   = errors.New("failed to load post content")
	ErrUnknownAnchor = errors.New("no heading with that id")
)

// State is a snapshot of what the viewer shows.
type State struct {
	TOC      []Entry
	Progress int
	ActiveID string
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithLogger sets the logger for non-fatal DOM errors.
func WithLogger(l *slog.Logger) Option {
	return func(v *Viewer) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithOnChange registers fn to receive the state after every update that
// changed the progress or the active heading. fn runs without the viewer
// lock held.
func WithOnChange(fn func(State)) Option {
	return func(v *Viewer) { v.onChange = fn }
}

// Viewer holds the per-post reading state. It is safe for concurrent use.
type Viewer struct {
	doc    Document
	vp     Viewport
	logger *slog.Logger

	onChange func(State)

	mu           sync.Mutex
	headings     []Heading
	toc          []Entry
	intersecting []bool
	progress     int
	active       string
	unsubscribe  func()
	generation   int
	closed       bool
}

// New creates a Viewer over doc inside vp.
func New(doc Document, vp Viewport, opts ...Option) *Viewer {
	v := &Viewer{
		doc:    doc,
		vp:     vp,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Load injects html into the document, builds the table of contents and
// starts following scroll events. Listeners from a previous Load are
// removed first.
func (v *Viewer) Load(html string) ([]Entry, error) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil, ErrClosed
	}
	v.detachLocked()
	v.headings, v.toc, v.intersecting = nil, nil, nil
	v.active, v.progress = "", 0

	if err := v.doc.SetContent(html); err != nil {
		v.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrContentLoad, err)
	}
	headings, err := v.doc.Headings()
	if err != nil {
		v.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrContentLoad, err)
	}

	v.headings = headings
	v.toc = BuildTOC(headings)
	v.intersecting = make([]bool, len(headings))
	if nav, ok := v.doc.(NavPanel); ok {
		if err := nav.RenderTOC(v.toc); err != nil {
			v.logger.Warn("failed to render table of contents", "error", err)
		}
	}

	v.generation++
	gen := v.generation
	v.unsubscribe = v.vp.OnScroll(func() { v.handleScroll(gen) })

	v.updateLocked()
	state := v.stateLocked()
	v.mu.Unlock()

	v.notify(state)
	return state.TOC, nil
}

// Refresh recomputes progress and the active heading from the current
// viewport, as a scroll event would.
func (v *Viewer) Refresh() {
	v.mu.Lock()
	v.handleLocked(v.generation)
}

// State returns the current snapshot.
func (v *Viewer) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stateLocked()
}

// TOC returns the table of contents of the loaded post.
func (v *Viewer) TOC() []Entry {
	return v.State().TOC
}

// Progress returns the reading progress, 0-100.
func (v *Viewer) Progress() int {
	return v.State().Progress
}

// ActiveID returns the id of the heading being read, or "".
func (v *Viewer) ActiveID() string {
	return v.State().ActiveID
}

// Jump scrolls to the heading with id and marks it active, as clicking a
// table-of-contents link does. Viewports that cannot scroll only get the
// active mark.
func (v *Viewer) Jump(id string) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	idx := v.indexOfLocked(id)
	if idx < 0 {
		v.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownAnchor, id)
	}
	target := v.headings[idx].Top()
	v.setActiveLocked(id)
	state := v.stateLocked()
	v.mu.Unlock()

	v.notify(state)
	if s, ok := v.vp.(Scroller); ok {
		return s.ScrollTo(target)
	}
	return nil
}

// Close stops following scroll events. It is safe to call more than once.
func (v *Viewer) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	v.detachLocked()
}

// BuildTOC returns one entry per heading, assigning ids to headings that
// have none. Headings are numbered from 1 for fallback ids.
func BuildTOC(headings []Heading) []Entry {
	entries := make([]Entry, 0, len(headings))
	for i, h := range headings {
		text := strings.TrimSpace(h.Text())
		id := h.ID()
		if id == "" {
			id = anchor.ForHeading(text, i+1)
			h.SetID(id)
		}
		if text == "" {
			text = id
		}
		level := 3
		if h.Level() == 2 {
			level = 2
		}
		entries = append(entries, Entry{ID: id, Text: text, Level: level})
	}
	return entries
}

func (v *Viewer) handleScroll(gen int) {
	v.mu.Lock()
	v.handleLocked(gen)
}

// handleLocked expects v.mu held and releases it.
func (v *Viewer) handleLocked(gen int) {
	if v.closed || gen != v.generation || v.unsubscribe == nil {
		v.mu.Unlock()
		return
	}
	before := v.stateLocked()
	v.updateLocked()
	after := v.stateLocked()
	v.mu.Unlock()

	if before.Progress != after.Progress || before.ActiveID != after.ActiveID {
		v.notify(after)
	}
}

// updateLocked recomputes progress and applies intersection changes.
// Among headings that entered the active zone in this update, the last
// one in document order wins. Headings leaving the zone never clear it.
func (v *Viewer) updateLocked() {
	y := v.vp.ScrollY()
	innerHeight := v.vp.InnerHeight()
	top, height := v.vp.ContentBox()
	v.progress = Progress(y, innerHeight, top, height)

	entered := ""
	for i, h := range v.headings {
		now := inActiveZone(h.Top(), h.Height(), y, innerHeight)
		if now && !v.intersecting[i] {
			entered = v.toc[i].ID
		}
		v.intersecting[i] = now
	}
	if entered != "" {
		v.setActiveLocked(entered)
	}
}

func (v *Viewer) setActiveLocked(id string) {
	if id == v.active {
		return
	}
	v.active = id
	if nav, ok := v.doc.(NavPanel); ok {
		if err := nav.MarkActive(id); err != nil {
			v.logger.Warn("failed to mark active heading", "id", id, "error", err)
		}
	}
}

func (v *Viewer) indexOfLocked(id string) int {
	for i, e := range v.toc {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (v *Viewer) detachLocked() {
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
}

func (v *Viewer) stateLocked() State {
	return State{
		TOC:      append([]Entry(nil), v.toc...),
		Progress: v.progress,
		ActiveID: v.active,
	}
}

func (v *Viewer) notify(s State) {
	if v.onChange != nil {
		v.onChange(s)
	}
}
