package browser

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-rod/rod"

	"github.com/bitsboot/md2blog/internal/viewer"
)

// DefaultContentSelector locates the region articles are injected into.
const DefaultContentSelector = ".post-main article"

// PageOption configures a Page.
type PageOption func(*Page)

// WithContentSelector overrides DefaultContentSelector.
func WithContentSelector(sel string) PageOption {
	return func(p *Page) {
		if sel != "" {
			p.selector = sel
		}
	}
}

// Page is a loaded tab seen through the viewer interfaces. Scroll events
// are raised by ScrollTo; a headless tab never scrolls on its own.
type Page struct {
	tab      *rod.Page
	selector string
	logger   *slog.Logger

	mu        sync.Mutex
	listeners map[int]func()
	nextID    int
}

func newPage(tab *rod.Page, logger *slog.Logger, opts ...PageOption) *Page {
	p := &Page{
		tab:       tab,
		selector:  DefaultContentSelector,
		logger:    logger,
		listeners: map[int]func(){},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Close closes the tab.
func (p *Page) Close() error {
	return p.tab.Close()
}

// SetContent replaces the content region's innerHTML. Scripts in html are
// not executed.
func (p *Page) SetContent(html string) error {
	_, err := p.tab.Eval(`(sel, html) => {
		const el = document.querySelector(sel);
		if (!el) throw new Error("no element matches " + sel);
		el.innerHTML = html;
	}`, p.selector, html)
	return scriptErr("set content", err)
}

// Headings returns the h2 and h3 elements of the content region.
func (p *Page) Headings() ([]viewer.Heading, error) {
	els, err := p.tab.Elements(p.selector + " h2, " + p.selector + " h3")
	if err != nil {
		return nil, scriptErr("query headings", err)
	}

	out := make([]viewer.Heading, 0, len(els))
	for _, el := range els {
		res, err := el.Eval(`() => [this.tagName, this.id, this.textContent]`)
		if err != nil {
			return nil, scriptErr("describe heading", err)
		}
		fields := res.Value.Arr()
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: unexpected heading description %v", ErrScript, res.Value)
		}
		level := 3
		if fields[0].Str() == "H2" {
			level = 2
		}
		out = append(out, &heading{
			el:     el,
			level:  level,
			id:     fields[1].Str(),
			text:   fields[2].Str(),
			logger: p.logger,
		})
	}
	return out, nil
}

// RenderTOC fills the page's .toc-list with links to entries.
func (p *Page) RenderTOC(entries []viewer.Entry) error {
	type item struct {
		ID    string `json:"id"`
		Text  string `json:"text"`
		Class string `json:"class"`
	}
	items := make([]item, 0, len(entries))
	for _, e := range entries {
		items = append(items, item{ID: e.ID, Text: e.Text, Class: viewer.TOCItemClass(e.Level)})
	}

	_, err := p.tab.Eval(`(items) => {
		const list = document.querySelector("#post-toc .toc-list");
		if (!list) throw new Error("no toc-list");
		list.replaceChildren();
		for (const it of items) {
			const li = document.createElement("li");
			li.className = it.class;
			const a = document.createElement("a");
			a.href = "#" + it.id;
			a.textContent = it.text;
			li.appendChild(a);
			list.appendChild(li);
		}
	}`, items)
	return scriptErr("render toc", err)
}

// MarkActive moves the active class to the link targeting id.
func (p *Page) MarkActive(id string) error {
	_, err := p.tab.Eval(`(id, cls) => {
		for (const a of document.querySelectorAll("#post-toc .toc-list a")) {
			a.classList.toggle(cls, a.getAttribute("href") === "#" + id);
		}
	}`, id, viewer.ActiveClass)
	return scriptErr("mark active", err)
}

// ScrollY returns window.scrollY.
func (p *Page) ScrollY() float64 {
	return p.num(`() => window.scrollY`)
}

// InnerHeight returns window.innerHeight.
func (p *Page) InnerHeight() float64 {
	return p.num(`() => window.innerHeight`)
}

// ContentBox returns the content region's absolute top and scroll height.
func (p *Page) ContentBox() (float64, float64) {
	res, err := p.tab.Eval(`(sel) => {
		const el = document.querySelector(sel);
		if (!el) return [0, 0];
		return [el.getBoundingClientRect().top + window.scrollY, el.scrollHeight];
	}`, p.selector)
	if err != nil {
		p.logger.Warn("reading content box failed", "error", err)
		return 0, 0
	}
	box := res.Value.Arr()
	if len(box) != 2 {
		return 0, 0
	}
	return box[0].Num(), box[1].Num()
}

// OnScroll registers fn, called after every ScrollTo.
func (p *Page) OnScroll(fn func()) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}

// ScrollTo scrolls the window to y and notifies scroll listeners.
func (p *Page) ScrollTo(y float64) error {
	if _, err := p.tab.Eval(`(y) => window.scrollTo(0, y)`, y); err != nil {
		return scriptErr("scroll", err)
	}

	p.mu.Lock()
	fns := make([]func(), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return nil
}

func (p *Page) num(js string) float64 {
	res, err := p.tab.Eval(js)
	if err != nil {
		p.logger.Warn("page script failed", "script", js, "error", err)
		return 0
	}
	return res.Value.Num()
}

type heading struct {
	el     *rod.Element
	level  int
	id     string
	text   string
	logger *slog.Logger
}

func (h *heading) Level() int   { return h.level }
func (h *heading) ID() string   { return h.id }
func (h *heading) Text() string { return h.text }

func (h *heading) SetID(id string) {
	if _, err := h.el.Eval(`(id) => { this.id = id; }`, id); err != nil {
		h.logger.Warn("setting heading id failed", "id", id, "error", err)
		return
	}
	h.id = id
}

func (h *heading) Top() float64 {
	return h.rect(`() => this.getBoundingClientRect().top + window.scrollY`)
}

func (h *heading) Height() float64 {
	return h.rect(`() => this.getBoundingClientRect().height`)
}

func (h *heading) rect(js string) float64 {
	res, err := h.el.Eval(js)
	if err != nil {
		h.logger.Warn("reading heading geometry failed", "id", h.id, "error", err)
		return 0
	}
	return res.Value.Num()
}

func scriptErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrScript, op, err)
}

var (
	_ viewer.Document = (*Page)(nil)
	_ viewer.Viewport = (*Page)(nil)
	_ viewer.NavPanel = (*Page)(nil)
	_ viewer.Scroller = (*Page)(nil)
)
