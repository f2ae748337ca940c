package viewer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitsboot/md2blog/internal/viewer"
)

// newScenario returns a 1000px window over a 3000px post with three headings.
func newScenario() (*fakeDocument, *fakeViewport) {
	doc := &fakeDocument{pages: map[string][]*fakeHeading{
		"post": {
			{level: 2, text: " Intro ", top: 100, height: 30},
			{level: 3, text: "", top: 900, height: 30},
			{level: 2, id: "custom", text: "Setup", top: 2000, height: 30},
		},
		"other": {
			{level: 2, text: "Only", top: 100, height: 30},
		},
	}}
	return doc, newViewport(1000, 0, 3000)
}

func TestLoad_BuildsTOC(t *testing.T) {
	t.Parallel()

	doc, vp := newScenario()
	v := viewer.New(doc, vp)
	defer v.Close()

	toc, err := v.Load("post")
	require.NoError(t, err)

	want := []viewer.Entry{
		{ID: "intro", Text: "Intro", Level: 2},
		{ID: "heading-2", Text: "heading-2", Level: 3},
		{ID: "custom", Text: "Setup", Level: 2},
	}
	assert.Equal(t, want, toc)
	assert.Equal(t, "intro", doc.pages["post"][0].id, "missing id assigned to heading")
	require.Len(t, doc.rendered, 1)
	assert.Equal(t, want, doc.rendered[0])
}

func TestScroll_ProgressAndActive(t *testing.T) {
	t.Parallel()

	doc, vp := newScenario()
	v := viewer.New(doc, vp)
	defer v.Close()

	_, err := v.Load("post")
	require.NoError(t, err)
	assert.Equal(t, 0, v.Progress())
	assert.Equal(t, "intro", v.ActiveID())

	steps := []struct {
		y            float64
		wantProgress int
		wantActive   string
	}{
		{y: 700, wantProgress: 35, wantActive: "heading-2"},
		{y: 1000, wantProgress: 50, wantActive: "heading-2"}, // leaving keeps it
		{y: 1800, wantProgress: 90, wantActive: "custom"},
		{y: 2500, wantProgress: 100, wantActive: "custom"},
	}
	for _, s := range steps {
		require.NoError(t, vp.ScrollTo(s.y))
		assert.Equal(t, s.wantProgress, v.Progress(), "progress at y=%v", s.y)
		assert.Equal(t, s.wantActive, v.ActiveID(), "active at y=%v", s.y)
	}
	assert.Equal(t, []string{"intro", "heading-2", "custom"}, doc.marked)
}

func TestScroll_LastEnteringHeadingWins(t *testing.T) {
	t.Parallel()

	doc := &fakeDocument{pages: map[string][]*fakeHeading{
		"post": {
			{level: 2, id: "a", text: "A", top: 100, height: 20},
			{level: 2, id: "b", text: "B", top: 300, height: 20},
			{level: 2, id: "c", text: "C", top: 3000, height: 20},
		},
	}}
	v := viewer.New(doc, newViewport(1000, 0, 4000))
	defer v.Close()

	_, err := v.Load("post")
	require.NoError(t, err)
	assert.Equal(t, "b", v.ActiveID())
}

func TestLoad_ReplacesListener(t *testing.T) {
	t.Parallel()

	doc, vp := newScenario()
	v := viewer.New(doc, vp)

	_, err := v.Load("post")
	require.NoError(t, err)
	toc, err := v.Load("other")
	require.NoError(t, err)

	assert.Equal(t, 1, vp.listenerCount())
	assert.Equal(t, []viewer.Entry{{ID: "only", Text: "Only", Level: 2}}, toc)
	assert.Equal(t, "only", v.ActiveID())

	v.Close()
	v.Close()
	assert.Equal(t, 0, vp.listenerCount())

	_, err = v.Load("post")
	require.ErrorIs(t, err, viewer.ErrClosed)
}

func TestLoad_ContentError(t *testing.T) {
	t.Parallel()

	doc, vp := newScenario()
	doc.setErr = errBoom
	v := viewer.New(doc, vp)

	_, err := v.Load("post")
	require.ErrorIs(t, err, viewer.ErrContentLoad)
	assert.Equal(t, 0, vp.listenerCount())
}

func TestOnChange(t *testing.T) {
	t.Parallel()

	doc, vp := newScenario()
	var states []viewer.State
	v := viewer.New(doc, vp, viewer.WithOnChange(func(s viewer.State) {
		states = append(states, s)
	}))
	defer v.Close()

	_, err := v.Load("post")
	require.NoError(t, err)
	require.NoError(t, vp.ScrollTo(700))
	require.NoError(t, vp.ScrollTo(700)) // no change, no callback

	require.Len(t, states, 2)
	assert.Equal(t, "intro", states[0].ActiveID)
	assert.Equal(t, 35, states[1].Progress)
	assert.Equal(t, "heading-2", states[1].ActiveID)
}

func TestJump(t *testing.T) {
	t.Parallel()

	doc, vp := newScenario()
	v := viewer.New(doc, vp)
	defer v.Close()

	_, err := v.Load("post")
	require.NoError(t, err)

	require.NoError(t, v.Jump("custom"))
	assert.Equal(t, "custom", v.ActiveID())
	assert.Equal(t, float64(2000), vp.ScrollY())

	require.ErrorIs(t, v.Jump("missing"), viewer.ErrUnknownAnchor)
}

func TestHTMLDocument(t *testing.T) {
	t.Parallel()

	page := `<!DOCTYPE html><html><head><title>x</title></head><body>
<aside id="post-toc"><ul class="toc-list"></ul></aside>
<main class="post-main"><article><h1>Title</h1></article></main>
</body></html>`

	doc, err := viewer.NewHTMLDocument(page)
	require.NoError(t, err)

	v := viewer.New(doc, newViewport(1000, 0, 0))
	defer v.Close()

	toc, err := v.Load(`<h2>Boot Stages!!</h2><p>text</p><h3 id="x">Kernel</h3><h2></h2>`)
	require.NoError(t, err)
	assert.Equal(t, []viewer.Entry{
		{ID: "boot-stages", Text: "Boot Stages!!", Level: 2},
		{ID: "x", Text: "Kernel", Level: 3},
		{ID: "heading-3", Text: "heading-3", Level: 2},
	}, toc)

	var out strings.Builder
	require.NoError(t, doc.Render(&out))
	got := out.String()
	assert.Contains(t, got, `<h2 id="boot-stages">Boot Stages!!</h2>`)
	assert.Contains(t, got, `<li class="toc-h2"><a href="#boot-stages">Boot Stages!!</a></li>`)
	assert.Contains(t, got, `<li class="toc-h3"><a href="#x">Kernel</a></li>`)
	assert.Contains(t, got, `<li class="toc-h2"><a href="#heading-3" class="active">heading-3</a></li>`)
	assert.NotContains(t, got, "data-level")
	assert.NotContains(t, got, "<h1>Title</h1>", "article content replaced")
}

func TestHTMLDocument_NoTOCList(t *testing.T) {
	t.Parallel()

	doc, err := viewer.NewHTMLDocument("<p>plain</p>")
	require.NoError(t, err)
	require.ErrorIs(t, doc.RenderTOC(nil), viewer.ErrNoTOCList)
	require.ErrorIs(t, doc.MarkActive("x"), viewer.ErrNoTOCList)
}
