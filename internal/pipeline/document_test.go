package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bitsboot/md2blog/internal/assets"
)

func newTestAssembler(t *testing.T, opts ...AssemblerOption) *DocumentAssembler {
	t.Helper()
	tmpl, err := assets.NewEmbeddedLoader().LoadTemplate(assets.ArticleTemplateName)
	if err != nil {
		t.Fatalf("loading template: %v", err)
	}
	a, err := NewDocumentAssembler(tmpl, "body{margin:0}", opts...)
	if err != nil {
		t.Fatalf("NewDocumentAssembler() error: %v", err)
	}
	return a
}

func TestDocumentAssembler_Assemble(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t)
	got, err := a.Assemble(context.Background(), DocumentData{
		Title:   "Boot Stages",
		Date:    "2025-02-01",
		Author:  "Ada",
		Content: `<h2 id="bios">BIOS</h2>`,
	})
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}

	for _, want := range []string{
		"<title>Boot Stages</title>",
		"<style>body{margin:0}</style>",
		`document.getElementById("root")`,
		"encodeURIComponent(window.location.pathname)",
		`<aside id="post-toc" class="post-toc">`,
		`<ul class="toc-list"></ul>`,
		"<h1>Boot Stages</h1>",
		"<p><i>2025-02-01 — Ada</i></p>",
		`<h2 id="bios">BIOS</h2>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestDocumentAssembler_EmptyFields(t *testing.T) {
	t.Parallel()

	got, err := newTestAssembler(t).Assemble(context.Background(), DocumentData{})
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	for _, want := range []string{"<title></title>", "<h1></h1>", "<p><i> — </i></p>"} {
		if !strings.Contains(got, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestDocumentAssembler_EscapesMetadata(t *testing.T) {
	t.Parallel()

	got, err := newTestAssembler(t).Assemble(context.Background(), DocumentData{
		Title: "<script>x</script>",
	})
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	if strings.Contains(got, "<h1><script>") {
		t.Error("title was not escaped")
	}
	if !strings.Contains(got, "<h1>&lt;script&gt;x&lt;/script&gt;</h1>") {
		t.Error("escaped title not found in heading")
	}
}

func TestDocumentAssembler_Options(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t, WithAppRootID("app"), WithTitleSuffix(" | bitsboot"))
	got, err := a.Assemble(context.Background(), DocumentData{Title: "T"})
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	if !strings.Contains(got, `document.getElementById("app")`) {
		t.Error("custom app root id not used")
	}
	if !strings.Contains(got, "<title>T | bitsboot</title>") {
		t.Error("title suffix not applied")
	}
}

func TestDocumentAssembler_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewDocumentAssembler("{{.Broken", ""); !errors.Is(err, ErrTemplateParse) {
		t.Errorf("NewDocumentAssembler() error = %v, want ErrTemplateParse", err)
	}

	a, err := NewDocumentAssembler("{{.Missing}}", "")
	if err != nil {
		t.Fatalf("NewDocumentAssembler() error: %v", err)
	}
	if _, err := a.Assemble(context.Background(), DocumentData{}); !errors.Is(err, ErrTemplateRender) {
		t.Errorf("Assemble() error = %v, want ErrTemplateRender", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := a.Assemble(ctx, DocumentData{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Assemble() error = %v, want context.Canceled", err)
	}
}

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	got := sanitizeCSS("a{}</style><script>")
	if strings.Contains(got, "</style>") {
		t.Errorf("sanitizeCSS() = %q, closing tag not escaped", got)
	}
}
