package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Sentinel errors for document assembly.
var (
	ErrTemplateParse  = errors.New("article template parsing failed")
	ErrTemplateRender = errors.New("article template rendering failed")
)

// DefaultAppRootID is the id of the app shell's mount element. A document
// that finds it is running inside the shell and does not redirect.
const DefaultAppRootID = "root"

// DocumentData is the per-article input of the article template.
// Missing values render as empty strings.
type DocumentData struct {
	Title   string
	Date    string
	Author  string
	Content string // converted Markdown, trusted
}

// DocumentAssembler wraps converted fragments in the article template.
type DocumentAssembler struct {
	tmpl        *template.Template
	css         template.CSS
	appRootID   string
	titleSuffix string
}

// AssemblerOption configures a DocumentAssembler.
type AssemblerOption func(*DocumentAssembler)

// WithAppRootID overrides the app shell mount id checked by the redirect script.
func WithAppRootID(id string) AssemblerOption {
	return func(a *DocumentAssembler) {
		if id != "" {
			a.appRootID = id
		}
	}
}

// WithTitleSuffix appends suffix to the <title> (e.g. " | bitsboot").
func WithTitleSuffix(suffix string) AssemblerOption {
	return func(a *DocumentAssembler) { a.titleSuffix = suffix }
}

// NewDocumentAssembler parses tmplContent and prepares css for inlining.
func NewDocumentAssembler(tmplContent, css string, opts ...AssemblerOption) (*DocumentAssembler, error) {
	tmpl, err := template.New("article").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	a := &DocumentAssembler{
		tmpl:      tmpl,
		css:       template.CSS(sanitizeCSS(css)), // #nosec G203 -- stylesheet comes from the asset loader
		appRootID: DefaultAppRootID,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

type templateData struct {
	Title       string
	TitleSuffix string
	Date        string
	Author      string
	AppRootID   string
	CSS         template.CSS
	Content     template.HTML
}

// Assemble renders one complete article document.
func (a *DocumentAssembler) Assemble(ctx context.Context, data DocumentData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err := a.tmpl.Execute(&buf, templateData{
		Title:       data.Title,
		TitleSuffix: a.titleSuffix,
		Date:        data.Date,
		Author:      data.Author,
		AppRootID:   a.appRootID,
		CSS:         a.css,
		Content:     template.HTML(data.Content), // #nosec G203 -- produced by the Markdown converter
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}

// sanitizeCSS escapes sequences that could close the <style> element early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
