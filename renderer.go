package md2blog

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sync"

	"github.com/bitsboot/md2blog/internal/assets"
	"github.com/bitsboot/md2blog/internal/fileutil"
	"github.com/bitsboot/md2blog/internal/pipeline"
)

// ArticleFileName is the document written inside each slug directory.
const ArticleFileName = "index.html"

// Renderer converts articles into standalone HTML documents.
type Renderer struct {
	cfg          config
	preprocessor pipeline.MarkdownPreprocessor
	converter    pipeline.HTMLConverter
	assembler    *pipeline.DocumentAssembler
}

// NewRenderer loads the stylesheet and article template and prepares the
// conversion pipeline.
func NewRenderer(opts ...Option) (*Renderer, error) {
	cfg := newConfig(opts)

	loader := cfg.loader
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}

	css, err := loader.LoadStyle(cfg.style)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	tmpl, err := loader.LoadTemplate(assets.ArticleTemplateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}

	assembler, err := pipeline.NewDocumentAssembler(tmpl, css,
		pipeline.WithAppRootID(cfg.appRootID),
		pipeline.WithTitleSuffix(cfg.titleSuffix),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}

	return &Renderer{
		cfg:          cfg,
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		converter:    pipeline.NewGoldmarkConverter(pipeline.WithRawHTML(cfg.rawHTML)),
		assembler:    assembler,
	}, nil
}

// OutputPath returns <outputRoot>/<slug>/index.html.
func OutputPath(outputRoot, slug string) string {
	return filepath.Join(outputRoot, slug, ArticleFileName)
}

// RenderAll writes one document per article of contentDir under outputRoot.
// Every article is parsed and slug-checked before the first write. The
// first render or write failure cancels the remaining work and is returned.
func (r *Renderer) RenderAll(ctx context.Context, contentDir, outputRoot string) ([]RenderResult, error) {
	articles, err := loadArticles(ctx, contentDir, r.cfg.logger)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return []RenderResult{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	concurrency := min(ResolvePoolSize(r.cfg.workers), len(articles))

	results := make([]RenderResult, len(articles))
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	jobs := make(chan int, len(articles))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					continue
				}
				res, err := r.renderArticle(ctx, articles[idx], outputRoot)
				if err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					continue
				}
				results[idx] = res
			}
		}()
	}

	for i := range articles {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.cfg.logger.Info("rendered articles", "root", outputRoot, "count", len(results), "workers", concurrency)
	return results, nil
}

func (r *Renderer) renderArticle(ctx context.Context, a article, outputRoot string) (RenderResult, error) {
	doc, err := r.Document(ctx, a.meta.Title, a.meta.Date, a.meta.Author, a.slug, string(a.body))
	if err != nil {
		return RenderResult{}, fmt.Errorf("%s: %w", a.path, err)
	}

	out := OutputPath(outputRoot, a.slug)
	if err := fileutil.WriteFileAtomic(out, []byte(doc), filePermissions, dirPermissions); err != nil {
		return RenderResult{}, fmt.Errorf("%w: %s: %v", ErrWriteArticle, out, err)
	}

	r.cfg.logger.Debug("rendered article", "file", a.file, "slug", a.slug, "path", out)
	return RenderResult{Slug: a.slug, SourceFile: a.file, OutputPath: out}, nil
}

// Document renders a Markdown body into a complete article document.
// title, date and author are interpolated as given; empty values stay empty.
func (r *Renderer) Document(ctx context.Context, title, date, author, slug, body string) (string, error) {
	md := r.preprocessor.PreprocessMarkdown(ctx, body)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fragment, err := r.converter.ToHTML(ctx, md)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	if r.cfg.postsPath != "" {
		base := path.Join("/", r.cfg.postsPath, slug) + "/"
		fragment, err = pipeline.RewriteRelativeURLs(fragment, base)
		if err != nil {
			return "", fmt.Errorf("%w: rewriting URLs: %v", ErrHTMLConversion, err)
		}
	}

	return r.assembler.Assemble(ctx, pipeline.DocumentData{
		Title:   title,
		Date:    date,
		Author:  author,
		Content: fragment,
	})
}
