package md2blog

import (
	"context"
	"fmt"
	"time"
)

// Service runs a full build: index first, then every article document.
type Service struct {
	cfg      config
	indexer  *Indexer
	renderer *Renderer
}

// New creates a Service. It fails when the configured assets cannot be
// loaded or the date default does not resolve.
func New(opts ...Option) (*Service, error) {
	cfg := newConfig(opts)
	if err := cfg.defaults.Validate(); err != nil {
		return nil, err
	}

	renderer, err := NewRenderer(opts...)
	if err != nil {
		return nil, err
	}

	return &Service{
		cfg:      cfg,
		indexer:  NewIndexer(opts...),
		renderer: renderer,
	}, nil
}

// Build writes the index and renders all articles. Both steps read the
// content directory independently; the first failure aborts the build.
func (s *Service) Build(ctx context.Context, in BuildInput) (*BuildReport, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	start := s.cfg.now()
	s.cfg.logger.Debug("build started", "content", in.ContentDir, "output", in.OutputRoot, "index", in.IndexFile)

	posts, err := s.indexer.WriteIndex(ctx, in.ContentDir, in.IndexFile)
	if err != nil {
		return nil, fmt.Errorf("indexing: %w", err)
	}

	rendered, err := s.renderer.RenderAll(ctx, in.ContentDir, in.OutputRoot)
	if err != nil {
		return nil, fmt.Errorf("rendering: %w", err)
	}

	report := &BuildReport{
		Posts:    posts,
		Rendered: rendered,
		Duration: s.cfg.now().Sub(start),
	}
	s.cfg.logger.Info("build finished", "posts", len(posts), "rendered", len(rendered), "duration", report.Duration.Round(time.Millisecond))
	return report, nil
}

// Indexer returns the service's indexer.
func (s *Service) Indexer() *Indexer { return s.indexer }

// Renderer returns the service's renderer.
func (s *Service) Renderer() *Renderer { return s.renderer }

func (in BuildInput) validate() error {
	switch {
	case in.ContentDir == "":
		return fmt.Errorf("%w: content directory", ErrMissingInput)
	case in.OutputRoot == "":
		return fmt.Errorf("%w: output root", ErrMissingInput)
	case in.IndexFile == "":
		return fmt.Errorf("%w: index file", ErrMissingInput)
	}
	return nil
}
