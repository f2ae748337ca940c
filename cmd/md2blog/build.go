package main

import (
	"context"
	"fmt"
	"io"

	"github.com/bitsboot/md2blog"
)

// prepare parses flags and resolves settings for a command that takes no
// positional arguments.
func prepare(name string, args []string, usage func(io.Writer), env *Environment) (*settings, error) {
	f, fs, rest, err := parseFlags(name, args, usage, env.Stderr)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: %s takes no arguments, got %q", ErrUsage, name, rest[0])
	}
	return resolveSettings(fs, f, env)
}

// runIndex writes the post index.
func runIndex(ctx context.Context, args []string, env *Environment) error {
	s, err := prepare("index", args, printIndexUsage, env)
	if err != nil {
		return err
	}
	opts, err := s.buildOptions(env)
	if err != nil {
		return err
	}

	posts, err := md2blog.NewIndexer(opts...).WriteIndex(ctx, s.cfg.Content.Dir, s.cfg.Output.Index)
	if err != nil {
		return err
	}
	s.printf(env.Stdout, "Indexed %d posts -> %s\n", len(posts), s.cfg.Output.Index)
	return nil
}

// runRender writes one document per article.
func runRender(ctx context.Context, args []string, env *Environment) error {
	s, err := prepare("render", args, printRenderUsage, env)
	if err != nil {
		return err
	}
	opts, err := s.buildOptions(env)
	if err != nil {
		return err
	}

	renderer, err := md2blog.NewRenderer(opts...)
	if err != nil {
		return err
	}
	results, err := renderer.RenderAll(ctx, s.cfg.Content.Dir, s.cfg.Output.Root)
	if err != nil {
		return err
	}
	printRendered(s, env.Stdout, results)
	return nil
}

// runBuild writes the index, then every document.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	s, err := prepare("build", args, printBuildUsage, env)
	if err != nil {
		return err
	}
	opts, err := s.buildOptions(env)
	if err != nil {
		return err
	}

	svc, err := md2blog.New(opts...)
	if err != nil {
		return err
	}
	report, err := svc.Build(ctx, md2blog.BuildInput{
		ContentDir: s.cfg.Content.Dir,
		OutputRoot: s.cfg.Output.Root,
		IndexFile:  s.cfg.Output.Index,
	})
	if err != nil {
		return err
	}

	s.printf(env.Stdout, "Indexed %d posts -> %s\n", len(report.Posts), s.cfg.Output.Index)
	printRendered(s, env.Stdout, report.Rendered)
	return nil
}

func printRendered(s *settings, w io.Writer, results []md2blog.RenderResult) {
	for _, r := range results {
		s.printf(w, "Created %s\n", r.OutputPath)
	}
	s.printf(w, "Rendered %d articles\n", len(results))
}
