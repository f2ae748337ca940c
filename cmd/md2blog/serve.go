package main

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/bitsboot/md2blog/internal/server"
)

// runServe serves the built output and the app shell until interrupted.
func runServe(ctx context.Context, args []string, env *Environment) error {
	s, err := prepare("serve", args, printServeUsage, env)
	if err != nil {
		return err
	}

	srv, err := newServer(s)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.cfg.Serve.Addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrListen, err)
	}
	s.printf(env.Stdout, "Serving %s at http://%s (Ctrl+C to stop)\n", s.cfg.Output.Root, ln.Addr())

	return srv.Serve(ctx, ln)
}

// newServer configures the dev server from settings.
func newServer(s *settings) (*server.Server, error) {
	opts := []server.Option{server.WithLogger(s.logger)}
	if s.cfg.Assets.BasePath != "" {
		loader, err := s.assetLoader()
		if err != nil {
			return nil, err
		}
		opts = append(opts, server.WithAssetLoader(loader))
	}

	return server.New(server.Config{
		OutputRoot: s.cfg.Output.Root,
		IndexFile:  s.cfg.Output.Index,
		PostsPath:  s.cfg.Site.PostsPath,
		AppRootID:  s.cfg.Site.AppRootID,
		Title:      shellTitle(s.cfg.Site.TitleSuffix),
		Style:      s.cfg.Assets.Style,
	}, opts...)
}

// shellTitle derives the shell page title from a title suffix such as
// " | bitsboot".
func shellTitle(suffix string) string {
	return strings.TrimSpace(strings.TrimLeft(suffix, " |-"))
}
