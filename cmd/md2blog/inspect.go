package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/bitsboot/md2blog/internal/browser"
	"github.com/bitsboot/md2blog/internal/viewer"
)

// runInspect opens a post in a headless browser the way a reader would and
// reports its table of contents, then the progress and active heading at
// evenly spaced scroll positions.
func runInspect(ctx context.Context, args []string, env *Environment) error {
	f, fs, rest, err := parseFlags("inspect", args, printInspectUsage, env.Stderr)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("%w: inspect takes exactly one slug", ErrUsage)
	}
	if f.steps < 1 {
		return fmt.Errorf("%w: --steps must be at least 1", ErrUsage)
	}
	s, err := resolveSettings(fs, f, env)
	if err != nil {
		return err
	}
	slug := rest[0]

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	baseURL := strings.TrimRight(s.cfg.Serve.BaseURL, "/")
	if baseURL == "" {
		baseURL, err = serveInBackground(ctx, s)
		if err != nil {
			return err
		}
	}

	browserOpts := []browser.Option{browser.WithLogger(s.logger)}
	if f.timeout > 0 {
		browserOpts = append(browserOpts, browser.WithTimeout(f.timeout))
	}
	session, err := browser.Launch(ctx, browserOpts...)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	page, err := session.Open(ctx, baseURL+"/")
	if err != nil {
		return err
	}
	defer func() { _ = page.Close() }()

	v := viewer.New(page, page, viewer.WithLogger(s.logger))
	defer v.Close()

	fetcher := viewer.NewFetcher(baseURL,
		viewer.WithPostsPath(s.cfg.Site.PostsPath),
		viewer.WithFetchLogger(s.logger),
	)
	toc, found, err := viewer.Open(ctx, fetcher, v, slug)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(env.Stdout, "Post not found: %s\n", fetcher.ArticleURL(slug))
		return nil
	}

	fmt.Fprintf(env.Stdout, "%s\n\n", fetcher.ArticleURL(slug))
	fmt.Fprintln(env.Stdout, "Contents")
	printTOC(env.Stdout, toc)
	fmt.Fprintln(env.Stdout)

	return sampleScroll(env.Stdout, page, v, f.steps)
}

// serveInBackground serves the output on a random loopback port until ctx
// ends and returns its base URL.
func serveInBackground(ctx context.Context, s *settings) (string, error) {
	srv, err := newServer(s)
	if err != nil {
		return "", err
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrListen, err)
	}
	go func() {
		if err := srv.Serve(ctx, ln); err != nil {
			s.logger.Error("background server stopped", "error", err)
		}
	}()
	return "http://" + ln.Addr().String(), nil
}

// scrollPage is the part of a browser page sampleScroll drives.
type scrollPage interface {
	viewer.Viewport
	viewer.Scroller
}

// sampleScroll scrolls from the top to the end of the content in steps
// and prints the viewer state at each position.
func sampleScroll(w io.Writer, page scrollPage, v *viewer.Viewer, steps int) error {
	top, height := page.ContentBox()
	end := max(top+height-page.InnerHeight(), 0)

	fmt.Fprintln(w, "Scroll      Progress  Active")
	for i := 0; i <= steps; i++ {
		y := end * float64(i) / float64(steps)
		if err := page.ScrollTo(y); err != nil {
			return err
		}
		st := v.State()
		active := "-"
		if st.ActiveID != "" {
			active = "#" + st.ActiveID
		}
		fmt.Fprintf(w, "%8.0fpx  %7d%%  %s\n", y, st.Progress, active)
	}
	return nil
}
