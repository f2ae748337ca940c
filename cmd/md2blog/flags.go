package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/bitsboot/md2blog/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pathFlags holds content and output locations.
type pathFlags struct {
	content string
	output  string
	index   string
}

// defaultsFlags holds front-matter fallbacks.
type defaultsFlags struct {
	author   string
	category string
	date     string
}

// renderFlags holds article rendering flags.
type renderFlags struct {
	workers     int
	style       string
	assetPath   string
	appRootID   string
	titleSuffix string
	postsPath   string
	noRawHTML   bool
}

// serveFlags holds dev server and viewer flags.
type serveFlags struct {
	addr    string
	baseURL string
}

// cmdFlags collects every flag group. Each command registers only the
// groups it uses; unregistered groups keep their zero values.
type cmdFlags struct {
	common   commonFlags
	paths    pathFlags
	defaults defaultsFlags
	render   renderFlags
	serve    serveFlags

	// toc
	json  bool
	write bool

	// inspect
	steps   int
	timeout time.Duration
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logging")
}

func addContentFlag(fs *flag.FlagSet, f *pathFlags) {
	fs.StringVar(&f.content, "content", "", "Markdown content directory")
}

func addOutputFlag(fs *flag.FlagSet, f *pathFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "article output root")
}

func addIndexFlag(fs *flag.FlagSet, f *pathFlags) {
	fs.StringVar(&f.index, "index", "", "post index JSON file")
}

// addDefaultsFlags adds front-matter fallback flags to a FlagSet.
func addDefaultsFlags(fs *flag.FlagSet, f *defaultsFlags) {
	fs.StringVar(&f.author, "author", "", "author for posts without one")
	fs.StringVar(&f.category, "category", "", "category for posts without one")
	fs.StringVar(&f.date, "date", "", "date for posts without one (\"auto\" = today)")
}

// addRenderFlags adds article rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.style, "style", "", "CSS style name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	addSiteFlags(fs, f)
	fs.StringVar(&f.titleSuffix, "title-suffix", "", "text appended to every page title")
	fs.BoolVar(&f.noRawHTML, "no-raw-html", false, "escape raw HTML in articles")
}

// addSiteFlags adds the flags the app shell and articles must agree on.
func addSiteFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.appRootID, "app-root-id", "", "id of the app shell mount element")
	fs.StringVar(&f.postsPath, "posts-path", "", "URL prefix of articles (\"\" disables URL rewriting)")
}

// newFlagSet builds the FlagSet of a command. usage is printed on -h.
func newFlagSet(name string, f *cmdFlags, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	addCommonFlags(fs, &f.common)

	switch name {
	case "index":
		addContentFlag(fs, &f.paths)
		addIndexFlag(fs, &f.paths)
		addDefaultsFlags(fs, &f.defaults)
	case "render":
		addContentFlag(fs, &f.paths)
		addOutputFlag(fs, &f.paths)
		addRenderFlags(fs, &f.render)
	case "build":
		addContentFlag(fs, &f.paths)
		addOutputFlag(fs, &f.paths)
		addIndexFlag(fs, &f.paths)
		addDefaultsFlags(fs, &f.defaults)
		addRenderFlags(fs, &f.render)
	case "serve":
		addOutputFlag(fs, &f.paths)
		addIndexFlag(fs, &f.paths)
		addSiteFlags(fs, &f.render)
		fs.StringVar(&f.render.assetPath, "asset-path", "", "custom asset directory")
		fs.StringVar(&f.render.style, "style", "", "CSS style name")
		fs.StringVarP(&f.serve.addr, "addr", "a", "", "listen address (host:port)")
	case "toc":
		addOutputFlag(fs, &f.paths)
		fs.BoolVar(&f.json, "json", false, "print the table of contents as JSON")
		fs.BoolVar(&f.write, "write", false, "fill the document's TOC list in place")
	case "inspect":
		addOutputFlag(fs, &f.paths)
		addIndexFlag(fs, &f.paths)
		addSiteFlags(fs, &f.render)
		fs.StringVar(&f.serve.baseURL, "base-url", "", "inspect a running site instead of serving the output")
		fs.IntVar(&f.steps, "steps", 4, "number of scroll positions to sample")
		fs.DurationVarP(&f.timeout, "timeout", "t", 0, "browser page load timeout (e.g. 30s)")
	case "doctor":
		fs.BoolVar(&f.json, "json", false, "output as JSON")
	}

	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseFlags parses args for command name and returns the flags, the
// FlagSet (for Changed checks) and the positional arguments.
func parseFlags(name string, args []string, usage func(io.Writer), stderr io.Writer) (*cmdFlags, *flag.FlagSet, []string, error) {
	f := &cmdFlags{}
	fs := newFlagSet(name, f, usage, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, nil, err
		}
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return f, fs, fs.Args(), nil
}

// applyFlags overlays explicitly set flags on cfg. Flags that a command
// does not register are never Changed.
func applyFlags(fs *flag.FlagSet, f *cmdFlags, cfg *config.Config) {
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("content", &cfg.Content.Dir, f.paths.content)
	set("output", &cfg.Output.Root, f.paths.output)
	set("index", &cfg.Output.Index, f.paths.index)
	set("author", &cfg.Defaults.Author, f.defaults.author)
	set("category", &cfg.Defaults.Category, f.defaults.category)
	set("date", &cfg.Defaults.Date, f.defaults.date)
	set("style", &cfg.Assets.Style, f.render.style)
	set("asset-path", &cfg.Assets.BasePath, f.render.assetPath)
	set("app-root-id", &cfg.Site.AppRootID, f.render.appRootID)
	set("title-suffix", &cfg.Site.TitleSuffix, f.render.titleSuffix)
	set("posts-path", &cfg.Site.PostsPath, f.render.postsPath)
	set("addr", &cfg.Serve.Addr, f.serve.addr)
	set("base-url", &cfg.Serve.BaseURL, f.serve.baseURL)

	if fs.Changed("workers") {
		cfg.Render.Workers = f.render.workers
	}
	if fs.Changed("no-raw-html") {
		raw := !f.render.noRawHTML
		cfg.Render.RawHTML = &raw
	}
}
