// Package md2blog builds a static blog from a directory of Markdown
// articles with YAML front-matter.
//
// # Quick Start
//
//	svc, err := md2blog.New(md2blog.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := svc.Build(ctx, md2blog.BuildInput{
//	    ContentDir: "public/content",
//	    OutputRoot: "public/posts",
//	    IndexFile:  "src/data/posts.json",
//	})
//
// # Outputs
//
// The Indexer writes a JSON array of PostRecord values sorted by date,
// newest first. The Renderer writes <OutputRoot>/<slug>/index.html for every
// article: a standalone document with an empty table-of-contents panel that
// the post viewer fills in, and a script that sends readers who open the
// file directly back into the app shell.
//
// # Slugs
//
// An article's slug is its front-matter slug, or its file name without .md.
// Two articles resolving to the same slug abort the build with
// ErrDuplicateSlug before any document is written.
//
// # Defaults
//
// Missing author and category fall back to Defaults; a missing date falls
// back to the build date, so the index is not reproducible across days
// when dates are omitted. readTime, when absent, is estimated at 200 words
// per minute and is never below 1. An explicit readTime is kept as written.
package md2blog
