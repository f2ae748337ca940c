package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bitsboot/md2blog"
	"github.com/bitsboot/md2blog/internal/fileutil"
	"github.com/bitsboot/md2blog/internal/viewer"
)

// runTOC prints the table of contents of a rendered article. With --write
// the document's TOC list is filled in place, so the file shows its
// contents without JavaScript.
func runTOC(_ context.Context, args []string, env *Environment) error {
	f, fs, rest, err := parseFlags("toc", args, printTOCUsage, env.Stderr)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("%w: toc takes exactly one slug or HTML file", ErrUsage)
	}
	s, err := resolveSettings(fs, f, env)
	if err != nil {
		return err
	}

	path := documentPath(s.cfg.Output.Root, rest[0])
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadDocument, err)
	}

	doc, err := viewer.NewHTMLDocument(string(data))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrReadDocument, path, err)
	}
	headings, err := doc.Headings()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrReadDocument, path, err)
	}
	entries := viewer.BuildTOC(headings)

	if f.write {
		if err := doc.RenderTOC(entries); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		var buf bytes.Buffer
		if err := doc.Render(&buf); err != nil {
			return fmt.Errorf("%w: %v", md2blog.ErrWriteArticle, err)
		}
		if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644, 0o755); err != nil {
			return fmt.Errorf("%w: %s: %v", md2blog.ErrWriteArticle, path, err)
		}
		s.logger.Debug("wrote table of contents", "path", path, "entries", len(entries))
	}

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	printTOC(env.Stdout, entries)
	return nil
}

// documentPath resolves a slug to its rendered file. Arguments that look
// like paths are used as given.
func documentPath(outputRoot, arg string) string {
	if strings.HasSuffix(arg, ".html") || strings.ContainsAny(arg, `/\`) {
		return arg
	}
	return md2blog.OutputPath(outputRoot, arg)
}

// printTOC writes entries as an indented list.
func printTOC(w io.Writer, entries []viewer.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "(no headings)")
		return
	}
	for _, e := range entries {
		indent := ""
		if e.Level == 3 {
			indent = "  "
		}
		fmt.Fprintf(w, "%s- %s (#%s)\n", indent, e.Text, e.ID)
	}
}
