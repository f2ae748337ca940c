package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commandDescriptions {
		fmt.Fprintf(w, "  %-11s%s\n", c.name, c.desc)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2blog help <command>' for details on a specific command.")
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: md2blog.yaml if present)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logging")
	fmt.Fprintln(w)
}

func printDefaultsFlags(w io.Writer) {
	fmt.Fprintln(w, "Front-matter defaults:")
	fmt.Fprintln(w, "      --author <s>          Author for posts without one (default: Avinash)")
	fmt.Fprintln(w, "      --category <s>        Category for posts without one (default: Linux)")
	fmt.Fprintln(w, "      --date <s>            Date for posts without one: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w)
}

func printRenderFlags(w io.Writer) {
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --style <name>        CSS style name (default: post)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory overriding embedded styles and templates")
	fmt.Fprintln(w, "      --app-root-id <id>    Id of the app shell mount element (default: root)")
	fmt.Fprintln(w, "      --title-suffix <s>    Text appended to every page title")
	fmt.Fprintln(w, "      --posts-path <path>   URL prefix of articles (default: /posts, \"\" = no URL rewriting)")
	fmt.Fprintln(w, "      --no-raw-html         Escape raw HTML in articles")
	fmt.Fprintln(w)
}

func printEnvironment(w io.Writer) {
	fmt.Fprintln(w, "Environment (a .env file in the working directory is loaded first):")
	fmt.Fprintln(w, "  MD2BLOG_CONFIG, MD2BLOG_CONTENT_DIR, MD2BLOG_OUTPUT_ROOT, MD2BLOG_INDEX_FILE,")
	fmt.Fprintln(w, "  MD2BLOG_AUTHOR, MD2BLOG_CATEGORY, MD2BLOG_DATE, MD2BLOG_STYLE, MD2BLOG_ASSET_PATH,")
	fmt.Fprintln(w, "  MD2BLOG_POSTS_PATH, MD2BLOG_TITLE_SUFFIX, MD2BLOG_WORKERS, MD2BLOG_ADDR, MD2BLOG_BASE_URL")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
}

// printIndexUsage prints usage for the index command.
func printIndexUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog index [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Parse every Markdown file of the content directory and write the post index,")
	fmt.Fprintln(w, "newest first.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Paths:")
	fmt.Fprintln(w, "      --content <dir>       Markdown content directory (default: public/content)")
	fmt.Fprintln(w, "      --index <file>        Post index JSON file (default: src/data/posts.json)")
	fmt.Fprintln(w)
	printDefaultsFlags(w)
	printCommonFlags(w)
	printEnvironment(w)
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog render [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every article to <output>/<slug>/index.html.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Paths:")
	fmt.Fprintln(w, "      --content <dir>       Markdown content directory (default: public/content)")
	fmt.Fprintln(w, "  -o, --output <dir>        Article output root (default: public/posts)")
	fmt.Fprintln(w)
	printRenderFlags(w)
	printCommonFlags(w)
	printEnvironment(w)
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the post index, then render every article.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Paths:")
	fmt.Fprintln(w, "      --content <dir>       Markdown content directory (default: public/content)")
	fmt.Fprintln(w, "  -o, --output <dir>        Article output root (default: public/posts)")
	fmt.Fprintln(w, "      --index <file>        Post index JSON file (default: src/data/posts.json)")
	fmt.Fprintln(w)
	printDefaultsFlags(w)
	printRenderFlags(w)
	printCommonFlags(w)
	printEnvironment(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve rendered articles, the post index, a JSON API and the app shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Routes:")
	fmt.Fprintln(w, "  /                         App shell (follows ?redirect=<posts path>/<slug>/)")
	fmt.Fprintln(w, "  <posts path>/<slug>/      Rendered article")
	fmt.Fprintln(w, "  <posts path>.json         Post index")
	fmt.Fprintln(w, "  /api/posts[?category=]    Visible posts")
	fmt.Fprintln(w, "  /api/posts/<slug>         One post")
	fmt.Fprintln(w, "  /api/posts/<slug>/related Related posts")
	fmt.Fprintln(w, "  /api/categories           Categories with visible posts")
	fmt.Fprintln(w, "  /api/featured             Newest visible posts")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -a, --addr <host:port>    Listen address (default: 127.0.0.1:8080)")
	fmt.Fprintln(w, "  -o, --output <dir>        Article output root (default: public/posts)")
	fmt.Fprintln(w, "      --index <file>        Post index JSON file (default: src/data/posts.json)")
	fmt.Fprintln(w, "      --posts-path <path>   URL prefix of articles (default: /posts)")
	fmt.Fprintln(w, "      --app-root-id <id>    Id of the app shell mount element (default: root)")
	fmt.Fprintln(w, "      --style <name>        CSS style name (default: post)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory overriding embedded styles and templates")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printTOCUsage prints usage for the toc command.
func printTOCUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog toc <slug|file.html> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the table of contents of a rendered article, built from its h2 and h3")
	fmt.Fprintln(w, "headings. A slug is looked up under the output root.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <dir>        Article output root (default: public/posts)")
	fmt.Fprintln(w, "      --json                Print entries as JSON")
	fmt.Fprintln(w, "      --write               Fill the document's TOC list and heading ids in place")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog inspect <slug> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Open a post in headless Chrome through the app shell, then report its table")
	fmt.Fprintln(w, "of contents and the reading progress and active heading while scrolling.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --base-url <url>      Inspect a running site (default: serve the output root)")
	fmt.Fprintln(w, "  -o, --output <dir>        Article output root (default: public/posts)")
	fmt.Fprintln(w, "      --index <file>        Post index JSON file (default: src/data/posts.json)")
	fmt.Fprintln(w, "      --posts-path <path>   URL prefix of articles (default: /posts)")
	fmt.Fprintln(w, "      --app-root-id <id>    Id of the app shell mount element (default: root)")
	fmt.Fprintln(w, "      --steps <n>           Scroll positions to sample (default: 4)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load timeout (default: 30s)")
	fmt.Fprintln(w)
	printCommonFlags(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN           Use a pre-installed Chrome/Chromium")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX=1          Disable the sandbox (containers, CI)")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog doctor [--json] [--config <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the configuration, the content and output directories, and the browser")
	fmt.Fprintln(w, "used by inspect. Exits 1 when a build would fail.")
}

// runHelp shows help for a command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "index":
		printIndexUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "build":
		printBuildUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "toc":
		printTOCUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2blog version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2blog help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
