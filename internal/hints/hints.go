// Package hints builds the one-line suggestions appended to CLI errors.
// Every hint reads "\n  hint: <text>"; an empty string means no advice.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bitsboot/md2blog/internal/fileutil"
)

const prefix = "\n  hint: "

// IsInContainer reports whether the process runs under Docker.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// hint joins the non-empty parts into one hint line.
func hint(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return prefix + strings.Join(kept, "; ")
}

func runningInCI() bool {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect suggests the Rod variables that usually fix a Chrome
// that will not start.
func ForBrowserConnect() string {
	var sandbox, binary string
	if (runningInCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		sandbox = "set ROD_NO_SANDBOX=1 for Docker/CI"
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		binary = "set ROD_BROWSER_BIN to use an installed Chrome"
	}
	return hint(sandbox, binary)
}

func ForContentDir(dir string) string {
	if dir == "" {
		return hint("pass --content DIR or set content.dir in the config")
	}
	return hint("create " + dir + " or pass --content DIR")
}

func ForFrontMatter() string {
	return hint("front-matter is a YAML block between two '---' lines at the very top of the file")
}

func ForDuplicateSlug() string {
	return hint("give one of the articles its own 'slug:' in the front-matter")
}

func ForInvalidSlug() string {
	return hint("a slug is a single URL path segment such as boot-stages")
}

// ForConfigNotFound points at --config and, when one of the searched paths
// is a per-user md2blog directory, offers it as the place to create one.
func ForConfigNotFound(searched []string) string {
	text := "use --config /path/to/file.yaml"
	userDir := string(filepath.Separator) + "md2blog" + string(filepath.Separator)
	for _, p := range searched {
		if strings.Contains(p, userDir) {
			text += " or create " + p
			break
		}
	}
	return hint(text)
}

func ForOutputDirectory() string {
	return hint("check the output directory exists or can be created and is writable")
}

// ForStyleNotFound lists the styles that do exist.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return hint("available: " + strings.Join(available, ", "))
}

func ForServeAddr() string {
	return hint("the address may be in use; pass --addr host:port")
}
