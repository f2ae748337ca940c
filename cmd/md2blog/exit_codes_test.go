package main

// Notes:
// - exitCodeFor: sentinel errors from every package the CLI calls, plus
//   wrapped errors to verify the errors.Is chain.
// - hintFor: only presence is checked; hint wording lives in internal/hints.

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/bitsboot/md2blog"
	"github.com/bitsboot/md2blog/internal/assets"
	"github.com/bitsboot/md2blog/internal/browser"
	"github.com/bitsboot/md2blog/internal/config"
	"github.com/bitsboot/md2blog/internal/server"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", browser.ErrBrowserConnect, ExitBrowser},
		{"page load", browser.ErrPageLoad, ExitBrowser},
		{"script", browser.ErrScript, ExitBrowser},
		{"wrapped page create", fmt.Errorf("inspect: %w", browser.ErrPageCreate), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"content dir", md2blog.ErrContentDirNotFound, ExitIO},
		{"read article", md2blog.ErrReadArticle, ExitIO},
		{"write index", fmt.Errorf("indexing: %w", md2blog.ErrWriteIndex), ExitIO},
		{"write article", md2blog.ErrWriteArticle, ExitIO},
		{"read document", ErrReadDocument, ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"front matter", md2blog.ErrFrontMatter, ExitUsage},
		{"duplicate slug", md2blog.ErrDuplicateSlug, ExitUsage},
		{"invalid slug", md2blog.ErrInvalidSlug, ExitUsage},
		{"invalid defaults", md2blog.ErrInvalidDefaults, ExitUsage},
		{"asset load", md2blog.ErrAssetLoad, ExitUsage},
		{"style not found", assets.ErrStyleNotFound, ExitUsage},
		{"missing output root", server.ErrMissingOutputRoot, ExitUsage},
		{"usage", ErrUsage, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"listen", ErrListen, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("standard codes changed: success=%d general=%d usage=%d", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitBrowser} {
		if code >= 126 {
			t.Errorf("custom exit code %d collides with shell-reserved codes", code)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	withHint := []error{
		fmt.Errorf("indexing: %w", md2blog.ErrContentDirNotFound),
		md2blog.ErrFrontMatter,
		md2blog.ErrDuplicateSlug,
		md2blog.ErrInvalidSlug,
		md2blog.ErrWriteArticle,
		config.ErrConfigNotFound,
		assets.ErrStyleNotFound,
		ErrListen,
	}
	for _, err := range withHint {
		if got := hintFor(err); !strings.Contains(got, "hint:") {
			t.Errorf("hintFor(%v) = %q, want a hint", err, got)
		}
	}

	if got := hintFor(errors.New("boom")); got != "" {
		t.Errorf("hintFor(unknown) = %q, want empty", got)
	}
}
