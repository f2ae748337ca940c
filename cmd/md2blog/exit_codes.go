package main

import (
	"errors"
	"os"

	"github.com/bitsboot/md2blog"
	"github.com/bitsboot/md2blog/internal/assets"
	"github.com/bitsboot/md2blog/internal/browser"
	"github.com/bitsboot/md2blog/internal/config"
	"github.com/bitsboot/md2blog/internal/hints"
	"github.com/bitsboot/md2blog/internal/server"
	"github.com/bitsboot/md2blog/internal/viewer"
)

// Exit codes for the md2blog CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, front-matter or slugs
	ExitIO      = 3 // Missing content directory, read or write failures
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, browser.ErrBrowserConnect) ||
		errors.Is(err, browser.ErrPageCreate) ||
		errors.Is(err, browser.ErrPageLoad) ||
		errors.Is(err, browser.ErrScript) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2blog.ErrContentDirNotFound) ||
		errors.Is(err, md2blog.ErrReadArticle) ||
		errors.Is(err, md2blog.ErrWriteIndex) ||
		errors.Is(err, md2blog.ErrWriteArticle) ||
		errors.Is(err, ErrReadDocument) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2blog.ErrFrontMatter) ||
		errors.Is(err, md2blog.ErrDuplicateSlug) ||
		errors.Is(err, md2blog.ErrInvalidSlug) ||
		errors.Is(err, md2blog.ErrMissingInput) ||
		errors.Is(err, md2blog.ErrInvalidDefaults) ||
		errors.Is(err, md2blog.ErrAssetLoad) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, server.ErrMissingOutputRoot) ||
		errors.Is(err, server.ErrShellTemplate) ||
		errors.Is(err, viewer.ErrNoTOCList) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, browser.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, md2blog.ErrContentDirNotFound):
		return hints.ForContentDir("")
	case errors.Is(err, md2blog.ErrFrontMatter):
		return hints.ForFrontMatter()
	case errors.Is(err, md2blog.ErrDuplicateSlug):
		return hints.ForDuplicateSlug()
	case errors.Is(err, md2blog.ErrInvalidSlug):
		return hints.ForInvalidSlug()
	case errors.Is(err, md2blog.ErrWriteIndex), errors.Is(err, md2blog.ErrWriteArticle):
		return hints.ForOutputDirectory()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, assets.ErrStyleNotFound):
		return hints.ForStyleNotFound([]string{assets.DefaultStyleName})
	case errors.Is(err, ErrListen):
		return hints.ForServeAddr()
	}
	return ""
}
