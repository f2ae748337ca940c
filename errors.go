package md2blog

import "errors"

// Sentinel errors for library operations. All of them abort a build.
var (
	ErrContentDirNotFound = errors.New("content directory not found")
	ErrReadArticle        = errors.New("failed to read article")
	ErrFrontMatter        = errors.New("invalid front-matter")
	ErrDuplicateSlug      = errors.New("duplicate slug")
	ErrInvalidSlug        = errors.New("invalid slug")
	ErrWriteIndex         = errors.New("failed to write post index")
	ErrWriteArticle       = errors.New("failed to write article")
	ErrHTMLConversion     = errors.New("HTML conversion failed")

	// Configuration errors.
	ErrMissingInput    = errors.New("missing build input")
	ErrInvalidDefaults = errors.New("invalid defaults")
	ErrAssetLoad       = errors.New("failed to load asset")
)
