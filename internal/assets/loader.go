package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Built-in asset names.
const (
	DefaultStyleName    = "post"
	ArticleTemplateName = "article"
	ShellTemplateName   = "shell" // dev-server app shell
)

// AssetLoader loads stylesheets and templates by bare name, without
// directory or extension.
type AssetLoader interface {
	// LoadStyle fails with ErrStyleNotFound or ErrInvalidAssetName.
	LoadStyle(name string) (string, error)
	// LoadTemplate fails with ErrTemplateNotFound or ErrInvalidAssetName.
	LoadTemplate(name string) (string, error)
}

// assetKind describes where one family of assets lives.
type assetKind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = assetKind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = assetKind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// file is the slash-separated path of name relative to a loader root.
func (k assetKind) file(name string) string {
	return path.Join(k.dir, name+k.ext)
}

// read validates name and reads it from fsys, translating a missing file
// into the kind's not-found error.
func (k assetKind) read(fsys fs.FS, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(fsys, k.file(name))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

// ValidateAssetName accepts plain names only. Separators and dots are
// refused, so "post.css.bak" and "../x" never reach the filesystem.
func ValidateAssetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
