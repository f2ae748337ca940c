package assets

import (
	"embed"
	"io/fs"
)

//go:embed styles/*.css templates/*.html
var builtin embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct {
	fsys fs.FS
}

func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{fsys: builtin}
}

func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return styleKind.read(e.fsys, name)
}

func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return templateKind.read(e.fsys, name)
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
