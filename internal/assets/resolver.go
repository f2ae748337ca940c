package assets

import "errors"

// AssetResolver asks a site directory first and falls back to the embedded
// assets for anything the directory does not provide.
type AssetResolver struct {
	chain []AssetLoader
}

// NewAssetResolver uses embedded assets only when customBasePath is empty.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath != "" {
		site, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.chain = append(r.chain, site)
	}
	r.chain = append(r.chain, NewEmbeddedLoader())
	return r, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// first returns the first loader's hit. Only not-found errors move on down
// the chain; a bad name or unreadable file stops the lookup.
func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.chain {
		var content string
		content, err = load(l)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
			return "", err
		}
	}
	return "", err
}

// HasCustomLoader reports whether a site directory is consulted.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.chain) > 1
}

var _ AssetLoader = (*AssetResolver)(nil)
