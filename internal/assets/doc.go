// Package assets holds the stylesheet and HTML templates used for article
// documents and the dev-server app shell.
//
// Three loaders share the AssetLoader contract:
//
//	EmbeddedLoader    files compiled into the binary
//	FilesystemLoader  a site directory, confined with os.Root
//	AssetResolver     site directory first, embedded files for the rest
//
// A site directory mirrors the embedded layout:
//
//	{basePath}/styles/{name}.css
//	{basePath}/templates/{name}.html
//
// so overriding post.css alone keeps the built-in templates.
package assets
