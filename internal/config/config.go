// Package config loads the YAML build configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitsboot/md2blog/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength    = 4096
	MaxNameLength    = 100 // author, category
	MaxDateLength    = 64  // "2025-12-31" or "auto:January 2, 2006"
	MaxIDLength      = 100 // DOM id
	MaxSuffixLength  = 200
	MaxAddrLength    = 256
	MaxURLLength     = 2048
	MaxStyleLength   = 100
	MaxRenderWorkers = 64
)

const (
	configDirName     = "md2blog"
	defaultConfigName = "md2blog"
)

// Built-in locations, matching the layout of the blog repository.
const (
	DefaultContentDir = "public/content"
	DefaultOutputRoot = "public/posts"
	DefaultIndexFile  = "src/data/posts.json"
	DefaultPostsPath  = "/posts"
	DefaultServeAddr  = "127.0.0.1:8080"
)

// Config holds the build and serve configuration.
type Config struct {
	Content  ContentConfig  `yaml:"content"`
	Output   OutputConfig   `yaml:"output"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Site     SiteConfig     `yaml:"site"`
	Assets   AssetsConfig   `yaml:"assets"`
	Render   RenderConfig   `yaml:"render"`
	Serve    ServeConfig    `yaml:"serve"`
}

// ContentConfig locates the Markdown sources.
type ContentConfig struct {
	Dir string `yaml:"dir"`
}

// OutputConfig locates the build outputs.
type OutputConfig struct {
	Root  string `yaml:"root"`  // <root>/<slug>/index.html
	Index string `yaml:"index"` // JSON post index
}

// DefaultsConfig fills missing front-matter fields. Empty keeps the
// built-in value.
type DefaultsConfig struct {
	Author   string `yaml:"author"`
	Category string `yaml:"category"`
	Date     string `yaml:"date"` // literal, "auto" or "auto:FORMAT"
}

// SiteConfig describes how documents sit inside the app.
type SiteConfig struct {
	AppRootID   string `yaml:"appRootId"`
	TitleSuffix string `yaml:"titleSuffix"`
	PostsPath   string `yaml:"postsPath"` // "" disables relative URL rewriting
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
	Style    string `yaml:"style"`
}

// RenderConfig tunes the renderer.
type RenderConfig struct {
	Workers int   `yaml:"workers"` // 0 = auto
	RawHTML *bool `yaml:"rawHTML"` // nil = enabled
}

// ServeConfig configures the dev server and the viewer's fetch base.
type ServeConfig struct {
	Addr    string `yaml:"addr"`
	BaseURL string `yaml:"baseURL"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Content: ContentConfig{Dir: DefaultContentDir},
		Output:  OutputConfig{Root: DefaultOutputRoot, Index: DefaultIndexFile},
		Site:    SiteConfig{PostsPath: DefaultPostsPath},
		Serve:   ServeConfig{Addr: DefaultServeAddr},
	}
}

// RawHTMLEnabled reports whether raw HTML passes through the renderer.
func (c *Config) RawHTMLEnabled() bool {
	return c.Render.RawHTML == nil || *c.Render.RawHTML
}

// Validate checks field lengths and ranges. Called by LoadConfig, but
// available for configs built in code.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"content.dir", c.Content.Dir, MaxPathLength},
		{"output.root", c.Output.Root, MaxPathLength},
		{"output.index", c.Output.Index, MaxPathLength},
		{"defaults.author", c.Defaults.Author, MaxNameLength},
		{"defaults.category", c.Defaults.Category, MaxNameLength},
		{"defaults.date", c.Defaults.Date, MaxDateLength},
		{"site.appRootId", c.Site.AppRootID, MaxIDLength},
		{"site.titleSuffix", c.Site.TitleSuffix, MaxSuffixLength},
		{"site.postsPath", c.Site.PostsPath, MaxURLLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.style", c.Assets.Style, MaxStyleLength},
		{"serve.addr", c.Serve.Addr, MaxAddrLength},
		{"serve.baseURL", c.Serve.BaseURL, MaxURLLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Render.Workers < 0 || c.Render.Workers > MaxRenderWorkers {
		return fmt.Errorf("%w: render.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxRenderWorkers, c.Render.Workers)
	}
	if c.Site.PostsPath != "" && !strings.HasPrefix(c.Site.PostsPath, "/") {
		return fmt.Errorf("%w: site.postsPath must start with '/', got %q", ErrInvalidValue, c.Site.PostsPath)
	}
	if strings.ContainsAny(c.Site.AppRootID, " \t\n\"'") {
		return fmt.Errorf("%w: site.appRootId %q is not a valid element id", ErrInvalidValue, c.Site.AppRootID)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Keys absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DiscoverConfig returns the path of the default "md2blog" config when one
// exists in a standard location, or "" when there is none.
func DiscoverConfig() string {
	path, err := resolveConfigPath(defaultConfigName)
	if err != nil {
		return ""
	}
	return path
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// resolveConfigPath searches for a config file by name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/md2blog/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
