package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/bitsboot/md2blog/internal/config"
)

const envPrefix = "MD2BLOG_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string  // MD2BLOG_CONFIG
	ContentDir  string  // MD2BLOG_CONTENT_DIR
	OutputRoot  string  // MD2BLOG_OUTPUT_ROOT
	IndexFile   string  // MD2BLOG_INDEX_FILE
	Author      string  // MD2BLOG_AUTHOR
	Category    string  // MD2BLOG_CATEGORY
	Date        string  // MD2BLOG_DATE
	Style       string  // MD2BLOG_STYLE
	AssetPath   string  // MD2BLOG_ASSET_PATH
	PostsPath   *string // MD2BLOG_POSTS_PATH, nil when unset
	TitleSuffix string  // MD2BLOG_TITLE_SUFFIX
	Workers     int     // MD2BLOG_WORKERS
	Addr        string  // MD2BLOG_ADDR
	BaseURL     string  // MD2BLOG_BASE_URL
}

// knownEnvVars lists valid MD2BLOG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2BLOG_CONFIG":       true,
	"MD2BLOG_CONTENT_DIR":  true,
	"MD2BLOG_OUTPUT_ROOT":  true,
	"MD2BLOG_INDEX_FILE":   true,
	"MD2BLOG_AUTHOR":       true,
	"MD2BLOG_CATEGORY":     true,
	"MD2BLOG_DATE":         true,
	"MD2BLOG_STYLE":        true,
	"MD2BLOG_ASSET_PATH":   true,
	"MD2BLOG_POSTS_PATH":   true,
	"MD2BLOG_TITLE_SUFFIX": true,
	"MD2BLOG_WORKERS":      true,
	"MD2BLOG_ADDR":         true,
	"MD2BLOG_BASE_URL":     true,
	"MD2BLOG_CONTAINER":    true,
}

// loadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("MD2BLOG_CONFIG"),
		ContentDir:  os.Getenv("MD2BLOG_CONTENT_DIR"),
		OutputRoot:  os.Getenv("MD2BLOG_OUTPUT_ROOT"),
		IndexFile:   os.Getenv("MD2BLOG_INDEX_FILE"),
		Author:      os.Getenv("MD2BLOG_AUTHOR"),
		Category:    os.Getenv("MD2BLOG_CATEGORY"),
		Date:        os.Getenv("MD2BLOG_DATE"),
		Style:       os.Getenv("MD2BLOG_STYLE"),
		AssetPath:   os.Getenv("MD2BLOG_ASSET_PATH"),
		TitleSuffix: os.Getenv("MD2BLOG_TITLE_SUFFIX"),
		Addr:        os.Getenv("MD2BLOG_ADDR"),
		BaseURL:     os.Getenv("MD2BLOG_BASE_URL"),
	}

	// Set-but-empty disables URL rewriting, so presence matters.
	if v, ok := os.LookupEnv("MD2BLOG_POSTS_PATH"); ok {
		cfg.PostsPath = &v
	}

	if workers := os.Getenv("MD2BLOG_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2BLOG_* variables.
// Helps catch typos like MD2BLOG_AUTOR instead of MD2BLOG_AUTHOR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays set environment values on cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by applyFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setIf(&cfg.Content.Dir, env.ContentDir)
	setIf(&cfg.Output.Root, env.OutputRoot)
	setIf(&cfg.Output.Index, env.IndexFile)
	setIf(&cfg.Defaults.Author, env.Author)
	setIf(&cfg.Defaults.Category, env.Category)
	setIf(&cfg.Defaults.Date, env.Date)
	setIf(&cfg.Assets.Style, env.Style)
	setIf(&cfg.Assets.BasePath, env.AssetPath)
	setIf(&cfg.Site.TitleSuffix, env.TitleSuffix)
	setIf(&cfg.Serve.Addr, env.Addr)
	setIf(&cfg.Serve.BaseURL, env.BaseURL)
	if env.PostsPath != nil {
		cfg.Site.PostsPath = *env.PostsPath
	}
	if env.Workers > 0 {
		cfg.Render.Workers = env.Workers
	}
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
