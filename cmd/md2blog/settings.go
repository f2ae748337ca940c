package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	flag "github.com/spf13/pflag"

	"github.com/bitsboot/md2blog"
	"github.com/bitsboot/md2blog/internal/assets"
	"github.com/bitsboot/md2blog/internal/config"
)

// Sentinel errors raised by the CLI itself.
var (
	ErrUsage        = errors.New("invalid usage")
	ErrReadDocument = errors.New("failed to read document")
	ErrListen       = errors.New("failed to start server")
)

// settings is the resolved configuration of one command run.
type settings struct {
	cfg    *config.Config
	logger *slog.Logger
	quiet  bool
}

// resolveSettings merges every configuration source.
// Precedence: CLI flags > env vars (.env included) > config file > defaults.
func resolveSettings(fs *flag.FlagSet, f *cmdFlags, env *Environment) (*settings, error) {
	if err := loadDotEnv(env.DotEnv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if !f.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}
	envCfg := loadEnvConfig()

	configPath := f.common.config
	if configPath == "" {
		configPath = envCfg.ConfigPath
	}
	if configPath == "" {
		configPath = config.DiscoverConfig()
	}

	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	applyFlags(fs, f, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &settings{
		cfg:    cfg,
		logger: newLogger(env.Stderr, f.common.verbose, f.common.quiet),
		quiet:  f.common.quiet,
	}, nil
}

// newLogger writes text logs to w: debug when verbose, errors only when
// quiet, warnings otherwise.
func newLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// buildOptions translates the configuration into library options.
func (s *settings) buildOptions(env *Environment) ([]md2blog.Option, error) {
	cfg := s.cfg
	opts := []md2blog.Option{
		md2blog.WithNow(env.Now),
		md2blog.WithLogger(s.logger),
		md2blog.WithDefaults(md2blog.Defaults{
			Author:   cfg.Defaults.Author,
			Category: cfg.Defaults.Category,
			Date:     cfg.Defaults.Date,
		}),
		md2blog.WithWorkers(cfg.Render.Workers),
		md2blog.WithStyle(cfg.Assets.Style),
		md2blog.WithAppRootID(cfg.Site.AppRootID),
		md2blog.WithTitleSuffix(cfg.Site.TitleSuffix),
		md2blog.WithPostsPath(cfg.Site.PostsPath),
		md2blog.WithRawHTML(cfg.RawHTMLEnabled()),
	}

	if cfg.Assets.BasePath != "" {
		loader, err := s.assetLoader()
		if err != nil {
			return nil, err
		}
		opts = append(opts, md2blog.WithAssetLoader(loader))
	}
	return opts, nil
}

// assetLoader returns the embedded assets, overlaid by the configured
// directory when there is one.
func (s *settings) assetLoader() (assets.AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(s.cfg.Assets.BasePath)
	if err != nil {
		return nil, err
	}
	return resolver, nil
}

// printf writes progress output unless quiet.
func (s *settings) printf(w io.Writer, format string, args ...any) {
	if !s.quiet {
		fmt.Fprintf(w, format, args...)
	}
}
