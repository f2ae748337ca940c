// Package server is the development server for a built blog. It serves the
// rendered articles under the posts path, the raw index, a small JSON API
// over the catalog and an app shell that hosts redirected articles.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bitsboot/md2blog/internal/assets"
	"github.com/bitsboot/md2blog/internal/catalog"
)

// Sentinel errors for server setup.
var (
	ErrMissingOutputRoot = errors.New("output root is required")
	ErrShellTemplate     = errors.New("failed to prepare app shell")
)

// Defaults for Config.
const (
	DefaultPostsPath = "/posts"
	DefaultAppRootID = "root"
	DefaultTitle     = "Blog"
)

const shutdownTimeout = 5 * time.Second

// Config describes what to serve.
type Config struct {
	OutputRoot string // directory holding <slug>/index.html
	IndexFile  string // JSON post index; API routes answer 503 when unset
	PostsPath  string // URL prefix of articles
	AppRootID  string // id of the shell's mount element
	Title      string // shell page title
	Style      string // stylesheet name; "" selects the default
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAssetLoader overrides the loader used for the shell template and
// stylesheet.
func WithAssetLoader(l assets.AssetLoader) Option {
	return func(s *Server) {
		if l != nil {
			s.loader = l
		}
	}
}

// Server serves a built blog.
type Server struct {
	cfg    Config
	logger *slog.Logger
	loader assets.AssetLoader
	engine *gin.Engine
	shell  []byte
}

// New builds the router for cfg.
func New(cfg Config, opts ...Option) (*Server, error) {
	if cfg.OutputRoot == "" {
		return nil, ErrMissingOutputRoot
	}
	cfg.PostsPath = "/" + strings.Trim(cfg.PostsPath, "/")
	if cfg.PostsPath == "/" {
		cfg.PostsPath = DefaultPostsPath
	}
	if cfg.AppRootID == "" {
		cfg.AppRootID = DefaultAppRootID
	}
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	if cfg.Style == "" {
		cfg.Style = assets.DefaultStyleName
	}

	s := &Server{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		loader: assets.NewEmbeddedLoader(),
	}
	for _, opt := range opts {
		opt(s)
	}

	shell, err := s.renderShell()
	if err != nil {
		return nil, err
	}
	s.shell = shell

	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), s.logRequests())
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) routes() {
	r := s.engine
	r.GET("/", s.serveShell)
	r.GET(s.cfg.PostsPath+"/*file", s.servePostFile)
	r.GET(s.cfg.PostsPath+".json", s.serveIndex)

	api := r.Group("/api")
	{
		api.GET("/posts", s.listPosts)
		api.GET("/posts/:slug", s.getPost)
		api.GET("/posts/:slug/related", s.relatedPosts)
		api.GET("/categories", s.listCategories)
		api.GET("/featured", s.featuredPosts)
	}
}

func (s *Server) renderShell() ([]byte, error) {
	tmplContent, err := s.loader.LoadTemplate(assets.ShellTemplateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShellTemplate, err)
	}
	css, err := s.loader.LoadStyle(s.cfg.Style)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShellTemplate, err)
	}
	tmpl, err := template.New("shell").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShellTemplate, err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct {
		Title     string
		AppRootID string
		PostsPath string
		CSS       template.CSS
	}{
		Title:     s.cfg.Title,
		AppRootID: s.cfg.AppRootID,
		PostsPath: s.cfg.PostsPath,
		CSS:       template.CSS(strings.ReplaceAll(css, "</", `<\/`)), // #nosec G203 -- stylesheet comes from the asset loader
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShellTemplate, err)
	}
	return buf.Bytes(), nil
}

func (s *Server) serveShell(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", s.shell)
}

// servePostFile serves files below the output root. Directory requests get
// their index.html. c.File is avoided: it redirects ".../index.html" to
// the directory.
func (s *Server) servePostFile(c *gin.Context) {
	rel := path.Clean("/" + c.Param("file"))
	if strings.HasSuffix(c.Param("file"), "/") {
		rel = path.Join(rel, "index.html")
	}

	full := filepath.Join(s.cfg.OutputRoot, filepath.FromSlash(rel))
	info, err := os.Stat(full)
	if err == nil && info.IsDir() {
		full = filepath.Join(full, "index.html")
		info, err = os.Stat(full)
	}
	if err != nil || info.IsDir() {
		c.String(http.StatusNotFound, "not found")
		return
	}

	f, err := os.Open(full) // #nosec G304 -- cleaned path below the output root
	if err != nil {
		c.String(http.StatusNotFound, "not found")
		return
	}
	defer func() { _ = f.Close() }()
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}

func (s *Server) serveIndex(c *gin.Context) {
	if s.cfg.IndexFile == "" {
		c.String(http.StatusNotFound, "not found")
		return
	}
	data, err := os.ReadFile(s.cfg.IndexFile)
	if err != nil {
		c.String(http.StatusNotFound, "not found")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// loadCatalog reads the index on every request so rebuilds are picked up
// without a restart.
func (s *Server) loadCatalog(c *gin.Context) (*catalog.Catalog, bool) {
	if s.cfg.IndexFile == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no post index configured"})
		return nil, false
	}
	cat, err := catalog.Load(s.cfg.IndexFile)
	if err != nil {
		s.logger.Warn("loading post index failed", "path", s.cfg.IndexFile, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "post index unavailable"})
		return nil, false
	}
	return cat, true
}
