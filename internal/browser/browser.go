// Package browser drives the post viewer in headless Chrome through go-rod.
// A Page adapts a live tab to the viewer's Document and Viewport
// interfaces, so table of contents, progress and active heading are
// computed from real layout.
package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/bitsboot/md2blog/internal/process"
)

// Sentinel errors for browser operations.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrScript         = errors.New("page script failed")
)

// Defaults for a session.
const (
	DefaultTimeout = 30 * time.Second
	DefaultWidth   = 1280
	DefaultHeight  = 800
)

// Option configures a Session.
type Option func(*Session)

// WithTimeout bounds page loads when the context has no deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithWindowSize sets the emulated viewport size.
func WithWindowSize(width, height int) Option {
	return func(s *Session) {
		if width > 0 && height > 0 {
			s.width, s.height = width, height
		}
	}
}

// WithLogger sets the logger for cleanup and script errors.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session owns one headless browser process. Rod downloads Chromium on
// first use unless ROD_BROWSER_BIN points at an installed binary.
type Session struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
	width    int
	height   int
	logger   *slog.Logger
}

// Launch starts a browser and connects to it.
func Launch(ctx context.Context, opts ...Option) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := &Session{
		timeout: DefaultTimeout,
		width:   DefaultWidth,
		height:  DefaultHeight,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	l := launcher.New().Context(ctx)

	// Pre-installed browser (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	s.launcher = l

	s.browser = rod.New().ControlURL(u)
	if err := s.browser.Connect(); err != nil {
		s.kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return s, nil
}

// Open creates a tab, loads url and waits for the load event.
func (s *Session) Open(ctx context.Context, url string, opts ...PageOption) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tab, err := s.browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	err = tab.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             s.width,
		Height:            s.height,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		_ = tab.Close()
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			_ = tab.Close()
			return nil, context.DeadlineExceeded
		}
	}
	if err := tab.Timeout(timeout).WaitLoad(); err != nil {
		_ = tab.Close()
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	return newPage(tab.Context(ctx), s.logger, opts...), nil
}

// Close disconnects and terminates the browser process tree.
func (s *Session) Close() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	s.kill()
	return err
}

func (s *Session) kill() {
	if s.launcher == nil {
		return
	}
	if pid := s.launcher.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	s.launcher.Kill()
	s.launcher.Cleanup()
	s.launcher = nil
}
