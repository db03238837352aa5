package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/a4kulshr/github-navigator/pkg/domain/interfaces"
	"github.com/a4kulshr/github-navigator/pkg/domain/types"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds browser session settings
type Config struct {
	Headless    bool
	Width       int
	Height      int
	UserAgent   string
	NavTimeout  time.Duration
}

// DefaultConfig returns the standard navigation viewport and timeouts
func DefaultConfig() Config {
	return Config{
		Headless:   true,
		Width:      types.ViewportWidth,
		Height:     types.ViewportHeight,
		UserAgent:  defaultUserAgent,
		NavTimeout: 60 * time.Second,
	}
}

// Session is a chromedp-backed browser session. One session owns one tab;
// calls are sequential by contract.
type Session struct {
	id          string
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	cfg         Config
}

var _ interfaces.BrowserSession = (*Session)(nil)

// New launches a Chromium instance and returns a ready session. A launch
// failure here is one of the few fatal conditions in the process.
func New(ctx context.Context, cfg Config) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.NoSandbox,
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(cfg.Width, cfg.Height),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	// The first Run starts the browser process. English is forced so page
	// text and auth markers are stable for the vision model.
	if err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(cfg.Width), int64(cfg.Height)),
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": "en-US,en;q=0.9",
		}),
	); err != nil {
		cancel()
		allocCancel()
		return nil, goerr.Wrap(err, "failed to launch browser")
	}

	s := &Session{
		id:          uuid.New().String(),
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		cfg:         cfg,
	}

	ctxlog.From(ctx).Info("browser session started",
		"session_id", s.id,
		"headless", cfg.Headless,
		"viewport", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
	)
	return s, nil
}

// ID returns the session identifier used in logs
func (s *Session) ID() string {
	return s.id
}

// Navigate loads a URL and waits for the document body to be ready. GitHub
// pages never reach network idle, so readiness of the DOM is the signal.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	navCtx, cancel := context.WithTimeout(s.ctx, s.cfg.NavTimeout)
	defer cancel()

	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return goerr.Wrap(err, "navigation failed", goerr.V("url", url))
	}
	return nil
}

// Screenshot captures the current viewport as PNG bytes
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf []byte
	if err := chromedp.Run(s.ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, goerr.Wrap(err, "failed to capture screenshot")
	}
	return buf, nil
}

// Click dispatches a mouse click at viewport coordinates
func (s *Session) Click(ctx context.Context, x, y float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := chromedp.Run(s.ctx, chromedp.MouseClickXY(x, y)); err != nil {
		return goerr.Wrap(err, "click failed", goerr.V("x", x), goerr.V("y", y))
	}
	return nil
}

// TypeText sends keystrokes to the focused element
func (s *Session) TypeText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := chromedp.Run(s.ctx, chromedp.KeyEvent(text)); err != nil {
		return goerr.Wrap(err, "typing failed")
	}
	return nil
}

// PressKey presses a named key
func (s *Session) PressKey(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	keys := key
	if key == "Enter" {
		keys = kb.Enter
	}
	if err := chromedp.Run(s.ctx, chromedp.KeyEvent(keys)); err != nil {
		return goerr.Wrap(err, "key press failed", goerr.V("key", key))
	}
	return nil
}

// Scroll scrolls the page by pixel deltas
func (s *Session) Scroll(ctx context.Context, dx, dy int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	js := fmt.Sprintf("window.scrollBy(%d, %d)", dx, dy)
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(js, nil)); err != nil {
		return goerr.Wrap(err, "scroll failed")
	}
	return nil
}

// CurrentURL returns the page's current location
func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var url string
	if err := chromedp.Run(s.ctx, chromedp.Location(&url)); err != nil {
		return "", goerr.Wrap(err, "failed to read location")
	}
	return url, nil
}

// Content returns the rendered page HTML
func (s *Session) Content(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var html string
	if err := chromedp.Run(s.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", goerr.Wrap(err, "failed to read page content")
	}
	return html, nil
}

// WaitSettled waits up to timeout for the DOM to be ready again after an
// interaction. A deadline here is expected on pages that keep loading.
func (s *Session) WaitSettled(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	settleCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	if err := chromedp.Run(settleCtx, chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		return goerr.Wrap(err, "page did not settle", goerr.V("timeout", timeout))
	}
	return nil
}

// Close shuts the tab and the browser down
func (s *Session) Close() error {
	s.cancel()
	s.allocCancel()
	return nil
}
