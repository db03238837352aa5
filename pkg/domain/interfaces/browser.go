package interfaces

import (
	"context"
	"time"
)

// BrowserSession defines the browser automation boundary. One session owns
// one page exclusively; all calls are sequential, never concurrent.
type BrowserSession interface {
	// Navigate loads a URL and waits for the page to be ready
	Navigate(ctx context.Context, url string) error

	// Screenshot captures the current viewport as PNG bytes
	Screenshot(ctx context.Context) ([]byte, error)

	// Click dispatches a mouse click at viewport coordinates
	Click(ctx context.Context, x, y float64) error

	// TypeText types literal text into the focused element
	TypeText(ctx context.Context, text string) error

	// PressKey presses a named key (e.g. "Enter")
	PressKey(ctx context.Context, key string) error

	// Scroll scrolls the page by the given pixel deltas
	Scroll(ctx context.Context, dx, dy int) error

	// CurrentURL returns the page's current location
	CurrentURL(ctx context.Context) (string, error)

	// Content returns the rendered page HTML
	Content(ctx context.Context) (string, error)

	// WaitSettled waits up to timeout for the page to stabilize after an
	// interaction. A timeout is reported as an error but the interaction
	// itself is still considered attempted.
	WaitSettled(ctx context.Context, timeout time.Duration) error

	// Close terminates the session and the underlying browser
	Close() error
}
