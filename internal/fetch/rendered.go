package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// RenderedFetcher fetches pages through headless Chrome, for menus pages
// that assemble their content client-side.
type RenderedFetcher struct {
	chromePath string
}

// NewRendered creates a RenderedFetcher. An empty chromePath lets chromedp
// locate the browser itself.
func NewRendered(chromePath string) *RenderedFetcher {
	return &RenderedFetcher{chromePath: chromePath}
}

// Fetch navigates to the URL in headless Chrome and returns the rendered
// HTML once the page's links are visible.
func (f *RenderedFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	// Create headless Chrome context
	opts := chromedp.DefaultExecAllocatorOptions[:]
	if f.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(f.chromePath))
	}
	opts = append(opts,
		chromedp.Headless,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromeCtx, chromeCancel := chromedp.NewContext(allocCtx)
	defer chromeCancel()

	var html string
	err := chromedp.Run(chromeCtx,
		chromedp.Navigate(url),
		// Wait for the page's links to be rendered
		chromedp.WaitVisible(`a`, chromedp.ByQuery),
		// Give the frontend a moment to fully render
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML(`html`, &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}

	return []byte(html), nil
}
