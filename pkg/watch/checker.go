package watch

import (
	"context"
	"sync"

	"saganowatch/pkg/config"
	"saganowatch/pkg/sagano"
)

// Checker runs one availability check. Implementations report failures
// inside the result rather than as a second return value, so a loop over
// many subjects never has to special-case a bad check.
type Checker interface {
	Check(ctx context.Context, date string, departure, arrival sagano.Station, seats int) *sagano.CheckResult
}

// BrowserChecker backs checks with a shared headless browser. The browser
// holds one page, so checks serialize on a mutex.
type BrowserChecker struct {
	mu        sync.Mutex
	extractor *sagano.PageExtractor
}

// NewBrowserChecker starts the browser and returns a checker over it
func NewBrowserChecker(cfg *config.BrowserConfig) (*BrowserChecker, error) {
	extractor, err := sagano.NewPageExtractor(cfg)
	if err != nil {
		return nil, err
	}
	return &BrowserChecker{extractor: extractor}, nil
}

// Check runs the seat selection flow for one date and route
func (c *BrowserChecker) Check(ctx context.Context, date string, departure, arrival sagano.Station, seats int) *sagano.CheckResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.extractor.Extract(ctx, date, departure, arrival, seats)
}

// CaptureScreenshot saves the current page for debugging
func (c *BrowserChecker) CaptureScreenshot(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.extractor.CaptureScreenshot(path)
}

// Close shuts down the underlying browser
func (c *BrowserChecker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.extractor.Close()
}
