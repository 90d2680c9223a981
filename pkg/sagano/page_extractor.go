package sagano

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"saganowatch/pkg/config"
	"saganowatch/pkg/logger"
)

// Placeholder texts the station selectors show before a choice is made
const (
	departurePlaceholder = "Please select the departure station"
	arrivalPlaceholder   = "Please select the arrival station"
)

// extractCardsJS collects every div that mentions a Sagano train together
// with its sold-out marker. Filtering to real slot cards happens in Go.
const extractCardsJS = `
(function() {
	const cards = [];
	for (const el of document.querySelectorAll('div')) {
		const text = el.innerText || '';
		if (!text.includes('Sagano')) continue;
		cards.push({
			text: text,
			soldOut: el.querySelector('svg[class*="seatIconClose"]') !== null
		});
	}
	return JSON.stringify(cards);
})()
`

// PageExtractor drives a headless browser through the seat selection flow
// and scrapes the slot listing. One extractor owns one browser; checks run
// sequentially against it.
type PageExtractor struct {
	browserCtx   context.Context
	cancelAlloc  context.CancelFunc
	cancelCtx    context.CancelFunc
	cfg          *config.BrowserConfig
	waitStrategy *WaitStrategy
}

// NewPageExtractor starts a browser configured for scraping the booking site
func NewPageExtractor(cfg *config.BrowserConfig) (*PageExtractor, error) {
	if cfg == nil {
		cfg = config.NewBrowserConfig()
	}

	opts := GetBrowserOptions(cfg.Headless)
	if chromePath := GetChromePathWithFallback(cfg.ChromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
		logger.Info("Using Chrome executable", zap.String("path", chromePath))
	} else {
		logger.Warn("Chrome path not detected, relying on system default")
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)

	// Start the browser process up front so the first check is not slower
	// than the rest
	if err := chromedp.Run(browserCtx); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	pe := &PageExtractor{
		browserCtx:   browserCtx,
		cancelAlloc:  cancelAlloc,
		cancelCtx:    cancelCtx,
		cfg:          cfg,
		waitStrategy: NewWaitStrategy(),
	}

	if err := pe.setupAntiDetection(); err != nil {
		pe.Close()
		return nil, fmt.Errorf("failed to setup anti-detection: %w", err)
	}

	return pe, nil
}

// setupAntiDetection masks the usual headless browser tells
func (pe *PageExtractor) setupAntiDetection() error {
	return chromedp.Run(pe.browserCtx,
		chromedp.Evaluate(`
			Object.defineProperty(navigator, 'webdriver', {
				get: () => undefined
			});
			Object.defineProperty(navigator, 'plugins', {
				get: () => [1, 2, 3, 4, 5]
			});
			Object.defineProperty(navigator, 'languages', {
				get: () => ['en-US', 'en', 'ja']
			});
			window.chrome = {
				runtime: {}
			};
		`, nil),
	)
}

// Extract runs one availability check for a date and route. It never returns
// an error: failures are carried in CheckResult.Err so a scheduler loop can
// keep running.
func (pe *PageExtractor) Extract(ctx context.Context, date string, departure, arrival Station, seats int) *CheckResult {
	result := &CheckResult{
		Date:      date,
		Departure: departure.Name,
		Arrival:   arrival.Name,
		Seats:     seats,
		CheckedAt: time.Now(),
	}

	log := logger.FromContext(ctx).With(zap.String("date", date), zap.String("route", departure.Key+"-"+arrival.Key))
	log.Debug("Starting availability check")

	start := time.Now()
	defer func() {
		result.Elapsed = time.Since(start)
	}()

	navTimeout := time.Duration(pe.cfg.NavigationTimeoutSeconds) * time.Second
	checkCtx, cancel := context.WithTimeout(pe.browserCtx, navTimeout)
	defer cancel()

	// Honor caller cancellation alongside the browser deadline
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var rawCards string
	err := chromedp.Run(checkCtx,
		chromedp.Navigate(BuildBookingURL(date, seats)),
		pe.waitStrategy.WaitForPageLoad(),

		// The SPA keeps rendering after document load
		chromedp.Sleep(pe.delay(pe.cfg.HydrateDelayMs)),
		pe.waitStrategy.WaitForText(departurePlaceholder),

		// Departure station
		pe.waitStrategy.ClickByText(departurePlaceholder),
		chromedp.Sleep(pe.delay(pe.cfg.OptionDelayMs)),
		pe.waitStrategy.ClickOptionByText(departure.Name),
		chromedp.Sleep(pe.delay(pe.cfg.SelectionDelayMs)),

		// Arrival station
		pe.waitStrategy.ClickByText(arrivalPlaceholder),
		chromedp.Sleep(pe.delay(pe.cfg.OptionDelayMs)),
		pe.waitStrategy.ClickOptionByText(arrival.Name),

		// Slot listing loads after both stations are chosen
		chromedp.Sleep(pe.delay(pe.cfg.ResultsDelayMs)),
		chromedp.Evaluate(extractCardsJS, &rawCards),
	)

	if err != nil {
		result.Err = classifyError(err)
		log.Warn("Availability check failed", zap.Error(result.Err))
		return result
	}

	var cards []cardInfo
	if err := json.Unmarshal([]byte(rawCards), &cards); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrParseAnomaly, err)
		return result
	}

	result.Slots = parseSlots(cards)
	log.Info("Availability check complete",
		zap.Int("slots", len(result.Slots)),
		zap.Int("available", len(result.AvailableSlots())),
		zap.Duration("elapsed", result.Elapsed))

	return result
}

// CaptureScreenshot saves a full-page screenshot, used for debugging the
// scraping flow against UI changes.
func (pe *PageExtractor) CaptureScreenshot(path string) error {
	var buf []byte
	if err := chromedp.Run(pe.browserCtx, chromedp.FullScreenshot(&buf, 90)); err != nil {
		return fmt.Errorf("failed to capture screenshot: %w", err)
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("failed to write screenshot: %w", err)
	}
	return nil
}

// Close shuts down the browser
func (pe *PageExtractor) Close() {
	if pe.cancelCtx != nil {
		pe.cancelCtx()
	}
	if pe.cancelAlloc != nil {
		pe.cancelAlloc()
	}
}

func (pe *PageExtractor) delay(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// classifyError maps raw automation failures onto the extraction error
// categories so deciders can tell a slow page from a changed one.
func classifyError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrNavigationTimeout, err)
	case errors.Is(err, ErrElementNotFound):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrParseAnomaly, err)
	}
}
