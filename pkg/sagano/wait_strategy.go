package sagano

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
)

// WaitStrategy provides wait mechanisms for driving the booking UI, which
// renders asynchronously and gives no completion signal.
type WaitStrategy struct {
	DefaultTimeout time.Duration
	MaxRetries     int
}

// NewWaitStrategy creates a wait strategy with defaults
func NewWaitStrategy() *WaitStrategy {
	return &WaitStrategy{
		DefaultTimeout: 10 * time.Second,
		MaxRetries:     3,
	}
}

// WaitForPageLoad waits for the document to be fully loaded
func (ws *WaitStrategy) WaitForPageLoad() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if err := chromedp.WaitReady(`body`, chromedp.ByQuery).Do(ctx); err != nil {
			return err
		}
		return chromedp.Poll(`document.readyState === "complete"`, nil).Do(ctx)
	})
}

// WaitForText polls until the given text appears anywhere on the page
func (ws *WaitStrategy) WaitForText(text string, timeout ...time.Duration) chromedp.Action {
	t := ws.DefaultTimeout
	if len(timeout) > 0 {
		t = timeout[0]
	}

	return chromedp.ActionFunc(func(ctx context.Context) error {
		timeoutCtx, cancel := context.WithTimeout(ctx, t)
		defer cancel()

		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-timeoutCtx.Done():
				return fmt.Errorf("%w: text %q not seen within %v", ErrElementNotFound, text, t)
			case <-ticker.C:
				var pageText string
				if err := chromedp.Text(`body`, &pageText, chromedp.ByQuery).Do(ctx); err == nil {
					if strings.Contains(pageText, text) {
						return nil
					}
				}
			}
		}
	})
}

// ClickByText clicks the first element whose text contains the given string.
// Retries with a scroll into view since options render off-screen.
func (ws *WaitStrategy) ClickByText(text string) chromedp.Action {
	xpath := fmt.Sprintf(`//*[contains(text(), %q)]`, text)
	return ws.clickWithRetry(xpath, chromedp.BySearch)
}

// ClickOptionByText clicks the dropdown option whose text contains the given
// string. Options carry role="option" in the booking UI.
func (ws *WaitStrategy) ClickOptionByText(text string) chromedp.Action {
	xpath := fmt.Sprintf(`//*[@role="option"][contains(., %q)]`, text)
	return ws.clickWithRetry(xpath, chromedp.BySearch)
}

func (ws *WaitStrategy) clickWithRetry(selector string, opt chromedp.QueryOption) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		timeoutCtx, cancel := context.WithTimeout(ctx, ws.DefaultTimeout)
		defer cancel()

		var nodes []*cdp.Node
		if err := chromedp.Nodes(selector, &nodes, opt).Do(timeoutCtx); err != nil || len(nodes) == 0 {
			return fmt.Errorf("%w: %s", ErrElementNotFound, selector)
		}

		var lastErr error
		for i := 0; i < ws.MaxRetries; i++ {
			if err := chromedp.MouseClickNode(nodes[0]).Do(ctx); err == nil {
				return nil
			} else {
				lastErr = err
				time.Sleep(500 * time.Millisecond)
				chromedp.Evaluate(`window.scrollBy(0, 200)`, nil).Do(ctx)
			}
		}

		return fmt.Errorf("%w: click failed after %d retries: %v", ErrElementNotFound, ws.MaxRetries, lastErr)
	})
}
