package sagano

import (
	"os"
	"runtime"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"saganowatch/pkg/logger"
)

// getChromePath returns the Chrome/Chromium executable path based on the operating system
func getChromePath() string {
	switch runtime.GOOS {
	case "darwin":
		paths := []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Google Chrome Canary.app/Contents/MacOS/Google Chrome Canary",
		}
		for _, path := range paths {
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}

	case "linux":
		paths := []string{
			"/usr/bin/google-chrome",
			"/usr/bin/google-chrome-stable",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
			"/usr/local/bin/chrome",
			"/opt/google/chrome/google-chrome",
		}
		for _, path := range paths {
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}

	case "windows":
		paths := []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
			os.Getenv("LOCALAPPDATA") + `\Google\Chrome\Application\chrome.exe`,
			os.Getenv("PROGRAMFILES") + `\Google\Chrome\Application\chrome.exe`,
		}
		for _, path := range paths {
			if path != "" {
				if _, err := os.Stat(path); err == nil {
					return path
				}
			}
		}
	}

	// Empty string lets chromedp fall back to the system default
	return ""
}

// GetChromePathWithFallback returns the detected Chrome path, or the given
// fallback when auto-detection finds nothing.
func GetChromePathWithFallback(fallback string) string {
	if path := getChromePath(); path != "" {
		return path
	}
	if fallback != "" {
		if _, err := os.Stat(fallback); err == nil {
			return fallback
		}
	}
	return ""
}

// GetBrowserOptions returns OS-specific browser options (exported for testing)
func GetBrowserOptions(headless bool) []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("excludeSwitches", "enable-automation"),
		chromedp.Flag("useAutomationExtension", false),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		chromedp.WindowSize(1920, 1080),
		// The booking page localizes from the browser locale, keep it English
		chromedp.Flag("lang", "en-US"),
	}

	switch runtime.GOOS {
	case "linux":
		logger.Debug("Configuring browser for Linux")
		// Permissive flags for containers and servers
		opts = append(opts,
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-setuid-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-accelerated-2d-canvas", true),
			chromedp.Flag("no-zygote", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("disable-software-rasterizer", true),
		)

		if headless {
			opts = append(opts,
				chromedp.Headless,
				chromedp.Flag("disable-background-networking", true),
				chromedp.Flag("disable-background-timer-throttling", true),
				chromedp.Flag("disable-backgrounding-occluded-windows", true),
				chromedp.Flag("disable-breakpad", true),
				chromedp.Flag("disable-features", "TranslateUI,BlinkGenPropertyTrees"),
				chromedp.Flag("disable-ipc-flooding-protection", true),
				chromedp.Flag("disable-renderer-backgrounding", true),
				chromedp.Flag("disable-sync", true),
				chromedp.Flag("force-color-profile", "srgb"),
				chromedp.Flag("metrics-recording-only", true),
				chromedp.Flag("enable-automation", false),
				chromedp.Flag("password-store", "basic"),
				chromedp.Flag("use-mock-keychain", true),
			)
		} else {
			opts = append(opts, chromedp.Flag("headless", false))
		}

	default:
		logger.Debug("Configuring browser", zap.String("os", runtime.GOOS))
		opts = append(opts,
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)

		if headless {
			opts = append(opts, chromedp.Headless)
		} else {
			opts = append(opts, chromedp.Flag("headless", false))
		}
	}

	return opts
}
