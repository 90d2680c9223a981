package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"saganowatch/pkg/config"
	"saganowatch/pkg/logger"
	"saganowatch/pkg/sagano"
	"saganowatch/pkg/utils/dateutils"
	"saganowatch/pkg/watch"
)

// check_once performs a single availability check and prints the result.
// Useful for verifying the scraper against the live booking page.
func main() {
	_ = godotenv.Load()

	date := flag.String("date", "", "travel date (YYYY-MM-DD)")
	dep := flag.String("dep", "saga", "departure station key or name")
	arr := flag.String("arr", "kameoka", "arrival station key or name")
	seats := flag.Int("seats", 1, "number of seats")
	screenshot := flag.String("screenshot", "", "save a page screenshot to this path")
	flag.Parse()

	if *date == "" {
		*date = dateutils.Today().AddDate(0, 0, 1).Format(dateutils.LayoutDate)
	}

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.InitLogger(true, "", cfg.App.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	departure, err := sagano.FindStation(*dep)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	arrival, err := sagano.FindStation(*arr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	checker, err := watch.NewBrowserChecker(cfg.Browser)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start browser: %v\n", err)
		os.Exit(1)
	}
	defer checker.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result := checker.Check(ctx, *date, departure, arrival, *seats)
	if result.Err != nil {
		fmt.Fprintf(os.Stderr, "check failed: %v\n", result.Err)
		os.Exit(1)
	}

	fmt.Printf("%s  %s -> %s  (%d seat(s), checked in %s)\n",
		result.Date, departure.Name, arrival.Name, *seats, result.Elapsed.Round(time.Millisecond))
	if len(result.Slots) == 0 {
		fmt.Println("no departures found")
	}
	for _, slot := range result.Slots {
		status := "SOLD OUT"
		if slot.Available {
			status = "AVAILABLE"
		}
		fmt.Printf("  %-22s %s\n", slot.Label(), status)
	}
	if available := result.AvailableSlots(); len(available) > 0 {
		fmt.Printf("book at %s\n", sagano.BuildBookingURL(*date, *seats))
	}

	if *screenshot != "" {
		if err := checker.CaptureScreenshot(*screenshot); err != nil {
			fmt.Fprintf(os.Stderr, "screenshot failed: %v\n", err)
		} else {
			fmt.Printf("screenshot saved to %s\n", *screenshot)
		}
	}
}
