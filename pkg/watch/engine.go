package watch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"saganowatch/pkg/logger"
	"saganowatch/pkg/notifier"
	"saganowatch/pkg/utils/dateutils"
)

// Engine runs the watch loop body: on every tick it walks the subjects in
// chat ID order, prunes expired dates, runs the checks that are due, and
// sends whatever the decider says to send. Subjects are processed
// sequentially since they share one browser.
type Engine struct {
	registry *Registry
	checker  Checker
	notifier notifier.Notifier

	mu  sync.Mutex // one tick at a time
	now func() time.Time
}

// NewEngine wires a tick engine over a registry, a checker and a notifier
func NewEngine(registry *Registry, checker Checker, n notifier.Notifier) *Engine {
	return &Engine{
		registry: registry,
		checker:  checker,
		notifier: n,
		now:      time.Now,
	}
}

// RunTick processes every subject once. Overlapping calls coalesce: a tick
// arriving while one is running returns immediately.
func (e *Engine) RunTick(ctx context.Context) {
	if !e.mu.TryLock() {
		logger.Warn("Tick still running, skipping")
		return
	}
	defer e.mu.Unlock()

	for _, subject := range e.registry.Snapshot() {
		if ctx.Err() != nil {
			return
		}
		e.runSubject(ctx, subject)
	}
}

// runSubject handles one chat: expiry, due gate, checks, notifications,
// then the periodic check-in.
func (e *Engine) runSubject(ctx context.Context, subject *WatchState) {
	chatID := subject.ChatID
	ctx = logger.WithChatID(ctx, chatID)
	log := logger.WithChat(nil, chatID)

	today := dateutils.TodayString()
	var expired []string
	e.registry.Update(chatID, func(s *WatchState) {
		expired = s.PrunePast(today)
	})
	for _, date := range expired {
		log.Info("Watched date expired", zap.String("date", date))
		e.send(ctx, chatID, ExpiredNotice(date), log)
	}

	// Re-read after pruning
	subject = e.registry.Get(chatID)
	if subject == nil || len(subject.Dates) == 0 {
		return
	}

	now := e.now()
	if !DueForCheck(subject.LastCheckAt, subject.CheckInterval, now) {
		return
	}

	for _, date := range subject.Dates {
		if ctx.Err() != nil {
			return
		}

		dlog := logger.WithWatchDate(log, date)

		result := e.checker.Check(ctx, date, subject.Departure, subject.Arrival, subject.Seats)
		if result.Err != nil {
			// A failed check stays silent; the next tick retries
			dlog.Warn("Check failed",
				logger.ErrorField(result.Err),
				logger.DurationField(result.Elapsed.Milliseconds()))
			continue
		}

		decision := Decide(subject, result)
		if len(decision.Notify) == 0 {
			continue
		}

		// Mark before sending so a flaky delivery cannot double-announce
		announced := false
		e.registry.Update(chatID, func(s *WatchState) {
			if !s.HasDate(date) {
				return // stopped mid-check
			}
			for _, key := range decision.Keys {
				s.MarkNotified(key)
			}
			announced = true
		})
		if !announced {
			continue
		}

		dlog.Info("Seats available", zap.Int("slots", len(decision.Notify)))
		e.send(ctx, chatID, AvailabilityNotice(date, decision.Notify, subject.Seats), log)
	}

	e.registry.Update(chatID, func(s *WatchState) {
		s.LastCheckAt = e.now()
	})

	if DueForSummary(subject.LastSummaryAt, subject.SummaryInterval, now) {
		e.send(ctx, chatID, SummaryNotice(subject.Dates), log)
		e.registry.Update(chatID, func(s *WatchState) {
			s.LastSummaryAt = e.now()
		})
	}
}

func (e *Engine) send(ctx context.Context, chatID int64, text string, log *zap.Logger) {
	if err := e.notifier.Notify(ctx, chatID, text); err != nil {
		log.Error("Notification delivery failed", zap.Error(err))
	}
}
