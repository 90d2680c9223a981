package bot

import (
	"context"
	"time"

	"go.uber.org/zap"

	"saganowatch/pkg/config"
	"saganowatch/pkg/logger"
	"saganowatch/pkg/notifier"
	"saganowatch/pkg/watch"
)

// Bot owns the Telegram command surface: it long-polls for updates,
// dispatches commands against the watch registry, and replies in-chat.
type Bot struct {
	api      *notifier.TelegramNotifier
	registry *watch.Registry
	cfg      *config.MonitorConfig
	offset   int64
}

// New creates a bot over an API client and a registry
func New(api *notifier.TelegramNotifier, registry *watch.Registry, cfg *config.MonitorConfig) *Bot {
	if cfg == nil {
		cfg = config.NewMonitorConfig()
	}
	return &Bot{
		api:      api,
		registry: registry,
		cfg:      cfg,
	}
}

// Run polls for updates until the context is cancelled. Poll errors back
// off briefly instead of terminating the loop, so a Telegram outage does
// not take the watcher down.
func (b *Bot) Run(ctx context.Context) error {
	logger.Info("Bot update loop started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		updates, err := b.api.GetUpdates(ctx, b.offset)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("getUpdates failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= b.offset {
				b.offset = upd.UpdateID + 1
			}
			b.handleUpdate(ctx, upd)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, upd notifier.TelegramUpdate) {
	if upd.Message == nil || upd.Message.Text == "" {
		return
	}

	chatID := upd.Message.Chat.ID
	log := logger.WithChat(nil, chatID)
	log.Info("Command received", zap.String("text", upd.Message.Text))

	reply := b.HandleCommand(chatID, upd.Message.Text)
	if reply == "" {
		return
	}

	if err := b.api.Notify(ctx, chatID, reply); err != nil {
		log.Error("Failed to send reply", zap.Error(err))
	}
}
