package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"saganowatch/pkg/config"
	"saganowatch/pkg/logger"
)

const telegramAPIBase = "https://api.telegram.org/bot%s/%s"

// TelegramNotifier sends messages through the Telegram Bot API. Outbound
// sends go through a rate limiter since the API throttles bots around 30
// messages per second.
type TelegramNotifier struct {
	config     *config.TelegramConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// TelegramMessage is the sendMessage request payload
type TelegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// TelegramResponse is the envelope every Bot API call returns
type TelegramResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

// TelegramUpdate is one entry from getUpdates
type TelegramUpdate struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		MessageID int64  `json:"message_id"`
		Text      string `json:"text"`
		Chat      struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		From struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
		} `json:"from"`
	} `json:"message"`
}

// NewTelegramNotifier creates a Telegram notifier
func NewTelegramNotifier(cfg *config.TelegramConfig) *TelegramNotifier {
	return &TelegramNotifier{
		config: cfg,
		httpClient: &http.Client{
			// Long polling needs headroom beyond the send timeout
			Timeout: time.Duration(cfg.TimeoutSeconds+cfg.PollTimeoutSeconds) * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(25), 5),
	}
}

// Notify sends a message to a chat
func (t *TelegramNotifier) Notify(ctx context.Context, chatID int64, text string) error {
	if !t.config.Enabled {
		logger.Debug("Telegram notifications disabled")
		return nil
	}

	if t.config.BotToken == "" {
		return fmt.Errorf("%w: telegram bot token not configured", ErrDeliveryFailure)
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
	}

	msg := TelegramMessage{
		ChatID: strconv.FormatInt(chatID, 10),
		Text:   text,
	}
	return t.sendMessage(ctx, &msg)
}

func (t *TelegramNotifier) sendMessage(ctx context.Context, message *TelegramMessage) error {
	url := fmt.Sprintf(telegramAPIBase, t.config.BotToken, "sendMessage")

	jsonData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Debug("Sending Telegram message",
		zap.String("chat_id", message.ChatID),
		zap.Int("length", len(message.Text)))

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
	}
	defer resp.Body.Close()

	var telegramResp TelegramResponse
	if err := json.NewDecoder(resp.Body).Decode(&telegramResp); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrDeliveryFailure, err)
	}

	if !telegramResp.OK {
		return fmt.Errorf("%w: telegram API error: %s (code: %d)",
			ErrDeliveryFailure, telegramResp.Description, telegramResp.ErrorCode)
	}

	return nil
}

// GetUpdates long-polls the Bot API for incoming messages. Offset is the
// next update ID to fetch; pass the last seen ID plus one.
func (t *TelegramNotifier) GetUpdates(ctx context.Context, offset int64) ([]TelegramUpdate, error) {
	url := fmt.Sprintf(telegramAPIBase, t.config.BotToken, "getUpdates")

	payload := map[string]interface{}{
		"offset":          offset,
		"timeout":         t.config.PollTimeoutSeconds,
		"allowed_updates": []string{"message"},
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getUpdates request failed: %w", err)
	}
	defer resp.Body.Close()

	var telegramResp TelegramResponse
	if err := json.NewDecoder(resp.Body).Decode(&telegramResp); err != nil {
		return nil, fmt.Errorf("failed to decode getUpdates response: %w", err)
	}
	if !telegramResp.OK {
		return nil, fmt.Errorf("telegram API error: %s (code: %d)",
			telegramResp.Description, telegramResp.ErrorCode)
	}

	var updates []TelegramUpdate
	if err := json.Unmarshal(telegramResp.Result, &updates); err != nil {
		return nil, fmt.Errorf("failed to decode updates: %w", err)
	}
	return updates, nil
}

// TestConnection verifies the bot token with a getMe call
func (t *TelegramNotifier) TestConnection(ctx context.Context) error {
	if !t.config.Enabled {
		return fmt.Errorf("telegram notifications are disabled")
	}

	url := fmt.Sprintf(telegramAPIBase, t.config.BotToken, "getMe")
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("getMe request failed: %w", err)
	}
	defer resp.Body.Close()

	var telegramResp TelegramResponse
	if err := json.NewDecoder(resp.Body).Decode(&telegramResp); err != nil {
		return fmt.Errorf("failed to decode getMe response: %w", err)
	}
	if !telegramResp.OK {
		return fmt.Errorf("telegram API error: %s (code: %d)",
			telegramResp.Description, telegramResp.ErrorCode)
	}
	return nil
}
