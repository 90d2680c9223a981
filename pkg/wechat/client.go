package wechat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"saganowatch/pkg/config"
	"saganowatch/pkg/logger"
)

// Client posts messages to a WeCom group robot webhook. Used as a mirror
// channel so a team chat sees the same alerts as the Telegram subscribers.
type Client struct {
	webhookURL   string
	httpClient   *http.Client
	maxRetries   int
	retryDelay   time.Duration
	mentionUsers []string
}

// NewClient creates a WeCom webhook client
func NewClient(cfg *config.WeChatConfig) *Client {
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 3
	}
	retryDelay := time.Duration(cfg.RetryDelay) * time.Second
	if retryDelay == 0 {
		retryDelay = 2 * time.Second
	}

	return &Client{
		webhookURL:   cfg.WebhookURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		maxRetries:   maxRetries,
		retryDelay:   retryDelay,
		mentionUsers: cfg.MentionUsers,
	}
}

// SendText posts a text message, mentioning the configured users
func (c *Client) SendText(ctx context.Context, content string) error {
	msg := &WebhookMessage{
		MsgType: MessageTypeText,
		Text: &TextMsg{
			Content:       content,
			MentionedList: c.mentionUsers,
		},
	}
	return c.sendMessage(ctx, msg)
}

// SendMarkdown posts a markdown message
func (c *Client) SendMarkdown(ctx context.Context, content string) error {
	msg := &WebhookMessage{
		MsgType:  MessageTypeMarkdown,
		Markdown: &MarkdownMsg{Content: content},
	}
	return c.sendMessage(ctx, msg)
}

// sendMessage delivers a message with retries
func (c *Client) sendMessage(ctx context.Context, msg *WebhookMessage) error {
	var lastError error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		err := c.doSendMessage(ctx, msg)
		if err == nil {
			return nil
		}

		lastError = err
		if attempt < c.maxRetries {
			logger.Warn("WeCom send failed, retrying",
				zap.Int("attempt", attempt+1),
				zap.Int("max_retries", c.maxRetries),
				zap.Error(err))
		}
	}

	return fmt.Errorf("%w: after %d retries: %v", ErrSendFailed, c.maxRetries, lastError)
}

func (c *Client) doSendMessage(ctx context.Context, msg *WebhookMessage) error {
	if c.webhookURL == "" {
		return ErrWebhookNotConfigured
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var webhookResp WebhookResponse
	if err := json.Unmarshal(respBody, &webhookResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !webhookResp.IsSuccess() {
		return fmt.Errorf("webhook error %d: %s", webhookResp.ErrCode, webhookResp.ErrMsg)
	}

	return nil
}

// Mirror adapts the client to the notifier interface. The webhook targets a
// fixed group chat, so the chat ID is noted in the message rather than used
// for routing.
type Mirror struct {
	client *Client
}

// NewMirror wraps a client as a notification channel
func NewMirror(client *Client) *Mirror {
	return &Mirror{client: client}
}

// Notify posts the text to the group webhook
func (m *Mirror) Notify(ctx context.Context, chatID int64, text string) error {
	return m.client.SendText(ctx, text)
}
