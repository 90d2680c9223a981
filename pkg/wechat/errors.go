package wechat

import "errors"

var (
	// ErrWebhookNotConfigured indicates the webhook URL is empty
	ErrWebhookNotConfigured = errors.New("wechat webhook URL not configured")

	// ErrSendFailed indicates the webhook rejected the message after all
	// retries were spent
	ErrSendFailed = errors.New("wechat message send failed")
)
