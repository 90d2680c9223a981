package wechat

// MessageType is the webhook message type
type MessageType string

const (
	MessageTypeText     MessageType = "text"
	MessageTypeMarkdown MessageType = "markdown"
)

// WebhookMessage is the WeCom group robot webhook payload
type WebhookMessage struct {
	MsgType  MessageType  `json:"msgtype"`
	Text     *TextMsg     `json:"text,omitempty"`
	Markdown *MarkdownMsg `json:"markdown,omitempty"`
}

// TextMsg is a plain text message
type TextMsg struct {
	Content             string   `json:"content"`
	MentionedList       []string `json:"mentioned_list,omitempty"`
	MentionedMobileList []string `json:"mentioned_mobile_list,omitempty"`
}

// MarkdownMsg is a markdown message
type MarkdownMsg struct {
	Content string `json:"content"`
}

// WebhookResponse is the webhook API response
type WebhookResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// IsSuccess reports whether the webhook accepted the message
func (r *WebhookResponse) IsSuccess() bool {
	return r.ErrCode == 0
}
