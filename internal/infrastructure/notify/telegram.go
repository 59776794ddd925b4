package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	alertDomain "alfozan-insights/internal/domain/alert"
)

// TelegramClient 提供簡單的 sendMessage API 封裝。
type TelegramClient struct {
	token      string
	chatID     int64
	prefix     string
	baseURL    string
	httpClient *http.Client
}

func NewTelegramClient(token string, chatID int64, prefix string) *TelegramClient {
	return &TelegramClient{
		token:   token,
		chatID:  chatID,
		prefix:  prefix,
		baseURL: "https://api.telegram.org",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send 將警報通知格式化後推送；非 telegram 通道僅落到日誌。
func (c *TelegramClient) Send(ctx context.Context, n alertDomain.Notification) error {
	if n.Channel != alertDomain.ChannelTelegram {
		return fmt.Errorf("unsupported channel: %s", n.Channel)
	}
	return c.SendMessage(ctx, formatNotification(n))
}

// SendMessage 將文字訊息推送到指定 chat。
func (c *TelegramClient) SendMessage(ctx context.Context, text string) error {
	if c == nil {
		return fmt.Errorf("telegram client is nil")
	}
	if c.token == "" || c.chatID == 0 {
		return fmt.Errorf("telegram token or chat_id missing")
	}

	fullText := text
	if c.prefix != "" {
		fullText = fmt.Sprintf("[%s] %s", c.prefix, text)
	}

	payload := map[string]interface{}{
		"chat_id": c.chatID,
		"text":    fullText,
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram send failed status=%d body=%s", resp.StatusCode, string(raw))
	}
	return nil
}

// formatNotification 組出訊息本文：標題一行，明細逐行。
func formatNotification(n alertDomain.Notification) string {
	var b strings.Builder
	b.WriteString(n.Message)
	if n.Metric != nil {
		fmt.Fprintf(&b, "\nperiod=%s value=%.2f threshold=%.2f", n.Metric.Period, n.Metric.Value, n.Metric.Threshold)
	}
	for _, p := range n.Projects {
		fmt.Fprintf(&b, "\n- %s (%s, %d%%)", p.Name, p.Status, p.Progress)
	}
	return b.String()
}
