package alert

import (
	"fmt"
	"time"

	"alfozan-insights/internal/domain/analytics"
)

// SubscriptionType 列舉訂閱類型。
type SubscriptionType string

const (
	// SubscriptionMetric 監控單一 KPI 指標是否越過門檻。
	SubscriptionMetric SubscriptionType = "metric"
	// SubscriptionProject 監控逾期未完工的開發案。
	SubscriptionProject SubscriptionType = "project"
)

// Direction 定義門檻比較方向。
type Direction string

const (
	DirectionBelow Direction = "below"
	DirectionAbove Direction = "above"
)

// Channel 支援的通知通道。
type Channel string

const (
	ChannelTelegram Channel = "telegram"
	ChannelWebhook  Channel = "webhook"
	ChannelLog      Channel = "log"
)

// Subscription 定義警報條件與通道。
type Subscription struct {
	ID          string
	Name        string
	Type        SubscriptionType
	Enabled     bool
	Metric      analytics.MetricType // 針對 metric 訂閱
	Direction   Direction
	Threshold   float64
	Channels    []Channel
	WebhookURL  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastFiredAt *time.Time
}

// Validate 基本欄位檢查。
func (s Subscription) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	switch s.Type {
	case SubscriptionMetric, SubscriptionProject:
	default:
		return fmt.Errorf("unsupported subscription type")
	}
	if len(s.Channels) == 0 {
		return fmt.Errorf("channels is required")
	}
	for _, ch := range s.Channels {
		switch ch {
		case ChannelTelegram, ChannelWebhook, ChannelLog:
		default:
			return fmt.Errorf("unsupported channel: %s", ch)
		}
	}
	if s.Type == SubscriptionMetric {
		if s.Metric == "" {
			return fmt.Errorf("metric required for metric subscription")
		}
		switch s.Direction {
		case DirectionBelow, DirectionAbove:
		default:
			return fmt.Errorf("unsupported direction")
		}
	}
	return nil
}
