package alert

import (
	"context"
	"time"

	alertDomain "alfozan-insights/internal/domain/alert"
	"alfozan-insights/internal/domain/analytics"
)

// StaticRepository 以固定清單提供訂閱，啟動時組態決定內容。
type StaticRepository struct {
	subs []alertDomain.Subscription
}

// NewStaticRepository 建立固定清單訂閱來源。
func NewStaticRepository(subs []alertDomain.Subscription) *StaticRepository {
	return &StaticRepository{subs: subs}
}

// ListActive 回傳啟用中的訂閱。
func (r *StaticRepository) ListActive(_ context.Context) ([]alertDomain.Subscription, error) {
	out := make([]alertDomain.Subscription, 0, len(r.subs))
	for _, s := range r.subs {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out, nil
}

// DefaultSubscriptions 回傳預設警報條件：市占跌破 15% 與開發案逾期。
func DefaultSubscriptions(now time.Time) []alertDomain.Subscription {
	return []alertDomain.Subscription{
		{
			ID:        "market-share-floor",
			Name:      "Market share floor",
			Type:      alertDomain.SubscriptionMetric,
			Enabled:   true,
			Metric:    analytics.MetricMarketShare,
			Direction: alertDomain.DirectionBelow,
			Threshold: 15.0,
			Channels:  []alertDomain.Channel{alertDomain.ChannelTelegram},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        "overdue-projects",
			Name:      "Overdue projects",
			Type:      alertDomain.SubscriptionProject,
			Enabled:   true,
			Channels:  []alertDomain.Channel{alertDomain.ChannelTelegram},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
