package analytics

import (
	"fmt"
	"time"
)

// MetricType 區分時間序列指標種類。
type MetricType string

const (
	MetricRevenue     MetricType = "revenue"
	MetricUnitsSold   MetricType = "units_sold"
	MetricMarketShare MetricType = "market_share"
)

// 指標分類標籤。
const (
	CategoryFinancial = "financial"
	CategorySales     = "sales"
	CategoryMarket    = "market"
)

// MetricRow 為以 (metric_type, period) 為鍵的月度指標列，upsert 時整列取代。
type MetricRow struct {
	ID         int64      `json:"id,omitempty"`
	MetricType MetricType `json:"metric_type"`
	Value      float64    `json:"metric_value"`
	Period     string     `json:"period"`
	Category   string     `json:"category"`
	RecordedAt time.Time  `json:"recorded_at"`
}

// Validate 檢查指標列合理性。
func (m MetricRow) Validate() error {
	if m.MetricType == "" {
		return fmt.Errorf("metric_type is required")
	}
	if m.Period == "" {
		return fmt.Errorf("period is required")
	}
	return nil
}

// PeriodLabel 依月份產生週期標籤，例如 "2024-Jan"。
func PeriodLabel(t time.Time) string {
	return t.Format("2006-Jan")
}
