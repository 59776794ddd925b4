package alert

import "time"

// Notification 封裝通知內容摘要。
type Notification struct {
	SubscriptionID   string
	SubscriptionName string
	Type             SubscriptionType
	At               time.Time
	Message          string
	Metric           *MetricReading
	Projects         []ProjectSummary
	Channel          Channel
}

// MetricReading 記錄觸發警報的指標讀值。
type MetricReading struct {
	Metric    string
	Value     float64
	Threshold float64
	Period    string
}

// ProjectSummary 提供通知中顯示的開發案摘要。
type ProjectSummary struct {
	ID       int64
	Name     string
	Status   string
	Progress int
	EndDate  *time.Time
}
