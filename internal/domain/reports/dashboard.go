package reports

import (
	"time"

	"alfozan-insights/internal/domain/analytics"
)

// Dashboard 聚合儀表板一次載入所需的全部摘要。
type Dashboard struct {
	GeneratedAt     time.Time             `json:"generated_at"`
	Summary         KPISummary            `json:"summary"`
	StatusBreakdown map[string]int        `json:"status_breakdown"`
	TypeBreakdown   map[string]TypeStat   `json:"type_breakdown"`
	TopCompetitors  []CompetitorRow       `json:"top_competitors"`
	RevenueTrend    []analytics.MetricRow `json:"revenue_trend"`
	UnitsSoldTrend  []analytics.MetricRow `json:"units_sold_trend"`
}

// TypeStat 描述單一開發案類型的規模。
type TypeStat struct {
	Count       int     `json:"count"`
	TotalBudget float64 `json:"total_budget"`
	UnitsSold   int     `json:"units_sold"`
}
