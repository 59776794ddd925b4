package analytics

import (
	"time"

	analyticsDomain "alfozan-insights/internal/domain/analytics"
	"alfozan-insights/internal/domain/project"
	"alfozan-insights/internal/domain/reports"
	"alfozan-insights/internal/application/simulation"
)

// 模擬市占指標的基準值與擾動幅度，代表外部市調而非由案場資料推導。
const (
	marketShareBase  = 17.0
	marketShareDrift = 1.0
)

// ComputeKPIs 由完整開發案集合重算投資組合層級 KPI。
// 營收採完工比例法認列（budget × progress / 100），與銷售戶數脫鉤。
func ComputeKPIs(projects []project.Project) reports.KPISummary {
	out := reports.KPISummary{TotalProjects: len(projects)}

	completed := 0
	for _, p := range projects {
		out.TotalRevenue += p.RecognizedRevenue()
		out.TotalUnits += p.Units
		out.TotalUnitsSold += p.UnitsSold
		if p.Status == project.StatusCompleted {
			completed++
		}
	}
	if out.TotalUnits > 0 {
		out.SalesRate = float64(out.TotalUnitsSold) / float64(out.TotalUnits) * 100
	}
	if out.TotalProjects > 0 {
		out.CompletionRate = float64(completed) / float64(out.TotalProjects) * 100
		out.AvgProjectValue = out.TotalRevenue / float64(out.TotalProjects)
	}
	return out
}

// BuildPeriodMetrics 依當期月份標籤產生待 upsert 的指標列。
// 同一期間重複執行會以新值取代舊列，而非新增。src 非 nil 時
// 另外產生模擬的市占指標（17% ± 1%）。
func BuildPeriodMetrics(kpis reports.KPISummary, now time.Time, src simulation.Source) []analyticsDomain.MetricRow {
	period := analyticsDomain.PeriodLabel(now)
	rows := []analyticsDomain.MetricRow{
		{
			MetricType: analyticsDomain.MetricRevenue,
			Value:      kpis.TotalRevenue,
			Period:     period,
			Category:   analyticsDomain.CategoryFinancial,
			RecordedAt: now,
		},
		{
			MetricType: analyticsDomain.MetricUnitsSold,
			Value:      float64(kpis.TotalUnitsSold),
			Period:     period,
			Category:   analyticsDomain.CategorySales,
			RecordedAt: now,
		},
	}
	if src != nil {
		rows = append(rows, analyticsDomain.MetricRow{
			MetricType: analyticsDomain.MetricMarketShare,
			Value:      marketShareBase + src.Uniform(-marketShareDrift, marketShareDrift),
			Period:     period,
			Category:   analyticsDomain.CategoryMarket,
			RecordedAt: now,
		})
	}
	return rows
}
