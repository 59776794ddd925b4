package reports

import (
	"context"
	"fmt"
	"sort"

	appAnalytics "alfozan-insights/internal/application/analytics"
	analyticsDomain "alfozan-insights/internal/domain/analytics"
	reportsDomain "alfozan-insights/internal/domain/reports"
)

const (
	dashboardTopCompetitors = 5
	dashboardTrendPeriods   = 12
)

// BuildDashboard 以單一快照組出儀表板摘要。
func (u *UseCase) BuildDashboard(ctx context.Context) (reportsDomain.Dashboard, error) {
	d := reportsDomain.Dashboard{
		GeneratedAt:     u.now(),
		StatusBreakdown: map[string]int{},
		TypeBreakdown:   map[string]reportsDomain.TypeStat{},
	}

	projects, err := u.store.ListProjects(ctx)
	if err != nil {
		return d, fmt.Errorf("snapshot projects: %w", err)
	}
	d.Summary = appAnalytics.ComputeKPIs(projects)
	for _, p := range projects {
		d.StatusBreakdown[string(p.Status)]++
		stat := d.TypeBreakdown[string(p.Type)]
		stat.Count++
		stat.TotalBudget += p.Budget
		stat.UnitsSold += p.UnitsSold
		d.TypeBreakdown[string(p.Type)] = stat
	}

	competitors, err := u.store.ListCompetitors(ctx)
	if err != nil {
		return d, fmt.Errorf("snapshot competitors: %w", err)
	}
	for i, c := range competitors {
		if i == dashboardTopCompetitors {
			break
		}
		d.TopCompetitors = append(d.TopCompetitors, reportsDomain.CompetitorRow{
			ID:              c.ID,
			Name:            c.Name,
			MarketShare:     c.MarketShare,
			DigitalPresence: c.DigitalPresence,
			Website:         c.Website,
			Trend:           string(c.Trend),
			Change:          c.ChangePercentage,
		})
	}

	revenue, err := u.store.ListMetrics(ctx, analyticsDomain.MetricRevenue)
	if err != nil {
		return d, fmt.Errorf("snapshot metrics: %w", err)
	}
	d.RevenueTrend = lastPeriods(revenue, dashboardTrendPeriods)

	units, err := u.store.ListMetrics(ctx, analyticsDomain.MetricUnitsSold)
	if err != nil {
		return d, fmt.Errorf("snapshot metrics: %w", err)
	}
	d.UnitsSoldTrend = lastPeriods(units, dashboardTrendPeriods)
	return d, nil
}

// lastPeriods 取 RecordedAt 最新的 n 列，並依時間由舊到新排列。
// 期間標籤是月份字串，字典序不等於時間序，故以 RecordedAt 排序。
func lastPeriods(rows []analyticsDomain.MetricRow, n int) []analyticsDomain.MetricRow {
	out := make([]analyticsDomain.MetricRow, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.Before(out[j].RecordedAt) })
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}
