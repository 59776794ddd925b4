package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsDomain "alfozan-insights/internal/domain/analytics"
)

func TestBuildDashboard(t *testing.T) {
	uc := newTestUseCase(t, snapshotFixture())
	d, err := uc.BuildDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 150_000_000.0, d.Summary.TotalRevenue)
	assert.Equal(t, 2, d.StatusBreakdown["In Progress"])
	assert.Equal(t, 1, d.StatusBreakdown["Completed"])

	res := d.TypeBreakdown["Residential"]
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, 100_000_000.0, res.TotalBudget)
	assert.Equal(t, 80, res.UnitsSold)

	require.Len(t, d.TopCompetitors, 1)
	assert.Equal(t, "Emaar Middle East", d.TopCompetitors[0].Name)
	require.Len(t, d.RevenueTrend, 1)
	assert.Equal(t, "2024-Jun", d.RevenueTrend[0].Period)
}

func TestLastPeriods_TrimsAndOrdersByRecordedAt(t *testing.T) {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	rows := make([]analyticsDomain.MetricRow, 0, 15)
	for i := 0; i < 15; i++ {
		at := base.AddDate(0, i, 0)
		rows = append(rows, analyticsDomain.MetricRow{
			MetricType: analyticsDomain.MetricRevenue,
			Period:     analyticsDomain.PeriodLabel(at),
			RecordedAt: at,
		})
	}
	// 打亂輸入順序，確認以 RecordedAt 而非字典序排序
	rows[0], rows[14] = rows[14], rows[0]

	out := lastPeriods(rows, 12)
	require.Len(t, out, 12)
	assert.Equal(t, "2024-Apr", out[0].Period)
	assert.Equal(t, "2025-Mar", out[11].Period)
	for i := 1; i < len(out); i++ {
		assert.True(t, out[i-1].RecordedAt.Before(out[i].RecordedAt))
	}
}
