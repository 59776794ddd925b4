package reports

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	appAnalytics "alfozan-insights/internal/application/analytics"
	analyticsDomain "alfozan-insights/internal/domain/analytics"
	competitorDomain "alfozan-insights/internal/domain/competitor"
	"alfozan-insights/internal/domain/project"
	reportsDomain "alfozan-insights/internal/domain/reports"
)

const reportTitle = "Al Fozan Holding - Real Estate Insights"

// 固定的策略建議清單，full/comprehensive 報表附於文末。
var recommendations = []string{
	"Focus on completing high-progress projects to improve cash flow",
	"Accelerate sales efforts for projects with low sales rates",
	"Consider market expansion in underserved regions",
	"Enhance digital presence to compete with market leaders",
	"Diversify project portfolio to reduce market risk",
}

// SnapshotReader 提供產報表所需的資料快照；實作必須回傳
// 不受後續重算影響的副本。
type SnapshotReader interface {
	ListProjects(ctx context.Context) ([]project.Project, error)
	ListCompetitors(ctx context.Context) ([]competitorDomain.Competitor, error)
	ListMetrics(ctx context.Context, metricType analyticsDomain.MetricType) ([]analyticsDomain.MetricRow, error)
}

// UseCase 建構共用報表模型並分派至各格式序列化器。
type UseCase struct {
	store SnapshotReader
	dir   string
	now   func() time.Time
}

// NewUseCase 建立報表用例，dir 為產出目錄。
func NewUseCase(store SnapshotReader, dir string) *UseCase {
	return &UseCase{store: store, dir: dir, now: time.Now}
}

// BuildModel 讀取一次快照並建構三種格式共用的報表模型。
// 個別欄位缺漏以零值呈現，不會中斷產出。
func (u *UseCase) BuildModel(ctx context.Context, typ reportsDomain.Type, dateRange string) (reportsDomain.Model, error) {
	m := reportsDomain.Model{
		Title:       reportTitle,
		ReportType:  typ,
		DateRange:   dateRange,
		GeneratedAt: u.now(),
	}

	projects, err := u.store.ListProjects(ctx)
	if err != nil {
		return m, fmt.Errorf("snapshot projects: %w", err)
	}
	m.Summary = appAnalytics.ComputeKPIs(projects)

	if typ.IncludesProjects() {
		for _, p := range projects {
			m.Projects = append(m.Projects, reportsDomain.ProjectRow{
				ID:        p.ID,
				Name:      p.Name,
				Type:      string(p.Type),
				Status:    string(p.Status),
				Location:  p.Location,
				Manager:   p.Manager,
				Budget:    p.Budget,
				Progress:  p.Progress,
				Units:     p.Units,
				UnitsSold: p.UnitsSold,
				SalesRate: p.SalesRate(),
				StartDate: formatDate(p.StartDate),
				EndDate:   formatDate(p.EndDate),
			})
		}
	}

	if typ.IncludesCompetitors() {
		competitors, err := u.store.ListCompetitors(ctx)
		if err != nil {
			return m, fmt.Errorf("snapshot competitors: %w", err)
		}
		for _, c := range competitors {
			m.Competitors = append(m.Competitors, reportsDomain.CompetitorRow{
				ID:              c.ID,
				Name:            c.Name,
				MarketShare:     c.MarketShare,
				DigitalPresence: c.DigitalPresence,
				Website:         c.Website,
				Trend:           string(c.Trend),
				Change:          c.ChangePercentage,
			})
		}
	}

	if typ.IncludesMetrics() {
		metrics, err := u.store.ListMetrics(ctx, "")
		if err != nil {
			return m, fmt.Errorf("snapshot metrics: %w", err)
		}
		sort.Slice(metrics, func(i, j int) bool {
			return metrics[i].RecordedAt.Before(metrics[j].RecordedAt)
		})
		m.Metrics = metrics
	}

	if typ == reportsDomain.TypeFull || typ == reportsDomain.TypeComprehensive {
		m.Recommendations = recommendations
	}
	return m, nil
}

// Generate 產出報表檔並回傳檔名（不含路徑）。
// 先寫入暫存檔、成功後改名，失敗不會留下不完整的成品。
func (u *UseCase) Generate(ctx context.Context, typ reportsDomain.Type, format reportsDomain.Format, dateRange string) (string, error) {
	if dateRange == "" {
		dateRange = "month"
	}
	model, err := u.BuildModel(ctx, typ, dateRange)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("alfozan_%s_%s_%s.%s",
		typ, dateRange, model.GeneratedAt.Format("20060102_150405"), format.Extension())

	var render func(reportsDomain.Model, io.Writer) error
	switch format {
	case reportsDomain.FormatPDF:
		render = renderPDF
	case reportsDomain.FormatExcel:
		render = renderExcel
	case reportsDomain.FormatCSV:
		render = renderCSV
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}

	if err := u.writeArtifact(name, func(w io.Writer) error { return render(model, w) }); err != nil {
		return "", err
	}
	return name, nil
}

// ArtifactPath 回傳報表檔的完整路徑。
func (u *UseCase) ArtifactPath(name string) string {
	return filepath.Join(u.dir, filepath.Base(name))
}

func (u *UseCase) writeArtifact(name string, render func(io.Writer) error) error {
	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}
	final := filepath.Join(u.dir, name)
	tmp := final + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("render %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalize artifact: %w", err)
	}
	return nil
}

// 共用的數值格式，確保三種輸出的數字完全一致。

func formatMillions(v float64) string {
	return strconv.FormatFloat(v/1_000_000, 'f', 1, 64)
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func truncateName(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// summaryRows 回傳 KPI 摘要的標籤與數值；三種格式共用。
func summaryRows(m reportsDomain.Model) [][2]string {
	k := m.Summary
	return [][2]string{
		{"Total Projects", strconv.Itoa(k.TotalProjects)},
		{"Total Revenue (M SAR)", formatMillions(k.TotalRevenue)},
		{"Total Units", strconv.Itoa(k.TotalUnits)},
		{"Units Sold", strconv.Itoa(k.TotalUnitsSold)},
		{"Sales Rate (%)", formatPct(k.SalesRate)},
		{"Completion Rate (%)", formatPct(k.CompletionRate)},
		{"Avg Project Value (M SAR)", formatMillions(k.AvgProjectValue)},
	}
}
