package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	appAnalytics "alfozan-insights/internal/application/analytics"
	"alfozan-insights/internal/application/simulation"
	analyticsDomain "alfozan-insights/internal/domain/analytics"
	competitorDomain "alfozan-insights/internal/domain/competitor"
	"alfozan-insights/internal/domain/project"
)

// ErrCycleInFlight 表示已有一輪重算正在執行；整個系統同時間僅允許一輪。
var ErrCycleInFlight = errors.New("recalculation cycle already in flight")

// ProjectUpdate 為本輪對單一開發案的待寫入變更。
type ProjectUpdate struct {
	ID        int64
	Progress  int
	Status    project.Status
	UnitsSold int
}

// CompetitorUpdate 為本輪對單一競爭者的待寫入變更。
type CompetitorUpdate struct {
	ID              int64
	MarketShare     float64
	DigitalPresence int
	Trend           competitorDomain.Trend
}

// CycleResult 彙整一輪重算的全部寫入，必須整批成功或整批放棄。
type CycleResult struct {
	Projects    []ProjectUpdate
	Competitors []CompetitorUpdate
	Metrics     []analyticsDomain.MetricRow
}

// CycleSummary 回報一輪重算實際更動的筆數。
type CycleSummary struct {
	ProjectsUpdated    int `json:"projects_updated"`
	SalesUpdated       int `json:"sales_updated"`
	MetricsUpdated     int `json:"metrics_updated"`
	CompetitorsUpdated int `json:"competitors_updated"`
}

// Store 定義重算管線所需的持久層操作。CommitCycle 必須具交易性：
// 任何寫入失敗時不得留下本輪的部分結果。
type Store interface {
	ListProjects(ctx context.Context) ([]project.Project, error)
	ListCompetitors(ctx context.Context) ([]competitorDomain.Competitor, error)
	CommitCycle(ctx context.Context, result CycleResult) error
}

// UseCase 串接進度推估、銷售模擬與 KPI 彙總，為排程器與 API 的共同入口。
type UseCase struct {
	store Store
	src   simulation.Source
	mu    sync.Mutex
}

// NewUseCase 建立重算管線。src 為模擬路徑使用的亂數來源。
func NewUseCase(store Store, src simulation.Source) *UseCase {
	return &UseCase{store: store, src: src}
}

// stages 控制單輪要執行哪些階段；排程器以不同節奏觸發個別階段。
type stages struct {
	progress bool
	sales    bool
	metrics  bool
}

var allStages = stages{progress: true, sales: true, metrics: true}

// RunCycle 執行完整一輪：進度 → 銷售 → 指標，含隨機擾動。
func (u *UseCase) RunCycle(ctx context.Context, now time.Time) (CycleSummary, error) {
	return u.runProjects(ctx, now, u.src, allStages)
}

// RecomputeNow 為 API 觸發的確定性重算路徑，不帶任何擾動，
// 相同輸入必得相同結果。
func (u *UseCase) RecomputeNow(ctx context.Context, now time.Time) (CycleSummary, error) {
	return u.runProjects(ctx, now, nil, allStages)
}

// RunProgressCycle 僅重算工程進度與狀態。
func (u *UseCase) RunProgressCycle(ctx context.Context, now time.Time) (CycleSummary, error) {
	return u.runProjects(ctx, now, u.src, stages{progress: true})
}

// RunSalesCycle 僅模擬銷售去化。
func (u *UseCase) RunSalesCycle(ctx context.Context, now time.Time) (CycleSummary, error) {
	return u.runProjects(ctx, now, u.src, stages{sales: true})
}

// RunMetricsCycle 僅重算並 upsert 當期指標列。
func (u *UseCase) RunMetricsCycle(ctx context.Context, now time.Time) (CycleSummary, error) {
	return u.runProjects(ctx, now, u.src, stages{metrics: true})
}

func (u *UseCase) runProjects(ctx context.Context, now time.Time, src simulation.Source, st stages) (CycleSummary, error) {
	if !u.mu.TryLock() {
		return CycleSummary{}, ErrCycleInFlight
	}
	defer u.mu.Unlock()

	projects, err := u.store.ListProjects(ctx)
	if err != nil {
		return CycleSummary{}, fmt.Errorf("list projects: %w", err)
	}

	var summary CycleSummary
	var updates []ProjectUpdate

	// 對整輪操作的是暫存副本；正本僅在 CommitCycle 時變動。
	for i := range projects {
		p := &projects[i]
		if p.Status == project.StatusCompleted {
			continue
		}
		changed := false

		if st.progress {
			var prog simulation.ProgressUpdate
			if src != nil {
				prog = simulation.SimulateProgress(*p, now, src)
			} else {
				prog = simulation.EstimateProgress(*p, now)
			}
			if prog.Changed {
				summary.ProjectsUpdated++
				changed = true
			}
			p.Progress = prog.Progress
			p.Status = prog.Status
		}

		if st.sales && p.Status != project.StatusPlanning && p.UnitsSold < p.Units {
			var sales simulation.SalesUpdate
			if src != nil {
				sales = simulation.SimulateSales(*p, src)
			} else {
				sales = simulation.ProjectSales(*p)
			}
			if sales.NewSales > 0 {
				summary.SalesUpdated++
				changed = true
			}
			p.UnitsSold = sales.UnitsSold
		}

		if changed {
			updates = append(updates, ProjectUpdate{
				ID:        p.ID,
				Progress:  p.Progress,
				Status:    p.Status,
				UnitsSold: p.UnitsSold,
			})
		}
	}

	var metrics []analyticsDomain.MetricRow
	if st.metrics {
		kpis := appAnalytics.ComputeKPIs(projects)
		metrics = appAnalytics.BuildPeriodMetrics(kpis, now, src)
		summary.MetricsUpdated = len(metrics)
	}

	result := CycleResult{Projects: updates, Metrics: metrics}
	if err := u.store.CommitCycle(ctx, result); err != nil {
		return CycleSummary{}, fmt.Errorf("commit cycle: %w", err)
	}
	return summary, nil
}

// RunCompetitorCycle 以有界隨機漫步更新全部競爭者。
func (u *UseCase) RunCompetitorCycle(ctx context.Context) (CycleSummary, error) {
	if !u.mu.TryLock() {
		return CycleSummary{}, ErrCycleInFlight
	}
	defer u.mu.Unlock()

	competitors, err := u.store.ListCompetitors(ctx)
	if err != nil {
		return CycleSummary{}, fmt.Errorf("list competitors: %w", err)
	}

	var updates []CompetitorUpdate
	for _, c := range competitors {
		upd := simulation.SimulateCompetitor(c, u.src)
		updates = append(updates, CompetitorUpdate{
			ID:              c.ID,
			MarketShare:     upd.MarketShare,
			DigitalPresence: upd.DigitalPresence,
			Trend:           upd.Trend,
		})
	}

	if err := u.store.CommitCycle(ctx, CycleResult{Competitors: updates}); err != nil {
		return CycleSummary{}, fmt.Errorf("commit competitor cycle: %w", err)
	}
	return CycleSummary{CompetitorsUpdated: len(updates)}, nil
}
