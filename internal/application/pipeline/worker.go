package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"alfozan-insights/internal/domain/reports"

	"github.com/robfig/cron/v3"
)

// ReportGenerator 供每日排程產出報表。
type ReportGenerator interface {
	Generate(ctx context.Context, typ reports.Type, format reports.Format, dateRange string) (string, error)
}

// Schedule 定義各階段的 cron 表達式。
type Schedule struct {
	Progress    string
	Sales       string
	Metrics     string
	Competitors string
	DailyReport string
	FullCycle   string
}

// Alerter 在指標重算後評估警報條件。
type Alerter interface {
	Run(ctx context.Context, date time.Time) error
}

// Worker 依不同節奏觸發管線各階段；各階段嚴格循序執行，
// 同一時間最多一輪重算在途。
type Worker struct {
	cron     *cron.Cron
	uc       *UseCase
	reporter ReportGenerator
	alerter  Alerter
	now      func() time.Time
}

// NewWorker 建立排程工作者。
func NewWorker(uc *UseCase, reporter ReportGenerator) *Worker {
	return &Worker{
		cron:     cron.New(),
		uc:       uc,
		reporter: reporter,
		now:      time.Now,
	}
}

// WithAlerter 掛上警報引擎；為 nil 時停用評估。
func (w *Worker) WithAlerter(a Alerter) *Worker {
	w.alerter = a
	return w
}

// Register 掛載全部排程任務。
func (w *Worker) Register(s Schedule) error {
	jobs := []struct {
		name string
		spec string
		fn   func()
	}{
		{"progress", s.Progress, w.progressJob},
		{"sales", s.Sales, w.salesJob},
		{"metrics", s.Metrics, w.metricsJob},
		{"competitors", s.Competitors, w.competitorJob},
		{"daily-report", s.DailyReport, w.dailyReportJob},
		{"full-cycle", s.FullCycle, w.fullCycleJob},
	}
	for _, j := range jobs {
		if j.spec == "" {
			continue
		}
		if _, err := w.cron.AddFunc(j.spec, j.fn); err != nil {
			return fmt.Errorf("register %s job: %w", j.name, err)
		}
	}
	return nil
}

// Start 啟動排程。
func (w *Worker) Start() {
	w.cron.Start()
	log.Printf("[Worker] scheduler started")
}

// Stop 停止排程並等待在途任務結束。
func (w *Worker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	log.Printf("[Worker] scheduler stopped")
}

// RunFullCycleNow 立即執行完整一輪（啟動時或手動觸發用）。
func (w *Worker) RunFullCycleNow() {
	w.fullCycleJob()
}

func (w *Worker) progressJob() {
	w.run("progress", func(ctx context.Context) (CycleSummary, error) {
		return w.uc.RunProgressCycle(ctx, w.now())
	})
}

func (w *Worker) salesJob() {
	w.run("sales", func(ctx context.Context) (CycleSummary, error) {
		return w.uc.RunSalesCycle(ctx, w.now())
	})
}

func (w *Worker) metricsJob() {
	w.run("metrics", func(ctx context.Context) (CycleSummary, error) {
		return w.uc.RunMetricsCycle(ctx, w.now())
	})
	w.evaluateAlerts()
}

func (w *Worker) competitorJob() {
	w.run("competitors", func(ctx context.Context) (CycleSummary, error) {
		return w.uc.RunCompetitorCycle(ctx)
	})
}

func (w *Worker) fullCycleJob() {
	w.run("full-cycle", func(ctx context.Context) (CycleSummary, error) {
		return w.uc.RunCycle(ctx, w.now())
	})
	w.competitorJob()
	w.evaluateAlerts()
	w.dailyReportJob()
}

func (w *Worker) evaluateAlerts() {
	if w.alerter == nil {
		return
	}
	if err := w.alerter.Run(context.Background(), w.now()); err != nil {
		log.Printf("[Worker] alert evaluation failed: %v", err)
	}
}

func (w *Worker) dailyReportJob() {
	if w.reporter == nil {
		return
	}
	ctx := context.Background()
	name, err := w.reporter.Generate(ctx, reports.TypeFull, reports.FormatPDF, "day")
	if err != nil {
		log.Printf("[Worker] daily report failed: %v", err)
		return
	}
	log.Printf("[Worker] daily report generated: %s", name)
}

// run 執行單一階段。失敗僅記錄，下一次排程觸發即為重試。
func (w *Worker) run(name string, fn func(ctx context.Context) (CycleSummary, error)) {
	summary, err := fn(context.Background())
	if err != nil {
		log.Printf("[Worker] %s cycle failed: %v", name, err)
		return
	}
	log.Printf("[Worker] %s cycle done: projects=%d sales=%d metrics=%d competitors=%d",
		name, summary.ProjectsUpdated, summary.SalesUpdated, summary.MetricsUpdated, summary.CompetitorsUpdated)
}
