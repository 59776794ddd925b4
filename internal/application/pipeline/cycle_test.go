package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	analyticsDomain "alfozan-insights/internal/domain/analytics"
	competitorDomain "alfozan-insights/internal/domain/competitor"
	"alfozan-insights/internal/domain/project"
)

type fakeStore struct {
	mu          sync.Mutex
	projects    []project.Project
	competitors []competitorDomain.Competitor
	metrics     map[string]analyticsDomain.MetricRow
	commitErr   error
	commits     int
	block       chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{metrics: make(map[string]analyticsDomain.MetricRow)}
}

func (f *fakeStore) ListProjects(context.Context) ([]project.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]project.Project, len(f.projects))
	copy(out, f.projects)
	return out, nil
}

func (f *fakeStore) ListCompetitors(context.Context) ([]competitorDomain.Competitor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]competitorDomain.Competitor, len(f.competitors))
	copy(out, f.competitors)
	return out, nil
}

func (f *fakeStore) CommitCycle(_ context.Context, result CycleResult) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.commitErr != nil {
		return f.commitErr
	}
	f.commits++
	for _, upd := range result.Projects {
		for i := range f.projects {
			if f.projects[i].ID == upd.ID {
				f.projects[i].Progress = upd.Progress
				f.projects[i].Status = upd.Status
				f.projects[i].UnitsSold = upd.UnitsSold
			}
		}
	}
	for _, upd := range result.Competitors {
		for i := range f.competitors {
			if f.competitors[i].ID == upd.ID {
				f.competitors[i].MarketShare = upd.MarketShare
				f.competitors[i].DigitalPresence = upd.DigitalPresence
				f.competitors[i].Trend = upd.Trend
			}
		}
	}
	for _, m := range result.Metrics {
		f.metrics[string(m.MetricType)+"|"+m.Period] = m
	}
	return nil
}

func dt(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestRecomputeNow_Deterministic(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.projects = []project.Project{
		{
			ID: 1, Name: "Riyadh Towers", Type: project.TypeResidential,
			Status: project.StatusInProgress, Budget: 100_000_000,
			Units: 100, UnitsSold: 40, Progress: 40,
			StartDate: dt(2024, 1, 1), EndDate: dt(2024, 12, 1),
		},
	}

	uc := NewUseCase(store, nil)
	first, err := uc.RecomputeNow(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ProjectsUpdated != 1 {
		t.Errorf("projects_updated = %d, want 1", first.ProjectsUpdated)
	}
	if first.MetricsUpdated != 2 {
		t.Errorf("metrics_updated = %d, want 2", first.MetricsUpdated)
	}

	snapshot := store.projects[0]
	if _, err := uc.RecomputeNow(context.Background(), now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 進度已收斂，第二輪銷售仍可按確定性模型前進，但進度不變。
	if store.projects[0].Progress != snapshot.Progress {
		t.Errorf("progress drifted on rerun: %d -> %d", snapshot.Progress, store.projects[0].Progress)
	}
}

func TestRunMetricsCycle_IdempotentUpsert(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.projects = []project.Project{
		{ID: 1, Name: "p", Type: project.TypeCommercial, Status: project.StatusInProgress,
			Budget: 200_000_000, Units: 50, UnitsSold: 10, Progress: 25},
	}

	uc := NewUseCase(store, nil)
	for i := 0; i < 2; i++ {
		if _, err := uc.RunMetricsCycle(context.Background(), now); err != nil {
			t.Fatalf("cycle %d failed: %v", i, err)
		}
	}

	revenueRows := 0
	unitsRows := 0
	for key, m := range store.metrics {
		if m.Period != "2024-Jun" {
			t.Errorf("unexpected period on %s: %s", key, m.Period)
		}
		switch m.MetricType {
		case analyticsDomain.MetricRevenue:
			revenueRows++
			if m.Value != 50_000_000 {
				t.Errorf("revenue = %f, want 50000000", m.Value)
			}
		case analyticsDomain.MetricUnitsSold:
			unitsRows++
		}
	}
	if revenueRows != 1 || unitsRows != 1 {
		t.Errorf("expected exactly one row per metric, got revenue=%d units=%d", revenueRows, unitsRows)
	}
}

func TestRunCycle_CommitFailureLeavesNothing(t *testing.T) {
	store := newFakeStore()
	store.projects = []project.Project{
		{ID: 1, Name: "p", Type: project.TypeResidential, Status: project.StatusInProgress,
			Budget: 10_000_000, Units: 10, UnitsSold: 0, Progress: 60,
			StartDate: dt(2024, 1, 1), EndDate: dt(2024, 12, 1)},
	}
	store.commitErr = errors.New("disk full")

	uc := NewUseCase(store, nil)
	if _, err := uc.RecomputeNow(context.Background(), time.Now()); err == nil {
		t.Fatal("expected cycle failure")
	}
	if store.projects[0].UnitsSold != 0 || len(store.metrics) != 0 {
		t.Fatal("failed cycle must not leave partial writes")
	}

	// 下一輪照常執行。
	store.commitErr = nil
	if _, err := uc.RecomputeNow(context.Background(), time.Now()); err != nil {
		t.Fatalf("next cycle should proceed: %v", err)
	}
}

func TestRunCycle_SingleFlight(t *testing.T) {
	store := newFakeStore()
	store.block = make(chan struct{})

	uc := NewUseCase(store, nil)
	done := make(chan error, 1)
	go func() {
		_, err := uc.RecomputeNow(context.Background(), time.Now())
		done <- err
	}()

	// 等第一輪進入 CommitCycle 阻塞點。
	time.Sleep(20 * time.Millisecond)
	if _, err := uc.RecomputeNow(context.Background(), time.Now()); !errors.Is(err, ErrCycleInFlight) {
		t.Fatalf("expected ErrCycleInFlight, got %v", err)
	}

	close(store.block)
	if err := <-done; err != nil {
		t.Fatalf("first cycle failed: %v", err)
	}
}

func TestRunCompetitorCycle(t *testing.T) {
	store := newFakeStore()
	store.competitors = []competitorDomain.Competitor{
		{ID: 1, Name: "Emaar", MarketShare: 49.8, DigitalPresence: 88},
	}

	uc := NewUseCase(store, fixedWalk{share: 0.5, digital: 3})
	sum, err := uc.RunCompetitorCycle(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.CompetitorsUpdated != 1 {
		t.Errorf("competitors_updated = %d, want 1", sum.CompetitorsUpdated)
	}
	if got := store.competitors[0].MarketShare; got != competitorDomain.MaxSimulatedShare {
		t.Errorf("market share = %f, want ceiling %f", got, competitorDomain.MaxSimulatedShare)
	}
}

// fixedWalk 固定回傳最大步幅，驗證夾限行為。
type fixedWalk struct {
	share   float64
	digital int
}

func (f fixedWalk) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := f.digital
	if v >= n {
		v = n - 1
	}
	return v
}

func (f fixedWalk) Uniform(lo, hi float64) float64 {
	if f.share > hi {
		return hi
	}
	if f.share < lo {
		return lo
	}
	return f.share
}
