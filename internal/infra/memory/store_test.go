package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"alfozan-insights/internal/application/pipeline"
	analyticsDomain "alfozan-insights/internal/domain/analytics"
	authDomain "alfozan-insights/internal/domain/auth"
	"alfozan-insights/internal/domain/project"
)

func TestProjectCRUD(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	id, err := store.CreateProject(ctx, project.Project{Name: "A", Budget: 1_000_000, Units: 10})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	got, err := store.GetProject(ctx, id)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.Name != "A" {
		t.Fatalf("unexpected project: %+v", got)
	}

	got.Progress = 30
	if err := store.UpdateProject(ctx, got); err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	updated, _ := store.GetProject(ctx, id)
	if updated.Progress != 30 {
		t.Fatalf("update not applied: %+v", updated)
	}

	if err := store.DeleteProject(ctx, id); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if _, err := store.GetProject(ctx, id); !errors.Is(err, project.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListProjects_SortedCopies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	for _, name := range []string{"C", "A", "B"} {
		if _, err := store.CreateProject(ctx, project.Project{Name: name}); err != nil {
			t.Fatalf("CreateProject: %v", err)
		}
	}

	list, err := store.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(list) != 3 || list[0].ID != 1 || list[2].ID != 3 {
		t.Fatalf("expected ID-sorted list, got %+v", list)
	}

	// 修改回傳值不得影響正本
	list[0].Name = "mutated"
	fresh, _ := store.GetProject(ctx, list[0].ID)
	if fresh.Name == "mutated" {
		t.Fatal("list returned a reference to internal state")
	}
}

func TestCommitCycle_MetricUpsert(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	first := pipeline.CycleResult{Metrics: []analyticsDomain.MetricRow{
		{MetricType: analyticsDomain.MetricRevenue, Value: 100, Period: "2024-Jun", Category: analyticsDomain.CategoryFinancial},
	}}
	if err := store.CommitCycle(ctx, first); err != nil {
		t.Fatalf("CommitCycle: %v", err)
	}
	second := pipeline.CycleResult{Metrics: []analyticsDomain.MetricRow{
		{MetricType: analyticsDomain.MetricRevenue, Value: 120, Period: "2024-Jun", Category: analyticsDomain.CategoryFinancial},
	}}
	if err := store.CommitCycle(ctx, second); err != nil {
		t.Fatalf("CommitCycle: %v", err)
	}

	rows, err := store.ListMetrics(ctx, analyticsDomain.MetricRevenue)
	if err != nil {
		t.Fatalf("ListMetrics: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected single upserted row, got %d", len(rows))
	}
	if rows[0].Value != 120 {
		t.Fatalf("expected value replaced, got %v", rows[0].Value)
	}
	if rows[0].ID != 1 {
		t.Fatalf("expected upsert to keep row ID, got %d", rows[0].ID)
	}
}

func TestCommitCycle_RejectsUnknownRowsAtomically(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	id, _ := store.CreateProject(ctx, project.Project{Name: "A", Progress: 10})

	result := pipeline.CycleResult{
		Projects: []pipeline.ProjectUpdate{
			{ID: id, Progress: 50, Status: project.StatusInProgress},
			{ID: 999, Progress: 50, Status: project.StatusInProgress},
		},
		Metrics: []analyticsDomain.MetricRow{
			{MetricType: analyticsDomain.MetricRevenue, Value: 1, Period: "2024-Jun"},
		},
	}
	if err := store.CommitCycle(ctx, result); !errors.Is(err, project.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// 整批拒絕：合法列與指標都不得寫入
	p, _ := store.GetProject(ctx, id)
	if p.Progress != 10 {
		t.Fatalf("partial commit leaked: %+v", p)
	}
	rows, _ := store.ListMetrics(ctx, "")
	if len(rows) != 0 {
		t.Fatalf("partial commit wrote metrics: %+v", rows)
	}
}

func TestListCompetitors_SortedByShare(t *testing.T) {
	store := NewStore()
	store.SeedDemo(time.Now())

	list, err := store.ListCompetitors(context.Background())
	if err != nil {
		t.Fatalf("ListCompetitors: %v", err)
	}
	if len(list) != 5 {
		t.Fatalf("expected 5 seeded competitors, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].MarketShare > list[i-1].MarketShare {
			t.Fatalf("not sorted by share desc: %+v", list)
		}
	}
}

func TestSeedUsers(t *testing.T) {
	store := NewStore()
	store.SeedUsers()

	u, err := store.FindByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if u.Role != authDomain.RoleAdmin || !u.IsActive() {
		t.Fatalf("unexpected admin user: %+v", u)
	}
	if u.Password == "alfozan2024" {
		t.Fatal("password stored in plaintext")
	}

	byID, err := store.FindByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID.Username != "admin" {
		t.Fatalf("FindByID mismatch: %+v", byID)
	}

	if _, err := store.FindByUsername(context.Background(), "ghost"); !errors.Is(err, authDomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
