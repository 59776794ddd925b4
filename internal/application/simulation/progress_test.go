package simulation

import (
	"testing"
	"time"

	"alfozan-insights/internal/domain/project"
)

// scriptedSource 依序回放固定值，讓模擬路徑可重現。
type scriptedSource struct {
	ints     []int
	floats   []float64
	intIdx   int
	floatIdx int
}

func (s *scriptedSource) Intn(n int) int {
	if n <= 0 || len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.intIdx%len(s.ints)]
	s.intIdx++
	return v % n
}

func (s *scriptedSource) Uniform(lo, hi float64) float64 {
	if len(s.floats) == 0 {
		return lo
	}
	v := s.floats[s.floatIdx%len(s.floats)]
	s.floatIdx++
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestEstimateProgress(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		project      project.Project
		wantProgress int
		wantStatus   project.Status
	}{
		{
			name: "Midway",
			project: project.Project{
				Status:    project.StatusInProgress,
				StartDate: datePtr(2024, 1, 1),
				EndDate:   datePtr(2024, 12, 1),
				Progress:  10,
			},
			// 166 elapsed / 335 total
			wantProgress: 50,
			wantStatus:   project.StatusInProgress,
		},
		{
			name: "BeforeStartClampsToZero",
			project: project.Project{
				Status:    project.StatusPlanning,
				StartDate: datePtr(2024, 7, 1),
				EndDate:   datePtr(2025, 7, 1),
				Progress:  0,
			},
			wantProgress: 0,
			wantStatus:   project.StatusPlanning,
		},
		{
			name: "PastEndClampsToHundred",
			project: project.Project{
				Status:    project.StatusInProgress,
				StartDate: datePtr(2023, 1, 1),
				EndDate:   datePtr(2024, 1, 1),
				Progress:  90,
			},
			wantProgress: 100,
			wantStatus:   project.StatusCompleted,
		},
		{
			name: "MissingDatesNoOp",
			project: project.Project{
				Status:   project.StatusPlanning,
				Progress: 37,
			},
			wantProgress: 37,
			wantStatus:   project.StatusPlanning,
		},
		{
			name: "ReversedRangeNoOp",
			project: project.Project{
				Status:    project.StatusInProgress,
				StartDate: datePtr(2024, 6, 1),
				EndDate:   datePtr(2024, 5, 1),
				Progress:  42,
			},
			wantProgress: 42,
			wantStatus:   project.StatusInProgress,
		},
		{
			name: "ZeroDurationNoOp",
			project: project.Project{
				Status:    project.StatusPlanning,
				StartDate: datePtr(2024, 6, 1),
				EndDate:   datePtr(2024, 6, 1),
				Progress:  5,
			},
			wantProgress: 5,
			wantStatus:   project.StatusPlanning,
		},
		{
			name: "CompletedNeverRegresses",
			project: project.Project{
				Status:    project.StatusCompleted,
				StartDate: datePtr(2024, 1, 1),
				EndDate:   datePtr(2024, 12, 1),
				Progress:  100,
			},
			wantProgress: 50,
			wantStatus:   project.StatusCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateProgress(tt.project, now)
			if got.Progress != tt.wantProgress {
				t.Errorf("progress = %d, want %d", got.Progress, tt.wantProgress)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestSimulateProgress_PerturbationBounded(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	p := project.Project{
		Status:    project.StatusInProgress,
		StartDate: datePtr(2024, 1, 1),
		EndDate:   datePtr(2024, 12, 1),
		Progress:  10,
	}
	base := EstimateProgress(p, now).Progress

	src := NewSource(7)
	for i := 0; i < 500; i++ {
		got := SimulateProgress(p, now, src)
		if got.Progress < 0 || got.Progress > 100 {
			t.Fatalf("progress out of bounds: %d", got.Progress)
		}
		diff := got.Progress - base
		if diff < perturbMin || diff > perturbMax {
			t.Fatalf("perturbation out of range: %d", diff)
		}
	}
}

func TestSimulateProgress_MissingDatesIgnoresSource(t *testing.T) {
	p := project.Project{Status: project.StatusPlanning, Progress: 12}
	got := SimulateProgress(p, time.Now(), &scriptedSource{ints: []int{9}})
	if got.Progress != 12 || got.Changed {
		t.Fatalf("expected no-op, got %+v", got)
	}
}
