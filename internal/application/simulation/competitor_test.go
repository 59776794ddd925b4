package simulation

import (
	"testing"

	"alfozan-insights/internal/domain/competitor"
)

func TestSimulateCompetitor_ShareCeiling(t *testing.T) {
	c := competitor.Competitor{Name: "Saudi Real Estate Co", MarketShare: 49.8, DigitalPresence: 70}
	src := NewSource(3)

	for i := 0; i < 500; i++ {
		got := SimulateCompetitor(c, src)
		if got.MarketShare > competitor.MaxSimulatedShare {
			t.Fatalf("market share exceeded ceiling: %f", got.MarketShare)
		}
		if got.MarketShare < 0 {
			t.Fatalf("market share went negative: %f", got.MarketShare)
		}
	}
}

func TestSimulateCompetitor_DigitalBounds(t *testing.T) {
	tests := []struct {
		name    string
		digital int
	}{
		{"AtFloor", 0},
		{"AtCeiling", 100},
		{"Middle", 55},
	}
	src := NewSource(5)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := competitor.Competitor{Name: "x", MarketShare: 20, DigitalPresence: tt.digital}
			for i := 0; i < 200; i++ {
				got := SimulateCompetitor(c, src)
				if got.DigitalPresence < 0 || got.DigitalPresence > 100 {
					t.Fatalf("digital presence out of bounds: %d", got.DigitalPresence)
				}
			}
		})
	}
}

func TestSimulateCompetitor_Trend(t *testing.T) {
	c := competitor.Competitor{Name: "x", MarketShare: 20, DigitalPresence: 50}

	up := SimulateCompetitor(c, &scriptedSource{floats: []float64{0.4}, ints: []int{0}})
	if up.Trend != competitor.TrendUp {
		t.Errorf("expected up trend, got %s", up.Trend)
	}
	down := SimulateCompetitor(c, &scriptedSource{floats: []float64{-0.4}, ints: []int{0}})
	if down.Trend != competitor.TrendDown {
		t.Errorf("expected down trend, got %s", down.Trend)
	}
}
