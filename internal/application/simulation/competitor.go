package simulation

import (
	"alfozan-insights/internal/domain/competitor"
)

// 競爭者隨機漫步參數。
const (
	shareWalkRange  = 0.5
	digitalWalkMin  = -2
	digitalWalkMax  = 3
	maxDigitalScore = 100
)

// CompetitorUpdate 為單一競爭者的模擬更新結果。
type CompetitorUpdate struct {
	MarketShare     float64
	DigitalPresence int
	Trend           competitor.Trend
}

// SimulateCompetitor 以有界隨機漫步更新市占與數位聲量。
// 市占夾在 [0, MaxSimulatedShare]，數位聲量夾在 [0, 100]。
func SimulateCompetitor(c competitor.Competitor, src Source) CompetitorUpdate {
	share := c.MarketShare + src.Uniform(-shareWalkRange, shareWalkRange)
	if share < 0 {
		share = 0
	}
	if share > competitor.MaxSimulatedShare {
		share = competitor.MaxSimulatedShare
	}

	digital := c.DigitalPresence + intBetween(src, digitalWalkMin, digitalWalkMax)
	digital = clampInt(digital, 0, maxDigitalScore)

	trend := competitor.TrendStable
	switch {
	case share > c.MarketShare:
		trend = competitor.TrendUp
	case share < c.MarketShare:
		trend = competitor.TrendDown
	}

	return CompetitorUpdate{
		MarketShare:     share,
		DigitalPresence: digital,
		Trend:           trend,
	}
}
