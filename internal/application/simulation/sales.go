package simulation

import (
	"alfozan-insights/internal/domain/project"
)

// 銷售模型參數：依案型的每期基礎去化率，與開始銷售的進度門檻。
const (
	salesProgressFloor = 20
	defaultSalesRate   = 0.10
)

var baseSalesRates = map[project.Type]float64{
	project.TypeResidential: 0.15,
	project.TypeCommercial:  0.08,
	project.TypeIndustrial:  0.05,
}

// SalesUpdate 為單一開發案的銷售推估結果。
type SalesUpdate struct {
	UnitsSold int
	NewSales  int
}

// maxNewSales 計算本期可售出的上限：可售戶數 × 基礎去化率 × 進度乘數。
// 進度乘數隨工程進度線性放大，上限 2 倍。
func maxNewSales(p project.Project) int {
	available := p.Units - p.UnitsSold
	if available <= 0 || p.Progress <= salesProgressFloor {
		return 0
	}
	rate, ok := baseSalesRates[p.Type]
	if !ok {
		rate = defaultSalesRate
	}
	multiplier := float64(p.Progress) / 50
	if multiplier > 2.0 {
		multiplier = 2.0
	}
	return int(float64(available) * rate * multiplier)
}

// ProjectSales 確定性路徑：直接以本期上限作為新增銷售。
func ProjectSales(p project.Project) SalesUpdate {
	return applySales(p, maxNewSales(p))
}

// SimulateSales 模擬路徑：在 [0, max(1, 上限)] 內隨機取樣，
// 即使上限捨入為 0 也保留售出一戶的可能，避免永久停滯。
func SimulateSales(p project.Project, src Source) SalesUpdate {
	available := p.Units - p.UnitsSold
	if available <= 0 || p.Progress <= salesProgressFloor {
		return SalesUpdate{UnitsSold: p.UnitsSold}
	}
	limit := maxNewSales(p)
	if limit < 1 {
		limit = 1
	}
	return applySales(p, intBetween(src, 0, limit))
}

func applySales(p project.Project, newSales int) SalesUpdate {
	sold := p.UnitsSold + newSales
	if sold > p.Units {
		sold = p.Units
	}
	return SalesUpdate{UnitsSold: sold, NewSales: sold - p.UnitsSold}
}
