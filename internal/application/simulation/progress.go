package simulation

import (
	"math"
	"time"

	"alfozan-insights/internal/domain/project"
)

// 模擬進度時的擾動範圍，模擬實際工期落差。
const (
	perturbMin = -5
	perturbMax = 10
)

// ProgressUpdate 為單一開發案的進度推估結果。
type ProgressUpdate struct {
	Progress int
	Status   project.Status
	Changed  bool
}

// EstimateProgress 依起迄日期與現在時間推估完工百分比（確定性路徑）。
// 日期缺漏或工期非正值時視為無法推估，維持原值不動。
func EstimateProgress(p project.Project, now time.Time) ProgressUpdate {
	return estimate(p, now, nil)
}

// SimulateProgress 與 EstimateProgress 相同，但加上有界隨機擾動。
func SimulateProgress(p project.Project, now time.Time, src Source) ProgressUpdate {
	return estimate(p, now, src)
}

func estimate(p project.Project, now time.Time, src Source) ProgressUpdate {
	unchanged := ProgressUpdate{Progress: p.Progress, Status: p.Status}
	if p.StartDate == nil || p.EndDate == nil {
		return unchanged
	}
	totalDays := int(p.EndDate.Sub(*p.StartDate).Hours() / 24)
	if totalDays <= 0 {
		return unchanged
	}
	elapsedDays := now.Sub(*p.StartDate).Hours() / 24

	progress := int(math.Round(elapsedDays / float64(totalDays) * 100))
	if src != nil {
		progress += intBetween(src, perturbMin, perturbMax)
	}
	progress = clampInt(progress, 0, 100)

	return ProgressUpdate{
		Progress: progress,
		Status:   p.NextStatus(progress),
		Changed:  progress != p.Progress || p.NextStatus(progress) != p.Status,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
