package simulation

import (
	"math/rand"
	"time"
)

// Source 抽象亂數來源，讓測試可注入固定序列或完全停用擾動。
type Source interface {
	// Intn 回傳 [0, n) 的整數；n <= 0 時回傳 0。
	Intn(n int) int
	// Uniform 回傳 [lo, hi) 的浮點數。
	Uniform(lo, hi float64) float64
}

type mathSource struct {
	r *rand.Rand
}

// NewSource 建立 math/rand 實作的亂數來源。
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &mathSource{r: rand.New(rand.NewSource(seed))}
}

func (s *mathSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.Intn(n)
}

func (s *mathSource) Uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Float64()*(hi-lo)
}

// intBetween 回傳 [lo, hi] 的整數。
func intBetween(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}
