package competitor

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound 表示查無此競爭者。
var ErrNotFound = errors.New("competitor not found")

// Trend 表示競爭者市占走勢。
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// MaxSimulatedShare 為模擬更新時的市占上限，避免出現不合理的獨占。
const MaxSimulatedShare = 50.0

// Competitor 代表市場上的競爭者觀測紀錄。
type Competitor struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	MarketShare      float64   `json:"market_share"`
	DigitalPresence  int       `json:"digital_presence"`
	Website          string    `json:"website"`
	RecentActivity   string    `json:"recent_activity"`
	Trend            Trend     `json:"trend"`
	ChangePercentage string    `json:"change_percentage"`
	CreatedAt        time.Time `json:"created_at"`
}

// Validate 檢查欄位合理性。
func (c Competitor) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.MarketShare < 0 || c.MarketShare > 100 {
		return fmt.Errorf("market_share must be between 0 and 100")
	}
	if c.DigitalPresence < 0 || c.DigitalPresence > 100 {
		return fmt.Errorf("digital_presence must be between 0 and 100")
	}
	switch c.Trend {
	case TrendUp, TrendDown, TrendStable, "":
	default:
		return fmt.Errorf("unsupported trend: %s", c.Trend)
	}
	return nil
}

// ApplyDefaults 填入新建競爭者的預設值。
func (c *Competitor) ApplyDefaults() {
	if c.Trend == "" {
		c.Trend = TrendStable
	}
	if c.ChangePercentage == "" {
		c.ChangePercentage = "0%"
	}
}
