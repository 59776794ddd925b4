package project

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrNotFound 表示查無此開發案。
var ErrNotFound = errors.New("project not found")

// Type 區分開發案類型。
type Type string

const (
	TypeResidential Type = "Residential"
	TypeCommercial  Type = "Commercial"
	TypeIndustrial  Type = "Industrial"
	TypeMixed       Type = "Mixed"
)

// Status 表示開發案目前階段，僅允許單向推進。
type Status string

const (
	StatusPlanning   Status = "Planning"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Project 代表單一開發案的完整紀錄。
type Project struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Type      Type       `json:"type"`
	Status    Status     `json:"status"`
	Location  string     `json:"location"`
	Manager   string     `json:"manager"`
	Budget    float64    `json:"budget"`
	Units     int        `json:"units"`
	UnitsSold int        `json:"units_sold"`
	Progress  int        `json:"progress"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// SalesRate 回傳銷售率（已售/總戶數 ×100，取兩位小數）。
func (p Project) SalesRate() float64 {
	if p.Units <= 0 {
		return 0
	}
	return math.Round(float64(p.UnitsSold)/float64(p.Units)*100*100) / 100
}

// RecognizedRevenue 依工程進度按比例認列營收。
func (p Project) RecognizedRevenue() float64 {
	return p.Budget * float64(p.Progress) / 100
}

// Validate 檢查欄位合理性，錯誤訊息會標明欄位名稱。
func (p Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	switch p.Type {
	case TypeResidential, TypeCommercial, TypeIndustrial, TypeMixed:
	default:
		return fmt.Errorf("unsupported type: %s", p.Type)
	}
	switch p.Status {
	case StatusPlanning, StatusInProgress, StatusCompleted, "":
	default:
		return fmt.Errorf("unsupported status: %s", p.Status)
	}
	if p.Location == "" {
		return fmt.Errorf("location is required")
	}
	if p.Budget <= 0 {
		return fmt.Errorf("budget must be positive")
	}
	if p.Units <= 0 {
		return fmt.Errorf("units must be positive")
	}
	if p.UnitsSold < 0 || p.UnitsSold > p.Units {
		return fmt.Errorf("units_sold must be between 0 and units")
	}
	if p.Progress < 0 || p.Progress > 100 {
		return fmt.Errorf("progress must be between 0 and 100")
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return fmt.Errorf("end_date must not be before start_date")
	}
	return nil
}

// NextStatus 依進度推導狀態；進度為 0 時維持原狀態，已完工不回退。
func (p Project) NextStatus(progress int) Status {
	if p.Status == StatusCompleted {
		return StatusCompleted
	}
	switch {
	case progress >= 100:
		return StatusCompleted
	case progress > 0:
		return StatusInProgress
	default:
		return p.Status
	}
}

// ApplyDefaults 填入新建開發案的預設值。
func (p *Project) ApplyDefaults() {
	if p.Status == "" {
		p.Status = StatusPlanning
	}
	if p.Progress < 0 {
		p.Progress = 0
	}
	if p.UnitsSold < 0 {
		p.UnitsSold = 0
	}
}
