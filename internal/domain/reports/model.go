package reports

import (
	"fmt"
	"time"

	"alfozan-insights/internal/domain/analytics"
)

// Type 決定報表包含哪些區塊。
type Type string

const (
	TypeFull          Type = "full"
	TypeComprehensive Type = "comprehensive"
	TypeProjects      Type = "projects"
	TypeCompetitors   Type = "competitors"
	TypeAnalytics     Type = "analytics"
)

// Format 決定輸出編碼。
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
	FormatCSV   Format = "csv"
)

// ParseType 解析報表類型字串。
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeFull, TypeComprehensive, TypeProjects, TypeCompetitors, TypeAnalytics:
		return Type(s), nil
	case "":
		return TypeFull, nil
	}
	return "", fmt.Errorf("unsupported report type: %s", s)
}

// ParseFormat 解析輸出格式字串。
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF, FormatExcel, FormatCSV:
		return Format(s), nil
	case "":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}

// Extension 回傳對應副檔名。
func (f Format) Extension() string {
	switch f {
	case FormatExcel:
		return "xlsx"
	case FormatCSV:
		return "csv"
	default:
		return "pdf"
	}
}

// IncludesProjects 判斷報表是否含開發案區塊。
func (t Type) IncludesProjects() bool {
	return t == TypeFull || t == TypeComprehensive || t == TypeProjects
}

// IncludesCompetitors 判斷報表是否含競爭者區塊。
func (t Type) IncludesCompetitors() bool {
	return t == TypeFull || t == TypeComprehensive || t == TypeCompetitors
}

// IncludesSummary 判斷報表是否含 KPI 摘要區塊。
func (t Type) IncludesSummary() bool {
	return t == TypeFull || t == TypeComprehensive || t == TypeAnalytics
}

// IncludesMetrics 判斷報表是否含指標明細區塊。
func (t Type) IncludesMetrics() bool {
	return t == TypeFull || t == TypeComprehensive || t == TypeAnalytics
}

// KPISummary 彙總投資組合層級指標。
type KPISummary struct {
	TotalProjects   int     `json:"total_projects"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalUnits      int     `json:"total_units"`
	TotalUnitsSold  int     `json:"total_units_sold"`
	SalesRate       float64 `json:"sales_rate"`
	CompletionRate  float64 `json:"completion_rate"`
	AvgProjectValue float64 `json:"avg_project_value"`
}

// ProjectRow 為報表中的單列開發案資料。
type ProjectRow struct {
	ID        int64
	Name      string
	Type      string
	Status    string
	Location  string
	Manager   string
	Budget    float64
	Progress  int
	Units     int
	UnitsSold int
	SalesRate float64
	StartDate string
	EndDate   string
}

// CompetitorRow 為報表中的單列競爭者資料。
type CompetitorRow struct {
	ID              int64
	Name            string
	MarketShare     float64
	DigitalPresence int
	Website         string
	Trend           string
	Change          string
}

// Model 是三種輸出格式共用的報表資料模型，每次產出僅建構一次。
type Model struct {
	Title           string
	ReportType      Type
	DateRange       string
	GeneratedAt     time.Time
	Summary         KPISummary
	Projects        []ProjectRow
	Competitors     []CompetitorRow
	Metrics         []analytics.MetricRow
	Recommendations []string
}
