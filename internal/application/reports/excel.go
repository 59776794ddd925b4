package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	reportsDomain "alfozan-insights/internal/domain/reports"
)

const maxColWidth = 50

// renderExcel 每個區塊一張工作表，欄寬依內容自動調整。
func renderExcel(m reportsDomain.Model, out io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	first := true
	addSheet := func(name string) error {
		if first {
			// 取代預設工作表，保持區塊順序。
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
			first = false
			return nil
		}
		_, err := f.NewSheet(name)
		return err
	}

	if m.ReportType.IncludesSummary() {
		const sheet = "Executive Summary"
		if err := addSheet(sheet); err != nil {
			return err
		}
		rows := [][]string{
			{m.Title},
			{"Generated: " + m.GeneratedAt.Format("2006-01-02 15:04:05")},
			{},
			{"Metric", "Value"},
		}
		for _, kv := range summaryRows(m) {
			rows = append(rows, []string{kv[0], kv[1]})
		}
		if err := writeSheet(f, sheet, rows); err != nil {
			return err
		}
	}

	if m.ReportType.IncludesProjects() {
		const sheet = "Projects"
		if err := addSheet(sheet); err != nil {
			return err
		}
		rows := [][]string{{"ID", "Name", "Type", "Status", "Location", "Budget (SAR)", "Progress (%)", "Total Units", "Units Sold", "Sales Rate (%)", "Manager", "Start Date", "End Date"}}
		for _, p := range m.Projects {
			rows = append(rows, []string{
				fmt.Sprintf("%d", p.ID),
				p.Name,
				p.Type,
				p.Status,
				p.Location,
				formatFloat(p.Budget),
				fmt.Sprintf("%d", p.Progress),
				fmt.Sprintf("%d", p.Units),
				fmt.Sprintf("%d", p.UnitsSold),
				formatPct(p.SalesRate),
				p.Manager,
				p.StartDate,
				p.EndDate,
			})
		}
		if err := writeSheet(f, sheet, rows); err != nil {
			return err
		}
	}

	if m.ReportType.IncludesCompetitors() {
		const sheet = "Competitors"
		if err := addSheet(sheet); err != nil {
			return err
		}
		rows := [][]string{{"ID", "Name", "Market Share (%)", "Digital Presence", "Website", "Trend", "Change"}}
		for _, c := range m.Competitors {
			rows = append(rows, []string{
				fmt.Sprintf("%d", c.ID),
				c.Name,
				formatPct(c.MarketShare),
				fmt.Sprintf("%d", c.DigitalPresence),
				c.Website,
				c.Trend,
				c.Change,
			})
		}
		if err := writeSheet(f, sheet, rows); err != nil {
			return err
		}
	}

	if m.ReportType.IncludesMetrics() && len(m.Metrics) > 0 {
		const sheet = "Analytics"
		if err := addSheet(sheet); err != nil {
			return err
		}
		rows := [][]string{{"Metric Type", "Value", "Period", "Category", "Recorded At"}}
		for _, row := range m.Metrics {
			rows = append(rows, []string{
				string(row.MetricType),
				formatFloat(row.Value),
				row.Period,
				row.Category,
				row.RecordedAt.Format("2006-01-02 15:04:05"),
			})
		}
		if err := writeSheet(f, sheet, rows); err != nil {
			return err
		}
	}

	return f.Write(out)
}

// writeSheet 逐列寫入並依最長儲存格內容調整欄寬（上限 50）。
func writeSheet(f *excelize.File, sheet string, rows [][]string) error {
	widths := map[int]int{}
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
			if len(val) > widths[c] {
				widths[c] = len(val)
			}
		}
	}
	for c, width := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		adjusted := float64(width + 2)
		if adjusted > maxColWidth {
			adjusted = maxColWidth
		}
		if err := f.SetColWidth(sheet, col, col, adjusted); err != nil {
			return err
		}
	}
	return nil
}
