package reports

import (
	"encoding/csv"
	"io"
	"strconv"

	reportsDomain "alfozan-insights/internal/domain/reports"
)

// renderCSV 以區塊標籤分段輸出各資料表，區塊間以空列分隔。
func renderCSV(m reportsDomain.Model, out io.Writer) error {
	w := csv.NewWriter(out)

	if m.ReportType.IncludesSummary() {
		if err := w.Write([]string{"# SUMMARY"}); err != nil {
			return err
		}
		if err := w.Write([]string{"Metric", "Value"}); err != nil {
			return err
		}
		for _, row := range summaryRows(m) {
			if err := w.Write([]string{row[0], row[1]}); err != nil {
				return err
			}
		}
		if err := w.Write(nil); err != nil {
			return err
		}
	}

	if m.ReportType.IncludesProjects() {
		if err := w.Write([]string{"# PROJECTS DATA"}); err != nil {
			return err
		}
		header := []string{"ID", "Name", "Location", "Type", "Status", "Progress", "Budget", "Units", "Units_Sold", "Sales_Rate", "Manager", "Start_Date", "End_Date"}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, p := range m.Projects {
			record := []string{
				strconv.FormatInt(p.ID, 10),
				p.Name,
				p.Location,
				p.Type,
				p.Status,
				strconv.Itoa(p.Progress),
				formatFloat(p.Budget),
				strconv.Itoa(p.Units),
				strconv.Itoa(p.UnitsSold),
				formatPct(p.SalesRate),
				p.Manager,
				p.StartDate,
				p.EndDate,
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		if err := w.Write(nil); err != nil {
			return err
		}
	}

	if m.ReportType.IncludesCompetitors() {
		if err := w.Write([]string{"# COMPETITORS DATA"}); err != nil {
			return err
		}
		header := []string{"ID", "Name", "Market_Share", "Digital_Presence", "Website", "Trend", "Change"}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, c := range m.Competitors {
			record := []string{
				strconv.FormatInt(c.ID, 10),
				c.Name,
				formatPct(c.MarketShare),
				strconv.Itoa(c.DigitalPresence),
				c.Website,
				c.Trend,
				c.Change,
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		if err := w.Write(nil); err != nil {
			return err
		}
	}

	if m.ReportType.IncludesMetrics() && len(m.Metrics) > 0 {
		if err := w.Write([]string{"# ANALYTICS DATA"}); err != nil {
			return err
		}
		if err := w.Write([]string{"Metric_Type", "Value", "Period", "Category", "Recorded_At"}); err != nil {
			return err
		}
		for _, row := range m.Metrics {
			record := []string{
				string(row.MetricType),
				formatFloat(row.Value),
				row.Period,
				row.Category,
				row.RecordedAt.Format("2006-01-02 15:04:05"),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}
