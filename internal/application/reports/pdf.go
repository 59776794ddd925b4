package reports

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	reportsDomain "alfozan-insights/internal/domain/reports"
)

// renderPDF 產出分節的版面：標題、報表資訊、KPI 摘要、
// 開發案表、競爭者表與策略建議。
func renderPDF(m reportsDomain.Model, out io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, m.Title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	info := [][2]string{
		{"Report Type", string(m.ReportType)},
		{"Date Range", m.DateRange},
		{"Generated", m.GeneratedAt.Format("2006-01-02 15:04:05")},
	}
	for _, row := range info {
		pdf.CellFormat(45, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(80, 7, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	if m.ReportType.IncludesSummary() {
		sectionHeading(pdf, "Executive Summary")
		drawTable(pdf,
			[]float64{70, 50},
			[]string{"Metric", "Value"},
			kvRows(summaryRows(m)))
		pdf.Ln(6)
	}

	if m.ReportType.IncludesProjects() {
		sectionHeading(pdf, "Project Portfolio")
		rows := make([][]string, 0, len(m.Projects))
		for _, p := range m.Projects {
			rows = append(rows, []string{
				truncateName(p.Name, 20),
				p.Type,
				p.Status,
				fmt.Sprintf("%d%%", p.Progress),
				formatMillions(p.Budget),
				fmt.Sprintf("%d/%d", p.UnitsSold, p.Units),
			})
		}
		drawTable(pdf,
			[]float64{55, 28, 28, 20, 30, 25},
			[]string{"Name", "Type", "Status", "Progress", "Budget (M SAR)", "Units Sold"},
			rows)
		pdf.Ln(6)
	}

	if m.ReportType.IncludesCompetitors() {
		sectionHeading(pdf, "Competitive Market Analysis")
		rows := make([][]string, 0, len(m.Competitors))
		for _, c := range m.Competitors {
			rows = append(rows, []string{
				truncateName(c.Name, 24),
				formatPct(c.MarketShare) + "%",
				fmt.Sprintf("%d/100", c.DigitalPresence),
				c.Trend,
				c.Change,
			})
		}
		drawTable(pdf,
			[]float64{60, 30, 32, 25, 25},
			[]string{"Competitor", "Market Share", "Digital Score", "Trend", "Change"},
			rows)
		pdf.Ln(6)
	}

	if len(m.Recommendations) > 0 {
		sectionHeading(pdf, "Strategic Recommendations")
		pdf.SetFont("Helvetica", "", 10)
		for _, rec := range m.Recommendations {
			pdf.CellFormat(0, 6, "- "+rec, "", 1, "L", false, 0, "")
		}
	}

	return pdf.Output(out)
}

func sectionHeading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func drawTable(pdf *fpdf.Fpdf, widths []float64, header []string, rows [][]string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(220, 220, 220)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func kvRows(pairs [][2]string) [][]string {
	rows := make([][]string, 0, len(pairs))
	for _, kv := range pairs {
		rows = append(rows, []string{kv[0], kv[1]})
	}
	return rows
}
