// Package report renders the printable revenue summary and captures it to PDF
// through a headless browser.
package report

import (
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/jmoiron/sqlx"

	"wsm/database"
	"wsm/model"
	"wsm/web"
)

// PageHandler serves GET /report: a self-contained HTML page with the
// per-workshop revenue rollup, suitable for printing.
func PageHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := database.GetRevenueSummary(db)
		if err != nil {
			log.Printf("Error building revenue report: %v", err)
			http.Error(w, "Failed to build revenue report", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, renderReportHTML(rows, time.Now()))
	}
}

func renderReportHTML(rows []model.WorkshopRevenueSummary, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Workshop Revenue Report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: 4px 8px; text-align: right; }
th, td.name { text-align: left; }
</style>
</head>
<body>
`)
	sb.WriteString(fmt.Sprintf("<h1>Workshop Revenue Report</h1>\n<p>Generated %s</p>\n",
		now.Format("2006-01-02 15:04")))

	sb.WriteString(`<table>
<thead>
<tr><th>Code</th><th>Workshop</th><th>Area</th><th>Score</th><th>Quarters</th><th>Total Sales</th><th>Service Cost</th><th>Profit</th></tr>
</thead>
<tbody>
`)
	var totalSales, totalCost, totalProfit float64
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf(
			"<tr><td>%d</td><td class=\"name\">%s</td><td class=\"name\">%s</td><td>%.1f</td><td>%d</td><td>%.2f</td><td>%.2f</td><td>%.2f</td></tr>\n",
			row.WkCode, html.EscapeString(row.WkName), html.EscapeString(row.WkArea),
			row.Score, row.Entries, row.TotalSales, row.ServiceCost, row.Profit))
		totalSales += row.TotalSales
		totalCost += row.ServiceCost
		totalProfit += row.Profit
	}
	sb.WriteString(fmt.Sprintf(
		"</tbody>\n<tfoot>\n<tr><th colspan=\"5\" class=\"name\">Total</th><th>%.2f</th><th>%.2f</th><th>%.2f</th></tr>\n</tfoot>\n</table>\n",
		totalSales, totalCost, totalProfit))
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

// PDFHandler serves POST /api/report/pdf: drives a headless browser to the
// report page and writes the result under ./reports. The report page itself
// stays available even when no browser is installed on the host.
func PDFHandler(baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
			return
		}
		path, err := CapturePDF(baseURL + "/report")
		if err != nil {
			log.Printf("Error generating report PDF: %v", err)
			web.Message(w, http.StatusInternalServerError, "Failed to generate report PDF.")
			return
		}
		web.JSON(w, http.StatusOK, map[string]string{
			"message": "Report PDF generated.",
			"path":    path,
		})
	}
}

// CapturePDF prints reportURL to a timestamped PDF file and returns its path.
func CapturePDF(reportURL string) (string, error) {
	if err := os.MkdirAll("reports", 0755); err != nil {
		return "", fmt.Errorf("failed to create reports folder: %w", err)
	}

	u, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return "", fmt.Errorf("browser launch failed: %w", err)
	}
	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("browser connect failed: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: reportURL})
	if err != nil {
		return "", fmt.Errorf("failed to open report page: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("report page did not load: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{})
	if err != nil {
		return "", fmt.Errorf("PDF print failed: %w", err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF stream: %w", err)
	}

	path := filepath.Join("reports", "revenue_"+time.Now().Format("20060102_150405")+".pdf")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
