package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"wsm/model"
)

// GetRevenueSummary rolls revenue history up per workshop for the printable
// report. Workshops without revenue rows still appear, with zero totals.
func GetRevenueSummary(db *sqlx.DB) ([]model.WorkshopRevenueSummary, error) {
	const q = `
		SELECT
			w.wk_code,
			w.wk_name,
			w.area,
			w.score,
			COUNT(r.wk_code) AS entries,
			COALESCE(SUM(r.total_sales), 0) AS total_sales,
			COALESCE(SUM(r.service_cost), 0) AS service_cost,
			COALESCE(SUM(r.profit), 0) AS profit
		FROM workshop w
		LEFT JOIN revenue r ON r.wk_code = w.wk_code
		GROUP BY w.wk_code, w.wk_name, w.area, w.score
		ORDER BY w.wk_code`
	var rows []model.WorkshopRevenueSummary
	if err := db.Select(&rows, q); err != nil {
		return nil, fmt.Errorf("failed to get revenue summary: %w", err)
	}
	return rows, nil
}
