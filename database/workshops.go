package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"wsm/model"
)

// --- WORKSHOP ---

func GetAllWorkshops(db *sqlx.DB) ([]model.Workshop, error) {
	const q = `
		SELECT wk_code, wk_name, area, manpower, customer_visits, recovery, score
		FROM workshop
		ORDER BY wk_code`
	var workshops []model.Workshop
	if err := db.Select(&workshops, q); err != nil {
		return nil, fmt.Errorf("failed to get all workshops: %w", err)
	}
	return workshops, nil
}

func SearchWorkshopsByName(db *sqlx.DB, term string) ([]model.Workshop, error) {
	const q = `
		SELECT wk_code, wk_name, area, manpower, customer_visits, recovery, score
		FROM workshop
		WHERE wk_name LIKE ?
		ORDER BY wk_code`
	var workshops []model.Workshop
	if err := db.Select(&workshops, q, "%"+term+"%"); err != nil {
		return nil, fmt.Errorf("failed to search workshops for %q: %w", term, err)
	}
	return workshops, nil
}

func GetWorkshopsByArea(db *sqlx.DB, areaName string) ([]model.Workshop, error) {
	const q = `
		SELECT wk_code, wk_name, area, manpower, customer_visits, recovery, score
		FROM workshop
		WHERE LOWER(area) = LOWER(?)
		ORDER BY wk_code`
	var workshops []model.Workshop
	if err := db.Select(&workshops, q, areaName); err != nil {
		return nil, fmt.Errorf("failed to get workshops for area %q: %w", areaName, err)
	}
	return workshops, nil
}

// AddWorkshop inserts a workshop. The score column is filled in by the
// database trigger; callers never supply it.
func AddWorkshop(db *sqlx.DB, wk model.Workshop) (int64, error) {
	const q = `
		INSERT INTO workshop (wk_code, wk_name, area, manpower, customer_visits, recovery)
		VALUES (?, ?, TRIM(?), ?, ?, ?)`
	res, err := db.Exec(q, wk.WkCode, wk.WkName, wk.WkArea, wk.Manpower, wk.CustomerVisits, wk.Recovery)
	if err != nil {
		return 0, translateConstraint(err,
			fmt.Sprintf("Workshop with code %d already exists.", wk.WkCode),
			fmt.Sprintf("Area '%s' does not exist. Cannot assign workshop.", wk.WkArea))
	}
	return res.RowsAffected()
}

func UpdateWorkshop(db *sqlx.DB, wk model.Workshop) (int64, error) {
	const q = `
		UPDATE workshop
		SET wk_name = ?, area = TRIM(?), manpower = ?, customer_visits = ?, recovery = ?
		WHERE wk_code = ?`
	res, err := db.Exec(q, wk.WkName, wk.WkArea, wk.Manpower, wk.CustomerVisits, wk.Recovery, wk.WkCode)
	if err != nil {
		return 0, translateConstraint(err,
			fmt.Sprintf("Workshop with code %d already exists.", wk.WkCode),
			fmt.Sprintf("Area '%s' does not exist. Cannot move workshop.", wk.WkArea))
	}
	return res.RowsAffected()
}

// DeleteWorkshop removes a workshop; the schema cascades the delete to its
// revenue and manages rows.
func DeleteWorkshop(db *sqlx.DB, wkCode int) (int64, error) {
	res, err := db.Exec(`DELETE FROM workshop WHERE wk_code = ?`, wkCode)
	if err != nil {
		return 0, fmt.Errorf("failed to delete workshop %d: %w", wkCode, err)
	}
	return res.RowsAffected()
}

// --- REVENUE ---

func GetAllRevenues(db *sqlx.DB) ([]model.Revenue, error) {
	const q = `
		SELECT wk_code, year, quarter, total_sales, service_cost, profit
		FROM revenue
		ORDER BY year DESC, quarter DESC`
	var revenues []model.Revenue
	if err := db.Select(&revenues, q); err != nil {
		return nil, fmt.Errorf("failed to get all revenues: %w", err)
	}
	return revenues, nil
}

func GetRevenuesByWorkshop(db *sqlx.DB, wkCode int) ([]model.Revenue, error) {
	const q = `
		SELECT wk_code, year, quarter, total_sales, service_cost, profit
		FROM revenue
		WHERE wk_code = ?
		ORDER BY year DESC, quarter DESC`
	var revenues []model.Revenue
	if err := db.Select(&revenues, q, wkCode); err != nil {
		return nil, fmt.Errorf("failed to get revenues for workshop %d: %w", wkCode, err)
	}
	return revenues, nil
}

// AddRevenue inserts a quarterly record. Profit is computed by the database
// trigger from total_sales and service_cost.
func AddRevenue(db *sqlx.DB, rev model.Revenue) (int64, error) {
	const q = `
		INSERT INTO revenue (wk_code, year, quarter, total_sales, service_cost)
		VALUES (?, ?, ?, ?, ?)`
	res, err := db.Exec(q, rev.WkCode, rev.Year, rev.Quarter, rev.TotalSales, rev.ServiceCost)
	if err != nil {
		return 0, translateConstraint(err,
			fmt.Sprintf("Revenue entry already exists for Workshop %d, Year %d, Quarter %d.", rev.WkCode, rev.Year, rev.Quarter),
			fmt.Sprintf("Workshop code %d does not exist.", rev.WkCode))
	}
	return res.RowsAffected()
}

func UpdateRevenue(db *sqlx.DB, rev model.Revenue) (int64, error) {
	const q = `
		UPDATE revenue
		SET total_sales = ?, service_cost = ?
		WHERE wk_code = ? AND year = ? AND quarter = ?`
	res, err := db.Exec(q, rev.TotalSales, rev.ServiceCost, rev.WkCode, rev.Year, rev.Quarter)
	if err != nil {
		return 0, fmt.Errorf("failed to update revenue %d/%d Q%d: %w", rev.WkCode, rev.Year, rev.Quarter, err)
	}
	return res.RowsAffected()
}

func DeleteRevenue(db *sqlx.DB, wkCode, year, quarter int) (int64, error) {
	const q = `DELETE FROM revenue WHERE wk_code = ? AND year = ? AND quarter = ?`
	res, err := db.Exec(q, wkCode, year, quarter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete revenue %d/%d Q%d: %w", wkCode, year, quarter, err)
	}
	return res.RowsAffected()
}
