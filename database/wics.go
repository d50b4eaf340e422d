package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"wsm/model"
)

// --- WORKSHOP IN-CHARGE ---

func GetAllWICs(db *sqlx.DB) ([]model.WorkshopIC, error) {
	const q = `SELECT id, fname, mname, lname, rating, area_ic FROM workshop_ic ORDER BY id`
	var wics []model.WorkshopIC
	if err := db.Select(&wics, q); err != nil {
		return nil, fmt.Errorf("failed to get all WICs: %w", err)
	}
	return wics, nil
}

// SearchWICsByName matches the term case-insensitively against first, middle
// and last name.
func SearchWICsByName(db *sqlx.DB, term string) ([]model.WorkshopIC, error) {
	const q = `
		SELECT id, fname, mname, lname, rating, area_ic
		FROM workshop_ic
		WHERE fname LIKE ? OR mname LIKE ? OR lname LIKE ?
		ORDER BY id`
	pattern := "%" + term + "%"
	var wics []model.WorkshopIC
	if err := db.Select(&wics, q, pattern, pattern, pattern); err != nil {
		return nil, fmt.Errorf("failed to search WICs for %q: %w", term, err)
	}
	return wics, nil
}

func GetWICsByAreaIC(db *sqlx.DB, areaICID int) ([]model.WorkshopIC, error) {
	const q = `SELECT id, fname, mname, lname, rating, area_ic FROM workshop_ic WHERE area_ic = ? ORDER BY id`
	var wics []model.WorkshopIC
	if err := db.Select(&wics, q, areaICID); err != nil {
		return nil, fmt.Errorf("failed to get WICs for AIC %d: %w", areaICID, err)
	}
	return wics, nil
}

func AddWIC(db *sqlx.DB, wic model.WorkshopIC) (int64, error) {
	const q = `INSERT INTO workshop_ic (id, fname, mname, lname, rating, area_ic) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := db.Exec(q, wic.WkICID, wic.FName, wic.MName, wic.LName, wic.Rating, wic.AreaIC)
	if err != nil {
		return 0, translateConstraint(err,
			fmt.Sprintf("WIC with ID %d already exists.", wic.WkICID),
			fmt.Sprintf("Area IC ID %d does not exist. Cannot assign WIC.", wic.AreaIC))
	}
	return res.RowsAffected()
}

// UpdateWIC may move the WIC under a different AIC; the new AIC must exist.
func UpdateWIC(db *sqlx.DB, wic model.WorkshopIC) (int64, error) {
	const q = `UPDATE workshop_ic SET fname = ?, mname = ?, lname = ?, rating = ?, area_ic = ? WHERE id = ?`
	res, err := db.Exec(q, wic.FName, wic.MName, wic.LName, wic.Rating, wic.AreaIC, wic.WkICID)
	if err != nil {
		return 0, translateConstraint(err,
			fmt.Sprintf("WIC with ID %d already exists.", wic.WkICID),
			fmt.Sprintf("Area IC ID %d does not exist. Cannot update WIC.", wic.AreaIC))
	}
	return res.RowsAffected()
}

// DeleteWIC fails with a ForeignKeyViolationError while manages rows still
// reference the WIC.
func DeleteWIC(db *sqlx.DB, id int) (int64, error) {
	res, err := db.Exec(`DELETE FROM workshop_ic WHERE id = ?`, id)
	if err != nil {
		return 0, translateConstraint(err,
			fmt.Sprintf("WIC with ID %d already exists.", id),
			fmt.Sprintf("Cannot delete WIC ID %d because they still manage one or more workshops. Remove those assignments first.", id))
	}
	return res.RowsAffected()
}

// --- MANAGES ---

func GetAllManages(db *sqlx.DB) ([]model.Manages, error) {
	const q = `SELECT wk_code, ic_id FROM manages ORDER BY wk_code, ic_id`
	var manages []model.Manages
	if err := db.Select(&manages, q); err != nil {
		return nil, fmt.Errorf("failed to get all manages entries: %w", err)
	}
	return manages, nil
}

func GetManagesByWorkshop(db *sqlx.DB, wkshpID int) ([]model.Manages, error) {
	const q = `SELECT wk_code, ic_id FROM manages WHERE wk_code = ? ORDER BY ic_id`
	var manages []model.Manages
	if err := db.Select(&manages, q, wkshpID); err != nil {
		return nil, fmt.Errorf("failed to get manages entries for workshop %d: %w", wkshpID, err)
	}
	return manages, nil
}

func GetManagesByIC(db *sqlx.DB, icID int) ([]model.Manages, error) {
	const q = `SELECT wk_code, ic_id FROM manages WHERE ic_id = ? ORDER BY wk_code`
	var manages []model.Manages
	if err := db.Select(&manages, q, icID); err != nil {
		return nil, fmt.Errorf("failed to get manages entries for WIC %d: %w", icID, err)
	}
	return manages, nil
}

func AddManagesEntry(db *sqlx.DB, m model.Manages) (int64, error) {
	const q = `INSERT INTO manages (wk_code, ic_id) VALUES (?, ?)`
	res, err := db.Exec(q, m.WkshpID, m.ICID)
	if err != nil {
		return 0, translateConstraint(err,
			"This Workshop IC already manages this Workshop.",
			"Workshop ID or Workshop IC ID does not exist.")
	}
	return res.RowsAffected()
}

func DeleteManagesEntry(db *sqlx.DB, wkshpID, icID int) (int64, error) {
	const q = `DELETE FROM manages WHERE wk_code = ? AND ic_id = ?`
	res, err := db.Exec(q, wkshpID, icID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete manages entry %d/%d: %w", wkshpID, icID, err)
	}
	return res.RowsAffected()
}
