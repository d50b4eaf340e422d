package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"wsm/model"
)

// --- AREA IN-CHARGE ---

func GetAllAICs(db *sqlx.DB) ([]model.AreaInCharge, error) {
	var aics []model.AreaInCharge
	err := db.Select(&aics, `SELECT id, first_name, middle_name, last_name FROM area_incharge ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all AICs: %w", err)
	}
	return aics, nil
}

// SearchAICsByName matches the term case-insensitively against first, middle
// and last name.
func SearchAICsByName(db *sqlx.DB, term string) ([]model.AreaInCharge, error) {
	const q = `
		SELECT id, first_name, middle_name, last_name
		FROM area_incharge
		WHERE first_name LIKE ? OR middle_name LIKE ? OR last_name LIKE ?
		ORDER BY id`
	pattern := "%" + term + "%"
	var aics []model.AreaInCharge
	if err := db.Select(&aics, q, pattern, pattern, pattern); err != nil {
		return nil, fmt.Errorf("failed to search AICs for %q: %w", term, err)
	}
	return aics, nil
}

func AddAIC(db *sqlx.DB, aic model.AreaInCharge) (int64, error) {
	const q = `INSERT INTO area_incharge (id, first_name, middle_name, last_name) VALUES (?, ?, ?, ?)`
	res, err := db.Exec(q, aic.ID, aic.FirstName, aic.MiddleName, aic.LastName)
	if err != nil {
		return 0, translateConstraint(err,
			fmt.Sprintf("AIC with ID %d already exists.", aic.ID),
			fmt.Sprintf("AIC with ID %d violates a reference constraint.", aic.ID))
	}
	return res.RowsAffected()
}

func UpdateAIC(db *sqlx.DB, aic model.AreaInCharge) (int64, error) {
	const q = `UPDATE area_incharge SET first_name = ?, middle_name = ?, last_name = ? WHERE id = ?`
	res, err := db.Exec(q, aic.FirstName, aic.MiddleName, aic.LastName, aic.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update AIC %d: %w", aic.ID, err)
	}
	return res.RowsAffected()
}

// DeleteAIC fails with a ForeignKeyViolationError while the AIC still
// supervises areas or workshop ICs; those must be reassigned or deleted first.
func DeleteAIC(db *sqlx.DB, id int) (int64, error) {
	res, err := db.Exec(`DELETE FROM area_incharge WHERE id = ?`, id)
	if err != nil {
		return 0, translateConstraint(err,
			fmt.Sprintf("AIC with ID %d already exists.", id),
			fmt.Sprintf("Cannot delete AIC ID %d because they still manage one or more areas or workshop ICs. Please reassign or delete related records first.", id))
	}
	return res.RowsAffected()
}

// --- AREA ---

func GetAllAreas(db *sqlx.DB) ([]model.Area, error) {
	var areas []model.Area
	err := db.Select(&areas, `SELECT area_name, ic FROM area ORDER BY area_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all areas: %w", err)
	}
	return areas, nil
}

func GetAreasByAIC(db *sqlx.DB, icID int) ([]model.Area, error) {
	const q = `SELECT area_name, ic FROM area WHERE ic = ? ORDER BY LOWER(area_name)`
	var areas []model.Area
	if err := db.Select(&areas, q, icID); err != nil {
		return nil, fmt.Errorf("failed to get areas for AIC %d: %w", icID, err)
	}
	return areas, nil
}

// AddArea trims the area name before storage.
func AddArea(db *sqlx.DB, area model.Area) (int64, error) {
	const q = `INSERT INTO area (area_name, ic) VALUES (TRIM(?), ?)`
	res, err := db.Exec(q, area.AreaName, area.AICID)
	if err != nil {
		return 0, translateConstraint(err,
			fmt.Sprintf("Area '%s' already exists.", area.AreaName),
			fmt.Sprintf("Area IC ID %d does not exist. Cannot assign area.", area.AICID))
	}
	return res.RowsAffected()
}

// DeleteArea matches the name case-insensitively; the stored name keeps
// whatever case it was created with.
func DeleteArea(db *sqlx.DB, areaName string) (int64, error) {
	res, err := db.Exec(`DELETE FROM area WHERE LOWER(area_name) = LOWER(?)`, areaName)
	if err != nil {
		return 0, translateConstraint(err,
			fmt.Sprintf("Area '%s' already exists.", areaName),
			fmt.Sprintf("Cannot delete area '%s' because it is referenced by other records.", areaName))
	}
	return res.RowsAffected()
}
