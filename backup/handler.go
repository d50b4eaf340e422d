// Package backup exports and imports the full six-table dataset as one JSON
// document, the durable contract external tooling depends on.
package backup

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"wsm/database"
	"wsm/model"
	"wsm/web"
)

// Dump is the on-the-wire backup document. Slice order matters for import:
// parents before children.
type Dump struct {
	AICs      []model.AreaInCharge `json:"aics"`
	Areas     []model.Area         `json:"areas"`
	WICs      []model.WorkshopIC   `json:"wics"`
	Workshops []model.Workshop     `json:"workshops"`
	Manages   []model.Manages      `json:"manages"`
	Revenues  []model.Revenue      `json:"revenues"`
}

// ExportHandler serves GET /api/backup/export.
func ExportHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
			return
		}
		dump, err := exportAll(db)
		if err != nil {
			web.StoreError(w, err, "GET /api/backup/export", "Failed to export database.")
			return
		}
		web.JSON(w, http.StatusOK, dump)
	}
}

func exportAll(db *sqlx.DB) (Dump, error) {
	var dump Dump
	var err error
	if dump.AICs, err = database.GetAllAICs(db); err != nil {
		return dump, err
	}
	if dump.Areas, err = database.GetAllAreas(db); err != nil {
		return dump, err
	}
	if dump.WICs, err = database.GetAllWICs(db); err != nil {
		return dump, err
	}
	if dump.Workshops, err = database.GetAllWorkshops(db); err != nil {
		return dump, err
	}
	if dump.Manages, err = database.GetAllManages(db); err != nil {
		return dump, err
	}
	if dump.Revenues, err = database.GetAllRevenues(db); err != nil {
		return dump, err
	}
	return dump, nil
}

// ImportHandler serves POST /api/backup/import. Rows are inserted one at a
// time in parent-before-child order; rows whose key already exists are skipped
// and counted, so importing over a partly-populated store is safe. A foreign
// key failure means the document itself is inconsistent and aborts the import.
func ImportHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
			return
		}
		var dump Dump
		if err := json.NewDecoder(r.Body).Decode(&dump); err != nil {
			web.Message(w, http.StatusBadRequest, "Invalid backup document.")
			return
		}

		counts := map[string]*tableCount{}
		steps := []struct {
			table  string
			insert func() error
		}{
			{"aics", func() error {
				return importRows(counts, "aics", len(dump.AICs), func(i int) error {
					_, err := database.AddAIC(db, dump.AICs[i])
					return err
				})
			}},
			{"areas", func() error {
				return importRows(counts, "areas", len(dump.Areas), func(i int) error {
					_, err := database.AddArea(db, dump.Areas[i])
					return err
				})
			}},
			{"wics", func() error {
				return importRows(counts, "wics", len(dump.WICs), func(i int) error {
					_, err := database.AddWIC(db, dump.WICs[i])
					return err
				})
			}},
			{"workshops", func() error {
				return importRows(counts, "workshops", len(dump.Workshops), func(i int) error {
					_, err := database.AddWorkshop(db, dump.Workshops[i])
					return err
				})
			}},
			{"manages", func() error {
				return importRows(counts, "manages", len(dump.Manages), func(i int) error {
					_, err := database.AddManagesEntry(db, dump.Manages[i])
					return err
				})
			}},
			{"revenues", func() error {
				return importRows(counts, "revenues", len(dump.Revenues), func(i int) error {
					_, err := database.AddRevenue(db, dump.Revenues[i])
					return err
				})
			}},
		}

		for _, step := range steps {
			if err := step.insert(); err != nil {
				web.StoreError(w, err, "POST /api/backup/import",
					fmt.Sprintf("Failed to import %s.", step.table))
				return
			}
		}

		web.JSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Import complete.",
			"counts":  counts,
		})
	}
}

type tableCount struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

func importRows(counts map[string]*tableCount, table string, n int, insert func(i int) error) error {
	c := &tableCount{}
	counts[table] = c
	for i := 0; i < n; i++ {
		err := insert(i)
		switch {
		case err == nil:
			c.Inserted++
		case database.IsUniqueViolation(err):
			c.Skipped++
		default:
			return err
		}
	}
	return nil
}
