package database

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"wsm/config"
	"wsm/loader"
	"wsm/model"
)

// newTestDB opens an in-memory store with the schema and triggers applied.
// A single connection keeps the in-memory database alive across queries.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{ScoreManpowerWeight: 2, ScoreVisitWeight: 1.5, ScoreRecoveryBonus: 10}
	require.NoError(t, loader.InitDatabase(db, cfg))
	return db
}

func strPtr(s string) *string { return &s }

func seedAIC(t *testing.T, db *sqlx.DB, id int) {
	t.Helper()
	_, err := AddAIC(db, model.AreaInCharge{ID: id, FirstName: "Ravi", LastName: "Kumar"})
	require.NoError(t, err)
}

func seedArea(t *testing.T, db *sqlx.DB, name string, aicID int) {
	t.Helper()
	_, err := AddArea(db, model.Area{AreaName: name, AICID: aicID})
	require.NoError(t, err)
}

func seedWorkshop(t *testing.T, db *sqlx.DB, code int, area string) {
	t.Helper()
	_, err := AddWorkshop(db, model.Workshop{
		WkCode: code, WkName: "Shop", WkArea: area,
		Manpower: 5, CustomerVisits: 10, Recovery: "no",
	})
	require.NoError(t, err)
}

func seedWIC(t *testing.T, db *sqlx.DB, id, aicID int) {
	t.Helper()
	_, err := AddWIC(db, model.WorkshopIC{WkICID: id, FName: "Anil", LName: "Shah", Rating: 4, AreaIC: aicID})
	require.NoError(t, err)
}
