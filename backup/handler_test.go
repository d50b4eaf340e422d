package backup

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wsm/config"
	"wsm/database"
	"wsm/loader"
	"wsm/model"
)

func newDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	cfg := config.Config{ScoreManpowerWeight: 2, ScoreVisitWeight: 1.5, ScoreRecoveryBonus: 10}
	require.NoError(t, loader.InitDatabase(db, cfg))
	return db
}

func seed(t *testing.T, db *sqlx.DB) {
	t.Helper()
	_, err := database.AddAIC(db, model.AreaInCharge{ID: 1, FirstName: "A", LastName: "B"})
	require.NoError(t, err)
	_, err = database.AddArea(db, model.Area{AreaName: "Zone", AICID: 1})
	require.NoError(t, err)
	_, err = database.AddWIC(db, model.WorkshopIC{WkICID: 10, FName: "F", LName: "L", AreaIC: 1})
	require.NoError(t, err)
	_, err = database.AddWorkshop(db, model.Workshop{
		WkCode: 100, WkName: "W", WkArea: "Zone", Manpower: 2, CustomerVisits: 3, Recovery: "no",
	})
	require.NoError(t, err)
	_, err = database.AddManagesEntry(db, model.Manages{WkshpID: 100, ICID: 10})
	require.NoError(t, err)
	_, err = database.AddRevenue(db, model.Revenue{
		WkCode: 100, Year: 2025, Quarter: 1, TotalSales: 1000, ServiceCost: 400,
	})
	require.NoError(t, err)
}

func exportDump(t *testing.T, db *sqlx.DB) Dump {
	t.Helper()
	rec := httptest.NewRecorder()
	ExportHandler(db)(rec, httptest.NewRequest(http.MethodGet, "/api/backup/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var dump Dump
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dump))
	return dump
}

func importDump(t *testing.T, db *sqlx.DB, dump Dump) (int, map[string]tableCount) {
	t.Helper()
	body, err := json.Marshal(dump)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/backup/import", bytes.NewReader(body))
	ImportHandler(db)(rec, req)

	var resp struct {
		Counts map[string]tableCount `json:"counts"`
	}
	if rec.Code == http.StatusCreated {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec.Code, resp.Counts
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newDB(t)
	seed(t, src)
	dump := exportDump(t, src)

	require.Len(t, dump.AICs, 1)
	require.Len(t, dump.Revenues, 1)

	dst := newDB(t)
	code, counts := importDump(t, dst, dump)
	require.Equal(t, http.StatusCreated, code)
	for _, table := range []string{"aics", "areas", "wics", "workshops", "manages", "revenues"} {
		assert.Equal(t, 1, counts[table].Inserted, table)
		assert.Equal(t, 0, counts[table].Skipped, table)
	}

	// The restored store exports the same document.
	restored := exportDump(t, dst)
	assert.Equal(t, dump, restored)
	require.Len(t, restored.Revenues, 1)
	assert.Equal(t, 600.0, restored.Revenues[0].Profit)
}

func TestImportSkipsExistingRows(t *testing.T) {
	db := newDB(t)
	seed(t, db)
	dump := exportDump(t, db)

	// Importing over the same store skips every row.
	code, counts := importDump(t, db, dump)
	require.Equal(t, http.StatusCreated, code)
	for _, table := range []string{"aics", "areas", "wics", "workshops", "manages", "revenues"} {
		assert.Equal(t, 0, counts[table].Inserted, table)
		assert.Equal(t, 1, counts[table].Skipped, table)
	}
}

func TestImportAbortsOnInconsistentDocument(t *testing.T) {
	db := newDB(t)

	dump := Dump{
		Areas: []model.Area{{AreaName: "Orphan", AICID: 42}},
	}
	code, _ := importDump(t, db, dump)
	assert.Equal(t, http.StatusConflict, code)

	areas, err := database.GetAllAreas(db)
	require.NoError(t, err)
	assert.Empty(t, areas)
}

func TestImportRejectsBadBody(t *testing.T) {
	db := newDB(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/backup/import", bytes.NewReader([]byte("not json")))
	ImportHandler(db)(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
