package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"wsm/aic"
	"wsm/backup"
	"wsm/config"
	"wsm/report"
	"wsm/wkic"
	"wsm/workshop"
)

// SetupRoutes registers the whole API surface. Pattern shape is load-bearing:
// ServeMux picks the longest registered pattern, so the composite-key prefixes
// (/api/workshops/revenue/, /api/wics/manages/) must stay registered alongside
// their generic siblings (/api/workshops/, /api/wics/) or revenue and manages
// requests are captured by the wrong handler.
func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB) {

	mux.HandleFunc("/api/aics", aic.CollectionHandler(dbConn))
	mux.HandleFunc("/api/aics/search", aic.SearchHandler(dbConn))
	mux.HandleFunc("/api/aics/areas", aic.AreaCollectionHandler(dbConn))
	mux.HandleFunc("/api/aics/areas/", aic.AreaDeleteHandler(dbConn))
	mux.HandleFunc("/api/aics/", aic.ItemHandler(dbConn))

	mux.HandleFunc("/api/workshops", workshop.CollectionHandler(dbConn))
	mux.HandleFunc("/api/workshops/search", workshop.SearchHandler(dbConn))
	mux.HandleFunc("/api/workshops/area/", workshop.ByAreaHandler(dbConn))
	mux.HandleFunc("/api/workshops/revenue", workshop.RevenueCollectionHandler(dbConn))
	mux.HandleFunc("/api/workshops/revenue/", workshop.RevenueItemHandler(dbConn))
	mux.HandleFunc("/api/workshops/", workshop.ItemHandler(dbConn))

	mux.HandleFunc("/api/wics", wkic.CollectionHandler(dbConn))
	mux.HandleFunc("/api/wics/search", wkic.SearchHandler(dbConn))
	mux.HandleFunc("/api/wics/area/", wkic.ByAreaICHandler(dbConn))
	mux.HandleFunc("/api/wics/manages", wkic.ManagesCollectionHandler(dbConn))
	mux.HandleFunc("/api/wics/manages/workshop/", wkic.ManagesByWorkshopHandler(dbConn))
	mux.HandleFunc("/api/wics/manages/ic/", wkic.ManagesByICHandler(dbConn))
	mux.HandleFunc("/api/wics/manages/", wkic.ManagesDeleteHandler(dbConn))
	mux.HandleFunc("/api/wics/", wkic.ItemHandler(dbConn))

	mux.HandleFunc("/api/backup/export", backup.ExportHandler(dbConn))
	mux.HandleFunc("/api/backup/import", backup.ImportHandler(dbConn))

	mux.HandleFunc("/report", report.PageHandler(dbConn))
	mux.HandleFunc("/api/report/pdf", report.PDFHandler("http://localhost:"+config.GetConfig().Port))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler(dbConn)(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
}
