// Package wkic exposes the workshop in-charge and manages route group.
package wkic

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"wsm/database"
	"wsm/model"
	"wsm/web"
)

// CollectionHandler serves /api/wics: GET lists all WICs, POST creates one.
func CollectionHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			wics, err := database.GetAllWICs(db)
			if err != nil {
				web.StoreError(w, err, "GET /api/wics", "Failed to fetch all Workshop In-Charges.")
				return
			}
			web.JSON(w, http.StatusOK, wics)
		case http.MethodPost:
			var wic model.WorkshopIC
			if err := json.NewDecoder(r.Body).Decode(&wic); err != nil {
				web.Message(w, http.StatusBadRequest, "Invalid request body.")
				return
			}
			if wic.WkICID == 0 || wic.FName == "" || wic.LName == "" || wic.AreaIC == 0 {
				web.Message(w, http.StatusBadRequest, "Missing required fields for Workshop In-Charge (WkICID, FName, LName, AreaIC).")
				return
			}
			if _, err := database.AddWIC(db, wic); err != nil {
				web.StoreError(w, err, "POST /api/wics", "Failed to add Workshop In-Charge.")
				return
			}
			web.JSON(w, http.StatusCreated, map[string]interface{}{
				"message": "Workshop In-Charge added successfully.",
				"WkICID":  wic.WkICID,
			})
		default:
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
		}
	}
}

// SearchHandler serves /api/wics/search?term=.
func SearchHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
			return
		}
		term := r.URL.Query().Get("term")
		if term == "" {
			web.Message(w, http.StatusBadRequest, "Search term is required.")
			return
		}
		wics, err := database.SearchWICsByName(db, term)
		if err != nil {
			web.StoreError(w, err, "GET /api/wics/search", "Failed to search Workshop In-Charges for term: "+term)
			return
		}
		web.JSON(w, http.StatusOK, wics)
	}
}

// ByAreaICHandler serves GET /api/wics/area/{areaIcId}: the WICs supervised by
// one AIC.
func ByAreaICHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
			return
		}
		idStr := strings.TrimPrefix(r.URL.Path, "/api/wics/area/")
		areaICID, err := strconv.Atoi(idStr)
		if err != nil {
			web.Message(w, http.StatusBadRequest, "Invalid Area IC ID.")
			return
		}
		wics, err := database.GetWICsByAreaIC(db, areaICID)
		if err != nil {
			web.StoreError(w, err, "GET /api/wics/area/{areaIcId}",
				fmt.Sprintf("Failed to fetch Workshop In-Charges for AIC ID %d.", areaICID))
			return
		}
		web.JSON(w, http.StatusOK, wics)
	}
}

// ManagesCollectionHandler serves /api/wics/manages: GET lists every link,
// POST creates one.
func ManagesCollectionHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			manages, err := database.GetAllManages(db)
			if err != nil {
				web.StoreError(w, err, "GET /api/wics/manages", "Failed to fetch all manages entries.")
				return
			}
			web.JSON(w, http.StatusOK, manages)
		case http.MethodPost:
			var m model.Manages
			if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
				web.Message(w, http.StatusBadRequest, "Invalid request body.")
				return
			}
			if m.WkshpID == 0 || m.ICID == 0 {
				web.Message(w, http.StatusBadRequest, "Workshop ID and Workshop IC ID are required.")
				return
			}
			if _, err := database.AddManagesEntry(db, m); err != nil {
				web.StoreError(w, err, "POST /api/wics/manages", "Failed to add manages entry.")
				return
			}
			web.Message(w, http.StatusCreated, "Manages entry added successfully.")
		default:
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
		}
	}
}

// ManagesByWorkshopHandler serves GET /api/wics/manages/workshop/{id}.
func ManagesByWorkshopHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
			return
		}
		idStr := strings.TrimPrefix(r.URL.Path, "/api/wics/manages/workshop/")
		wkshpID, err := strconv.Atoi(idStr)
		if err != nil {
			web.Message(w, http.StatusBadRequest, "Invalid workshop ID.")
			return
		}
		manages, err := database.GetManagesByWorkshop(db, wkshpID)
		if err != nil {
			web.StoreError(w, err, "GET /api/wics/manages/workshop/{id}",
				fmt.Sprintf("Failed to fetch manages entries for workshop %d.", wkshpID))
			return
		}
		web.JSON(w, http.StatusOK, manages)
	}
}

// ManagesByICHandler serves GET /api/wics/manages/ic/{id}.
func ManagesByICHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
			return
		}
		idStr := strings.TrimPrefix(r.URL.Path, "/api/wics/manages/ic/")
		icID, err := strconv.Atoi(idStr)
		if err != nil {
			web.Message(w, http.StatusBadRequest, "Invalid Workshop IC ID.")
			return
		}
		manages, err := database.GetManagesByIC(db, icID)
		if err != nil {
			web.StoreError(w, err, "GET /api/wics/manages/ic/{id}",
				fmt.Sprintf("Failed to fetch manages entries for WIC %d.", icID))
			return
		}
		web.JSON(w, http.StatusOK, manages)
	}
}

// ManagesDeleteHandler serves DELETE /api/wics/manages/{wkshpId}/{icId}.
// Registered on the /api/wics/manages/ prefix so the composite-key path never
// falls through to the generic WIC item handler.
func ManagesDeleteHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
			return
		}
		rest := strings.TrimPrefix(r.URL.Path, "/api/wics/manages/")
		parts := strings.Split(strings.Trim(rest, "/"), "/")
		if len(parts) != 2 {
			web.Message(w, http.StatusBadRequest, "Manages key must be /{wkshpId}/{icId}.")
			return
		}
		wkshpID, err1 := strconv.Atoi(parts[0])
		icID, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			web.Message(w, http.StatusBadRequest, "Manages key segments must be integers.")
			return
		}
		count, err := database.DeleteManagesEntry(db, wkshpID, icID)
		if err != nil {
			web.StoreError(w, err, "DELETE /api/wics/manages", "Failed to delete manages entry.")
			return
		}
		if count == 0 {
			web.Message(w, http.StatusNotFound, "Manages entry not found.")
			return
		}
		web.Message(w, http.StatusOK, "Manages entry deleted successfully.")
	}
}

// ItemHandler serves /api/wics/{id} (PUT, DELETE). Registered as the
// /api/wics/ fallback behind the search, area and manages patterns.
func ItemHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/wics/"), "/")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			web.Message(w, http.StatusBadRequest, "Invalid Workshop IC ID.")
			return
		}

		switch r.Method {
		case http.MethodPut:
			var wic model.WorkshopIC
			if err := json.NewDecoder(r.Body).Decode(&wic); err != nil {
				web.Message(w, http.StatusBadRequest, "Invalid request body.")
				return
			}
			wic.WkICID = id
			if wic.FName == "" || wic.LName == "" || wic.AreaIC == 0 {
				web.Message(w, http.StatusBadRequest, "Missing required update fields (FName, LName, AreaIC).")
				return
			}
			count, err := database.UpdateWIC(db, wic)
			if err != nil {
				web.StoreError(w, err, "PUT /api/wics/{id}",
					fmt.Sprintf("Failed to update Workshop In-Charge ID %d.", id))
				return
			}
			switch {
			case count == 0:
				web.Message(w, http.StatusNotFound, fmt.Sprintf("Workshop In-Charge ID %d not found.", id))
			case count == 1:
				web.Message(w, http.StatusOK, fmt.Sprintf("Workshop In-Charge ID %d updated successfully.", id))
			default:
				web.Message(w, http.StatusOK, fmt.Sprintf("Workshop In-Charge ID %d update anomaly detected, %d rows affected.", id, count))
			}
		case http.MethodDelete:
			count, err := database.DeleteWIC(db, id)
			if err != nil {
				web.StoreError(w, err, "DELETE /api/wics/{id}",
					fmt.Sprintf("Failed to delete Workshop In-Charge ID %d.", id))
				return
			}
			if count == 0 {
				web.Message(w, http.StatusNotFound, fmt.Sprintf("Workshop In-Charge ID %d not found.", id))
				return
			}
			web.Message(w, http.StatusOK, fmt.Sprintf("Workshop In-Charge ID %d deleted successfully.", id))
		default:
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
		}
	}
}
