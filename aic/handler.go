// Package aic exposes the area in-charge and area route group.
package aic

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"wsm/database"
	"wsm/model"
	"wsm/web"
)

// CollectionHandler serves /api/aics: GET lists all AICs, POST creates one.
func CollectionHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			aics, err := database.GetAllAICs(db)
			if err != nil {
				web.StoreError(w, err, "GET /api/aics", "Failed to fetch all Area In-Charges.")
				return
			}
			web.JSON(w, http.StatusOK, aics)
		case http.MethodPost:
			var aic model.AreaInCharge
			if err := json.NewDecoder(r.Body).Decode(&aic); err != nil {
				web.Message(w, http.StatusBadRequest, "Invalid request body.")
				return
			}
			if aic.ID == 0 || aic.FirstName == "" || aic.LastName == "" {
				web.Message(w, http.StatusBadRequest, "Missing required fields for Area In-Charge (ID, FirstName, LastName).")
				return
			}
			if _, err := database.AddAIC(db, aic); err != nil {
				web.StoreError(w, err, "POST /api/aics", "Failed to add Area In-Charge.")
				return
			}
			web.JSON(w, http.StatusCreated, map[string]interface{}{
				"message": "Area In-Charge added successfully.",
				"ID":      aic.ID,
			})
		default:
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
		}
	}
}

// SearchHandler serves /api/aics/search?term=. An absent term is a caller
// error, not an empty result.
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
		aics, err := database.SearchAICsByName(db, term)
		if err != nil {
			web.StoreError(w, err, "GET /api/aics/search", "Failed to search Area In-Charges for term: "+term)
			return
		}
		web.JSON(w, http.StatusOK, aics)
	}
}

// AreaCollectionHandler serves /api/aics/areas: GET lists all areas, POST
// creates one.
func AreaCollectionHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			areas, err := database.GetAllAreas(db)
			if err != nil {
				web.StoreError(w, err, "GET /api/aics/areas", "Failed to fetch all areas.")
				return
			}
			web.JSON(w, http.StatusOK, areas)
		case http.MethodPost:
			var area model.Area
			if err := json.NewDecoder(r.Body).Decode(&area); err != nil {
				web.Message(w, http.StatusBadRequest, "Invalid request body.")
				return
			}
			if strings.TrimSpace(area.AreaName) == "" || area.AICID == 0 {
				web.Message(w, http.StatusBadRequest, "Area Name and Area IC ID are required.")
				return
			}
			if _, err := database.AddArea(db, area); err != nil {
				web.StoreError(w, err, "POST /api/aics/areas", "Failed to add Area.")
				return
			}
			web.Message(w, http.StatusCreated, "Area '"+strings.TrimSpace(area.AreaName)+"' added successfully.")
		default:
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
		}
	}
}

// AreaDeleteHandler serves DELETE /api/aics/areas/{name}. The name arrives
// URL-encoded; ServeMux has already decoded it by the time we trim the prefix.
func AreaDeleteHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
			return
		}
		areaName := strings.TrimPrefix(r.URL.Path, "/api/aics/areas/")
		if areaName == "" {
			web.Message(w, http.StatusBadRequest, "Area name is required.")
			return
		}
		count, err := database.DeleteArea(db, areaName)
		if err != nil {
			web.StoreError(w, err, "DELETE /api/aics/areas/"+areaName, "Failed to delete area '"+areaName+"'.")
			return
		}
		if count == 0 {
			web.Message(w, http.StatusNotFound, "Area '"+areaName+"' not found.")
			return
		}
		web.Message(w, http.StatusOK, "Area '"+areaName+"' deleted successfully.")
	}
}

// ItemHandler serves /api/aics/{id} (PUT, DELETE) and /api/aics/{id}/areas
// (GET). It is registered as the /api/aics/ fallback, after the more specific
// search and areas patterns.
func ItemHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/aics/")
		parts := strings.Split(strings.Trim(rest, "/"), "/")

		id, err := strconv.Atoi(parts[0])
		if err != nil {
			web.Message(w, http.StatusBadRequest, "Invalid AIC ID.")
			return
		}

		if len(parts) == 2 && parts[1] == "areas" {
			if r.Method != http.MethodGet {
				web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
				return
			}
			areas, err := database.GetAreasByAIC(db, id)
			if err != nil {
				web.StoreError(w, err, "GET /api/aics/{id}/areas", "Failed to fetch areas for AIC ID "+strconv.Itoa(id)+".")
				return
			}
			web.JSON(w, http.StatusOK, areas)
			return
		}
		if len(parts) != 1 {
			web.Message(w, http.StatusNotFound, "Not found.")
			return
		}

		switch r.Method {
		case http.MethodPut:
			var aic model.AreaInCharge
			if err := json.NewDecoder(r.Body).Decode(&aic); err != nil {
				web.Message(w, http.StatusBadRequest, "Invalid request body.")
				return
			}
			aic.ID = id
			if aic.FirstName == "" || aic.LastName == "" {
				web.Message(w, http.StatusBadRequest, "Missing required update fields (FirstName, LastName).")
				return
			}
			count, err := database.UpdateAIC(db, aic)
			if err != nil {
				web.StoreError(w, err, "PUT /api/aics/{id}", "Failed to update Area In-Charge ID "+strconv.Itoa(id)+".")
				return
			}
			switch {
			case count == 0:
				web.Message(w, http.StatusNotFound, "Area In-Charge ID "+strconv.Itoa(id)+" not found.")
			case count == 1:
				web.Message(w, http.StatusOK, "Area In-Charge ID "+strconv.Itoa(id)+" updated successfully.")
			default:
				web.Message(w, http.StatusOK, "Area In-Charge ID "+strconv.Itoa(id)+" update anomaly detected, "+strconv.FormatInt(count, 10)+" rows affected.")
			}
		case http.MethodDelete:
			count, err := database.DeleteAIC(db, id)
			if err != nil {
				web.StoreError(w, err, "DELETE /api/aics/{id}", "Failed to delete Area In-Charge ID "+strconv.Itoa(id)+".")
				return
			}
			if count == 0 {
				web.Message(w, http.StatusNotFound, "Area In-Charge ID "+strconv.Itoa(id)+" not found.")
				return
			}
			web.Message(w, http.StatusOK, "Area In-Charge ID "+strconv.Itoa(id)+" deleted successfully.")
		default:
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
		}
	}
}
