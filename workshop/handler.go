// Package workshop exposes the workshop and revenue route group.
package workshop

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"wsm/database"
	"wsm/model"
	"wsm/web"
)

var titleCaser = cases.Title(language.English)

// normalizeArea trims and title-cases an area name so "  north ZONE " and
// "North Zone" refer to the same area row.
func normalizeArea(name string) string {
	return strings.TrimSpace(titleCaser.String(name))
}

// workshopPayload uses a pointer for manpower so a missing field can be told
// apart from an explicit zero.
type workshopPayload struct {
	WkCode         int    `json:"wkCode"`
	WkName         string `json:"wkName"`
	WkArea         string `json:"wkArea"`
	Manpower       *int   `json:"manpower"`
	CustomerVisits int    `json:"customer_visits"`
	Recovery       string `json:"recovery"`
}

func (p *workshopPayload) toModel() (model.Workshop, string) {
	recovery := strings.ToLower(strings.TrimSpace(p.Recovery))
	if recovery == "" {
		recovery = "no"
	}
	if recovery != "yes" && recovery != "no" {
		return model.Workshop{}, "Recovery must be 'yes' or 'no'."
	}
	return model.Workshop{
		WkCode:         p.WkCode,
		WkName:         p.WkName,
		WkArea:         normalizeArea(p.WkArea),
		Manpower:       *p.Manpower,
		CustomerVisits: p.CustomerVisits,
		Recovery:       recovery,
	}, ""
}

type revenuePayload struct {
	WkCode      int      `json:"wkcode"`
	Year        int      `json:"year"`
	Quarter     int      `json:"quarter"`
	TotalSales  *float64 `json:"total_sales"`
	ServiceCost *float64 `json:"service_cost"`
}

// CollectionHandler serves /api/workshops: GET lists all, POST creates one.
func CollectionHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			workshops, err := database.GetAllWorkshops(db)
			if err != nil {
				web.StoreError(w, err, "GET /api/workshops", "Failed to fetch all workshops.")
				return
			}
			web.JSON(w, http.StatusOK, workshops)
		case http.MethodPost:
			var payload workshopPayload
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				web.Message(w, http.StatusBadRequest, "Invalid request body.")
				return
			}
			if payload.WkCode == 0 || payload.WkName == "" || strings.TrimSpace(payload.WkArea) == "" || payload.Manpower == nil {
				web.Message(w, http.StatusBadRequest, "Missing required fields for Workshop (wkCode, wkName, wkArea, manpower).")
				return
			}
			wk, msg := payload.toModel()
			if msg != "" {
				web.Message(w, http.StatusBadRequest, msg)
				return
			}
			if _, err := database.AddWorkshop(db, wk); err != nil {
				web.StoreError(w, err, "POST /api/workshops", "Failed to add workshop.")
				return
			}
			web.JSON(w, http.StatusCreated, map[string]interface{}{
				"message": "Workshop added successfully (score calculated by store).",
				"wkCode":  wk.WkCode,
			})
		default:
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
		}
	}
}

// SearchHandler serves /api/workshops/search?term=.
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
		workshops, err := database.SearchWorkshopsByName(db, term)
		if err != nil {
			web.StoreError(w, err, "GET /api/workshops/search", "Failed to search workshops for term: "+term)
			return
		}
		web.JSON(w, http.StatusOK, workshops)
	}
}

// ByAreaHandler serves GET /api/workshops/area/{name}.
func ByAreaHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
			return
		}
		areaName := strings.TrimPrefix(r.URL.Path, "/api/workshops/area/")
		if areaName == "" {
			web.Message(w, http.StatusBadRequest, "Area name is required.")
			return
		}
		workshops, err := database.GetWorkshopsByArea(db, areaName)
		if err != nil {
			web.StoreError(w, err, "GET /api/workshops/area/"+areaName, "Failed to fetch workshops for area: "+areaName)
			return
		}
		web.JSON(w, http.StatusOK, workshops)
	}
}

// RevenueCollectionHandler serves /api/workshops/revenue: GET lists every
// revenue record, POST creates one.
func RevenueCollectionHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			revenues, err := database.GetAllRevenues(db)
			if err != nil {
				web.StoreError(w, err, "GET /api/workshops/revenue", "Failed to fetch all revenue records.")
				return
			}
			web.JSON(w, http.StatusOK, revenues)
		case http.MethodPost:
			var payload revenuePayload
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				web.Message(w, http.StatusBadRequest, "Invalid request body.")
				return
			}
			if payload.WkCode == 0 || payload.Year == 0 || payload.Quarter == 0 || payload.TotalSales == nil {
				web.Message(w, http.StatusBadRequest, "Missing required fields for Revenue (wkcode, year, quarter, total_sales).")
				return
			}
			if payload.Quarter < 1 || payload.Quarter > 4 {
				web.Message(w, http.StatusBadRequest, "Quarter must be between 1 and 4.")
				return
			}
			rev := model.Revenue{
				WkCode:     payload.WkCode,
				Year:       payload.Year,
				Quarter:    payload.Quarter,
				TotalSales: *payload.TotalSales,
			}
			if payload.ServiceCost != nil {
				rev.ServiceCost = *payload.ServiceCost
			}
			if _, err := database.AddRevenue(db, rev); err != nil {
				web.StoreError(w, err, "POST /api/workshops/revenue", "Failed to add revenue entry.")
				return
			}
			web.Message(w, http.StatusCreated, "Revenue entry added successfully (profit calculated).")
		default:
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
		}
	}
}

// RevenueItemHandler serves PUT and DELETE on
// /api/workshops/revenue/{code}/{year}/{quarter}. It must be registered on the
// /api/workshops/revenue/ prefix so these paths never fall through to the
// generic workshop item handler.
func RevenueItemHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/workshops/revenue/")
		parts := strings.Split(strings.Trim(rest, "/"), "/")
		if len(parts) != 3 {
			web.Message(w, http.StatusBadRequest, "Revenue key must be /{wkcode}/{year}/{quarter}.")
			return
		}
		wkCode, err1 := strconv.Atoi(parts[0])
		year, err2 := strconv.Atoi(parts[1])
		quarter, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			web.Message(w, http.StatusBadRequest, "Revenue key segments must be integers.")
			return
		}

		switch r.Method {
		case http.MethodPut:
			var payload revenuePayload
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				web.Message(w, http.StatusBadRequest, "Invalid request body.")
				return
			}
			if payload.TotalSales == nil || payload.ServiceCost == nil {
				web.Message(w, http.StatusBadRequest, "Missing required update fields (total_sales, service_cost).")
				return
			}
			rev := model.Revenue{
				WkCode:      wkCode,
				Year:        year,
				Quarter:     quarter,
				TotalSales:  *payload.TotalSales,
				ServiceCost: *payload.ServiceCost,
			}
			count, err := database.UpdateRevenue(db, rev)
			if err != nil {
				web.StoreError(w, err, "PUT /api/workshops/revenue", "Failed to update revenue entry.")
				return
			}
			if count == 0 {
				web.Message(w, http.StatusNotFound, "Revenue entry not found.")
				return
			}
			web.Message(w, http.StatusOK, "Revenue entry updated successfully (profit recalculated).")
		case http.MethodDelete:
			count, err := database.DeleteRevenue(db, wkCode, year, quarter)
			if err != nil {
				web.StoreError(w, err, "DELETE /api/workshops/revenue", "Failed to delete revenue entry.")
				return
			}
			if count == 0 {
				web.Message(w, http.StatusNotFound, "Revenue entry not found.")
				return
			}
			web.Message(w, http.StatusOK, "Revenue entry deleted successfully.")
		default:
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
		}
	}
}

// ItemHandler serves /api/workshops/{code} (PUT, DELETE) and
// /api/workshops/{code}/revenue (GET). Registered as the /api/workshops/
// fallback behind the search, area and revenue patterns.
func ItemHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/workshops/")
		parts := strings.Split(strings.Trim(rest, "/"), "/")

		wkCode, err := strconv.Atoi(parts[0])
		if err != nil {
			web.Message(w, http.StatusBadRequest, "Invalid workshop code.")
			return
		}

		if len(parts) == 2 && parts[1] == "revenue" {
			if r.Method != http.MethodGet {
				web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
				return
			}
			revenues, err := database.GetRevenuesByWorkshop(db, wkCode)
			if err != nil {
				web.StoreError(w, err, "GET /api/workshops/{code}/revenue",
					fmt.Sprintf("Failed to fetch revenues for workshop code %d.", wkCode))
				return
			}
			web.JSON(w, http.StatusOK, revenues)
			return
		}
		if len(parts) != 1 {
			web.Message(w, http.StatusNotFound, "Not found.")
			return
		}

		switch r.Method {
		case http.MethodPut:
			var payload workshopPayload
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				web.Message(w, http.StatusBadRequest, "Invalid request body.")
				return
			}
			if payload.WkName == "" || strings.TrimSpace(payload.WkArea) == "" || payload.Manpower == nil {
				web.Message(w, http.StatusBadRequest, "Missing required update fields (wkName, wkArea, manpower).")
				return
			}
			payload.WkCode = wkCode
			wk, msg := payload.toModel()
			if msg != "" {
				web.Message(w, http.StatusBadRequest, msg)
				return
			}
			count, err := database.UpdateWorkshop(db, wk)
			if err != nil {
				web.StoreError(w, err, "PUT /api/workshops/{code}",
					fmt.Sprintf("Failed to update workshop code %d.", wkCode))
				return
			}
			switch {
			case count == 0:
				web.Message(w, http.StatusNotFound, fmt.Sprintf("Workshop code %d not found.", wkCode))
			case count == 1:
				web.Message(w, http.StatusOK, fmt.Sprintf("Workshop code %d updated successfully (score recalculated).", wkCode))
			default:
				web.Message(w, http.StatusOK, fmt.Sprintf("Workshop code %d updated. Affected rows: %d.", wkCode, count))
			}
		case http.MethodDelete:
			count, err := database.DeleteWorkshop(db, wkCode)
			if err != nil {
				web.StoreError(w, err, "DELETE /api/workshops/{code}",
					fmt.Sprintf("Failed to delete workshop code %d.", wkCode))
				return
			}
			if count == 0 {
				web.Message(w, http.StatusNotFound, fmt.Sprintf("Workshop code %d not found.", wkCode))
				return
			}
			web.Message(w, http.StatusOK, fmt.Sprintf("Workshop code %d and related records deleted successfully.", wkCode))
		default:
			web.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
		}
	}
}
