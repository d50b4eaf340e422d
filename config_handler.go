package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"

	"wsm/config"
	"wsm/loader"
	"wsm/web"
)

// GetConfigHandler returns the current configuration.
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		web.JSON(w, http.StatusOK, config.GetConfig())
	}
}

// SaveConfigHandler saves the configuration and reinstalls the score triggers
// so new weights apply to subsequent workshop writes.
func SaveConfigHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&newCfg); err != nil {
			web.Message(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		if newCfg.ScoreManpowerWeight < 0 || newCfg.ScoreVisitWeight < 0 || newCfg.ScoreRecoveryBonus < 0 {
			web.Message(w, http.StatusBadRequest, "Score weights must not be negative.")
			return
		}

		if err := config.SaveConfig(newCfg); err != nil {
			log.Printf("Error saving config: %v", err)
			web.Message(w, http.StatusInternalServerError, "Failed to save configuration.")
			return
		}

		if err := loader.ApplyScoreTriggers(db, config.GetConfig()); err != nil {
			log.Printf("Error reinstalling score triggers: %v", err)
			web.Message(w, http.StatusInternalServerError, "Configuration saved but score triggers could not be reinstalled.")
			return
		}

		web.JSON(w, http.StatusOK, config.GetConfig())
	}
}
