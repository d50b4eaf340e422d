// Package web holds the response helpers shared by every handler package:
// JSON encoding and the single mapping from store errors to HTTP status codes.
package web

import (
	"encoding/json"
	"log"
	"net/http"

	"wsm/database"
)

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// StoreError resolves a data-access error to a response: constraint violations
// become 409 with the translated message, everything else is logged and
// becomes a 500 with the generic fallback so internals never leak.
func StoreError(w http.ResponseWriter, err error, logContext, fallbackMsg string) {
	if database.IsUniqueViolation(err) || database.IsForeignKeyViolation(err) {
		Message(w, http.StatusConflict, err.Error())
		return
	}
	log.Printf("%s: %v", logContext, err)
	Message(w, http.StatusInternalServerError, fallbackMsg)
}
