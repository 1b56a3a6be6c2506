package rest

import (
	"encoding/json"
	"net/http"

	"github.com/nDmitry/ytblog/internal/app"
)

// writeJSON sends v with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		handleBadErrorResponse(err, v)
	}
}

// handleError responds with an error message
func handleError(w http.ResponseWriter, err error, statusCode int) {
	app.Logger().Error("Request error", "error", err, "status", statusCode)

	writeJSON(w, statusCode, map[string]string{"error": err.Error()})
}

func handleBadErrorResponse(err error, resp any) {
	app.Logger().Error(
		"failed to encode a response",
		"error", err,
		"response", resp,
	)
}
