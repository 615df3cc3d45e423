package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

func (a *App) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("encode response", "error", err)
	}
}

// respondErr logs the given error and sends a JSON status response including the details.
func (a *App) respondErr(w http.ResponseWriter, status int, msg string, err error) {
	a.logger.Error(strings.ToLower(msg), "error", err)
	a.respondJSON(w, status, StatusResponse{
		Status: "unavailable",
		Error:  fmt.Sprintf("%s: %v", msg, err),
	})
}
