package main

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const readyTimeout = 2 * time.Second

var errNoDatabase = errors.New("no database configured")

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleReady reports whether the database answers a ping.
func (a *App) handleReady(w http.ResponseWriter, r *http.Request) {
	if a.db == nil {
		a.respondErr(w, http.StatusServiceUnavailable, "Database unavailable", errNoDatabase)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()
	if err := a.db.Ping(ctx); err != nil {
		a.respondErr(w, http.StatusServiceUnavailable, "Database unavailable", err)
		return
	}
	a.respondJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
