// Package handler exposes the JSON API consumed by the UI layer. The
// core produces no user-facing text; handlers translate business
// outcomes (false/nil) into statuses and leave wording to the client.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const (
	// minDay/maxDay bound open-ended date ranges.
	minDay = "0001-01-01"
	maxDay = "9999-12-31"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// rangeParams reads optional from/to query params, defaulting to an
// unbounded range.
func rangeParams(r *http.Request) (from, to string) {
	from = r.URL.Query().Get("from")
	if from == "" {
		from = minDay
	}
	to = r.URL.Query().Get("to")
	if to == "" {
		to = maxDay
	}
	return from, to
}
