package handlers

import (
	"net/http"

	"pawket-be/internal/admin"
)

// AdminDashboard returns aggregated store statistics.
func AdminDashboard(svc admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Dashboard(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load dashboard")
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"dashboard": d})
	}
}
