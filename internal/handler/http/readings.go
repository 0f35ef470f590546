package http

import (
	"net/http"

	"github.com/MKhiriev/airguard-admin/internal/utils"
	"github.com/MKhiriev/airguard-admin/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listReadings(w http.ResponseWriter, r *http.Request) {
	readings, err := h.services.ReadingService.List(r.Context())
	if err != nil {
		writeError(w, r, err, "error listing readings")
		return
	}

	utils.WriteJSON(w, models.ReadingsResponse{Readings: nonNil(readings)}, http.StatusOK)
}

func (h *Handler) latestReadings(w http.ResponseWriter, r *http.Request) {
	readings, err := h.services.ReadingService.Latest(r.Context(), chi.URLParam(r, "model"))
	if err != nil {
		writeError(w, r, err, "error listing readings of model")
		return
	}

	utils.WriteJSON(w, models.ReadingsResponse{Readings: nonNil(readings)}, http.StatusOK)
}

func (h *Handler) chartReadings(w http.ResponseWriter, r *http.Request) {
	readings, err := h.services.ReadingService.Chart(r.Context())
	if err != nil {
		writeError(w, r, err, "error listing chart readings")
		return
	}

	utils.WriteJSON(w, models.ReadingsResponse{Readings: nonNil(readings)}, http.StatusOK)
}
