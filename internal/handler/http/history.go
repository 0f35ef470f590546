package http

import (
	"net/http"

	"github.com/MKhiriev/airguard-admin/internal/app"
	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/internal/utils"
	"github.com/MKhiriev/airguard-admin/models"
)

func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.services.HistoryService.List(r.Context())
	if err != nil {
		writeError(w, r, err, "error listing history")
		return
	}

	utils.WriteJSON(w, models.HistoryResponse{History: nonNil(entries)}, http.StatusOK)
}

func (h *Handler) postHistory(w http.ResponseWriter, r *http.Request) {
	var entry models.TimelineEntry
	if err := utils.ReadJSON(r, &entry); err != nil {
		writeError(w, r, service.ErrInvalidDataProvided, "invalid JSON was passed")
		return
	}

	if _, err := h.services.HistoryService.Post(r.Context(), entry); err != nil {
		writeError(w, r, err, "error posting history entry")
		return
	}

	utils.WriteMessage(w, app.MsgHistoryCreated, http.StatusCreated)
}
