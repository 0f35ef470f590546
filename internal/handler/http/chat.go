package http

import (
	"net/http"

	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/internal/utils"
	"github.com/MKhiriev/airguard-admin/models"
)

// listChat answers with a bare array, unlike the other list endpoints.
func (h *Handler) listChat(w http.ResponseWriter, r *http.Request) {
	messages, err := h.services.ChatService.List(r.Context())
	if err != nil {
		writeError(w, r, err, "error listing chat")
		return
	}

	utils.WriteJSON(w, nonNil(messages), http.StatusOK)
}

func (h *Handler) postChat(w http.ResponseWriter, r *http.Request) {
	var msg models.ChatMessage
	if err := utils.ReadJSON(r, &msg); err != nil {
		writeError(w, r, service.ErrInvalidDataProvided, "invalid JSON was passed")
		return
	}

	stored, err := h.services.ChatService.Post(r.Context(), msg)
	if err != nil {
		writeError(w, r, err, "error posting chat message")
		return
	}

	utils.WriteJSON(w, stored, http.StatusCreated)
}
