package http

import (
	"net/http"

	"github.com/MKhiriev/airguard-admin/internal/app"
	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/internal/utils"
	"github.com/MKhiriev/airguard-admin/models"
)

// sendEmail records the email in the outbox; nothing is delivered.
func (h *Handler) sendEmail(w http.ResponseWriter, r *http.Request) {
	var email models.Email
	if err := utils.ReadJSON(r, &email); err != nil {
		writeError(w, r, service.ErrInvalidDataProvided, "invalid JSON was passed")
		return
	}

	if err := h.services.OutboxService.SendEmail(r.Context(), email); err != nil {
		writeError(w, r, err, "error sending email")
		return
	}

	utils.WriteMessage(w, app.MsgEmailSent, http.StatusOK)
}

func (h *Handler) sendNotification(w http.ResponseWriter, r *http.Request) {
	var n models.PushNotification
	if err := utils.ReadJSON(r, &n); err != nil {
		writeError(w, r, service.ErrInvalidDataProvided, "invalid JSON was passed")
		return
	}

	if err := h.services.OutboxService.SendNotification(r.Context(), n); err != nil {
		writeError(w, r, err, "error sending notification")
		return
	}

	utils.WriteMessage(w, app.MsgNotificationSent, http.StatusOK)
}
