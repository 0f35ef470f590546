package http

import (
	"net/http"

	"github.com/MKhiriev/airguard-admin/internal/app"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/internal/utils"
	"github.com/MKhiriev/airguard-admin/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err, "error listing users")
		return
	}

	utils.WriteJSON(w, models.UsersResponse{Users: nonNil(users)}, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.UserService.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "error getting user")
		return
	}

	utils.WriteJSON(w, models.UserResponse{User: user}, http.StatusOK)
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var form models.UserForm
	if err := utils.ReadJSON(r, &form); err != nil {
		writeError(w, r, service.ErrInvalidDataProvided, "invalid JSON was passed")
		return
	}

	created, err := h.services.UserService.SignUp(r.Context(), form)
	if err != nil {
		writeError(w, r, err, "error signing up user")
		return
	}

	logger.FromRequest(r).Info().Str("id", created.ID).Str("account_id", created.AccountID).Msg("user created")
	utils.WriteMessage(w, app.MsgUserCreated, http.StatusCreated)
}

func (h *Handler) editUser(w http.ResponseWriter, r *http.Request) {
	var form models.UserForm
	if err := utils.ReadJSON(r, &form); err != nil {
		writeError(w, r, service.ErrInvalidDataProvided, "invalid JSON was passed")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.services.UserService.EditUser(r.Context(), id, form); err != nil {
		writeError(w, r, err, "error editing user")
		return
	}

	logger.FromRequest(r).Info().Str("id", id).Msg("user updated")
	utils.WriteMessage(w, app.MsgUserUpdated, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.services.UserService.DeleteUser(r.Context(), id); err != nil {
		writeError(w, r, err, "error deleting user")
		return
	}

	logger.FromRequest(r).Info().Str("id", id).Msg("user deleted")
	utils.WriteMessage(w, app.MsgUserDeleted, http.StatusOK)
}

func (h *Handler) listEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := h.services.UserService.ListEmails(r.Context())
	if err != nil {
		writeError(w, r, err, "error listing emails")
		return
	}

	resp := models.EmailsResponse{Emails: make([]models.EmailAddress, 0, len(emails))}
	for _, e := range emails {
		resp.Emails = append(resp.Emails, models.EmailAddress{Email: e})
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) listDeviceTokens(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.services.UserService.ListDeviceTokens(r.Context())
	if err != nil {
		writeError(w, r, err, "error listing device tokens")
		return
	}

	utils.WriteJSON(w, models.DeviceTokensResponse{Tokens: nonNil(tokens)}, http.StatusOK)
}

// nonNil makes empty collections encode as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
