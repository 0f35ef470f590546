package http

import (
	"net/http"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/internal/utils"
	"github.com/MKhiriev/airguard-admin/models"
)

// login exchanges credentials for the account record and a bearer token.
// The console accepts only admins, but the API signs in any ready account
// because the mobile app shares it.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds models.Credentials
	if err := utils.ReadJSON(r, &creds); err != nil {
		writeError(w, r, service.ErrInvalidDataProvided, "invalid JSON was passed")
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, creds)
	if err != nil {
		writeError(w, r, err, "login failed")
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		writeError(w, r, err, "creation of token failed")
		return
	}

	log.Info().Str("id", foundUser.ID).Str("role", string(foundUser.Role)).Msg("user successfully logged in")

	w.Header().Set("Authorization", "Bearer "+token.SignedString)
	utils.WriteJSON(w, models.LoginResponse{User: foundUser, Token: token.SignedString}, http.StatusOK)
}
