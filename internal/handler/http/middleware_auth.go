package http

import (
	"net/http"

	"github.com/MKhiriev/airguard-admin/internal/app"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and stores the user id and role in
// the request context (see [utils.WithUser]) before delegating to the next
// handler. A missing, malformed, expired or otherwise invalid token is
// answered with 401 and [app.MsgTokenIsExpiredOrInvalid], which the console
// turns into a forced logout.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrEmptyAuthorizationHeader).Msg("request rejected")
			utils.WriteMessage(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Warn().Err(err).Msg("request rejected")
			utils.WriteMessage(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Warn().Err(err).Msg("error occurred during parsing token")
			utils.WriteMessage(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		// ParseToken guarantees a subject.
		userID, _ := token.GetUserID()
		ctx = utils.WithUser(ctx, userID, token.Role)
		publishContext(w, ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
