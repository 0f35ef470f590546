package http

import (
	"net/http"

	"github.com/MKhiriev/airguard-admin/internal/app"
	"github.com/MKhiriev/airguard-admin/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/users/login", h.login)
		r.Get("/version", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.listUsers)
			r.Get("/emails", h.listEmails)
			r.Get("/notifications/getNotifs", h.listDeviceTokens)
			r.Post("/signUp", h.signUp)
			r.Post("/editUser/{id}", h.editUser)
			r.Post("/deleteUser/{id}", h.deleteUser)
			r.Get("/{id}", h.getUser)
		})

		r.Get("/aqReadings", h.listReadings)
		r.Get("/aqReadings/{model}", h.latestReadings)
		r.Get("/aqChart", h.chartReadings)

		r.Get("/chat", h.listChat)
		r.Post("/chat", h.postChat)

		r.Get("/history", h.listHistory)
		r.Post("/history", h.postHistory)

		r.Post("/email/send", h.sendEmail)
		r.Post("/expoToken/sendNotification", h.sendNotification)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteMessage(w, app.MsgRouteNotFound, http.StatusNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
