// internal/app/features/tutors/routes.go
package tutors

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the tutor endpoints (typically under "/tutors"). Any
// createGuards wrap POST only, since that is the route that uploads.
func Routes(h *Handler, createGuards ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.With(createGuards...).Post("/", h.HandleCreate)
	r.Get("/{id}", h.ServeTutor)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
