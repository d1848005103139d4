// internal/app/features/profiles/routes.go
package profiles

import "github.com/go-chi/chi/v5"

// RouteOptions picks which single-document routes a family exposes.
// List and create are always mounted.
type RouteOptions struct {
	Get    bool
	Delete bool
}

// Routes returns the subrouter for one profile family.
func Routes(h *Handler, opts RouteOptions) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	if opts.Get {
		r.Get("/{id}", h.ServeProfile)
	}
	if opts.Delete {
		r.Delete("/{id}", h.HandleDelete)
	}
	return r
}
