// internal/app/features/profiles/list.go
package profiles

import (
	"context"
	"net/http"

	"github.com/dalemusser/tutorhub/internal/app/system/jsonutil"
	"github.com/dalemusser/tutorhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeList handles GET on the family root.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list profiles")
	defer cancel()

	list, err := h.Store.List(ctx)
	if err != nil {
		h.ErrLog.StoreFailure(w, r, err)
		return
	}
	jsonutil.OK(w, list)
}

// ServeProfile handles GET /{id}. An unknown id answers JSON null.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Store.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.StoreFailure(w, r, err)
		return
	}
	jsonutil.OK(w, p)
}
