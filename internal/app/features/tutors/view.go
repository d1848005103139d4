// internal/app/features/tutors/view.go
package tutors

import (
	"context"
	"net/http"

	"github.com/dalemusser/tutorhub/internal/app/system/jsonutil"
	"github.com/dalemusser/tutorhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeTutor handles GET /tutors/{id}. An unknown id answers JSON null.
func (h *Handler) ServeTutor(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	tutor, err := h.Store.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.StoreFailure(w, r, err)
		return
	}
	jsonutil.OK(w, tutor)
}
