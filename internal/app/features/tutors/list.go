// internal/app/features/tutors/list.go
package tutors

import (
	"net/http"

	"github.com/dalemusser/tutorhub/internal/app/system/jsonutil"
	"github.com/dalemusser/tutorhub/internal/app/system/timeouts"
)

// ServeList handles GET /tutors and returns every tutor.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list tutors")
	defer cancel()

	tutors, err := h.Store.List(ctx)
	if err != nil {
		h.ErrLog.StoreFailure(w, r, err)
		return
	}
	jsonutil.OK(w, tutors)
}
