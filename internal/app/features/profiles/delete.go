// internal/app/features/profiles/delete.go
package profiles

import (
	"context"
	"net/http"

	"github.com/dalemusser/tutorhub/internal/app/system/jsonutil"
	"github.com/dalemusser/tutorhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	ack, err := h.Store.Delete(ctx, id)
	if err != nil {
		h.ErrLog.StoreFailure(w, r, err)
		return
	}

	h.Log.Info("profile delete", zap.String("id", id), zap.Int64("deleted", ack.DeletedCount))
	jsonutil.OK(w, ack)
}
