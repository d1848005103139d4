// internal/app/features/profiles/create.go
package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/tutorhub/internal/app/system/inputval"
	"github.com/dalemusser/tutorhub/internal/app/system/jsonutil"
	"github.com/dalemusser/tutorhub/internal/app/system/timeouts"
	"github.com/dalemusser/tutorhub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate handles POST on the family root with a JSON object body.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var p models.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.ErrLog.BadRequest(w, r, "invalid request body", err.Error())
		return
	}

	if err := inputval.ValidateProfile(p); err != nil {
		var verr *inputval.Error
		if errors.As(err, &verr) {
			h.ErrLog.BadRequest(w, r, "invalid request body", verr.Fields)
			return
		}
		h.ErrLog.ServerError(w, r, "validation failed", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ack, err := h.Store.Create(ctx, p)
	if err != nil {
		h.ErrLog.StoreFailure(w, r, err)
		return
	}

	h.Log.Info("profile created", zap.String("id", ack.InsertedID.Hex()))
	jsonutil.OK(w, ack)
}
