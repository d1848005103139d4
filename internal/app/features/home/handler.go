package home

import (
	"net/http"

	"go.uber.org/zap"
)

// Banner is the body served at the root path.
const Banner = "TutorHub server is running"

// Handler serves the liveness banner.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – banner                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(Banner)); err != nil {
		h.Log.Debug("write banner", zap.Error(err))
	}
}
