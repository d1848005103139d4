package health

import (
	"context"
	"net/http"

	"github.com/dalemusser/tutorhub/internal/app/system/jsonutil"
	"github.com/dalemusser/tutorhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger is the part of *mongo.Client the health check uses.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client     Pinger
	ImageStore string
	Log        *zap.Logger
}

// NewHandler constructs a health Handler. imageStore names the active
// image backend and is reported as-is.
func NewHandler(client Pinger, imageStore string, logger *zap.Logger) *Handler {
	return &Handler{
		Client:     client,
		ImageStore: imageStore,
		Log:        logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status     string `json:"status"`
	Database   string `json:"database"`
	ImageStore string `json:"image_store,omitempty"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "image_store":"local" }
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	resp := healthResponse{
		Status:     "ok",
		Database:   "connected",
		ImageStore: h.ImageStore,
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		jsonutil.Write(w, http.StatusServiceUnavailable, resp)
		return
	}

	jsonutil.OK(w, resp)
}
