// internal/app/features/errors/errors.go
package errors

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/tutorhub/internal/app/system/jsonutil"
	"github.com/dalemusser/tutorhub/internal/app/system/oid"
	"github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Response is the body of every non-2xx JSON reply.
type Response struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// Write sends an error envelope. details may be nil.
func Write(w http.ResponseWriter, status int, msg string, details any) {
	jsonutil.Write(w, status, Response{Error: msg, Details: details})
}

// ErrorLogger logs handler failures with request context and writes the
// matching JSON reply.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	return []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	}
}

// ServerError logs err at error level and replies 500 with msg.
func (e *ErrorLogger) ServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	e.Log.Error(msg, e.fields(r, err)...)
	Write(w, http.StatusInternalServerError, msg, nil)
}

// ServerErrorDetails is ServerError that also returns err's text to the
// client, for failures of third-party services the client may need to see.
func (e *ErrorLogger) ServerErrorDetails(w http.ResponseWriter, r *http.Request, msg string, err error) {
	e.Log.Error(msg, e.fields(r, err)...)
	Write(w, http.StatusInternalServerError, msg, err.Error())
}

// BadRequest logs at info level and replies 400.
func (e *ErrorLogger) BadRequest(w http.ResponseWriter, r *http.Request, msg string, details any) {
	e.Log.Info("rejected request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("reason", msg))
	Write(w, http.StatusBadRequest, msg, details)
}

// StoreFailure maps an error from a store call to a reply. A malformed id
// is a 400 and a timeout a 503; everything else is a 500.
func (e *ErrorLogger) StoreFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, oid.ErrMalformed):
		e.BadRequest(w, r, "invalid id", nil)
	case errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err):
		e.Log.Error("database unavailable", e.fields(r, err)...)
		Write(w, http.StatusServiceUnavailable, "database unavailable", nil)
	default:
		e.ServerError(w, r, "database error", err)
	}
}
