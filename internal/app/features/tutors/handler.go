// internal/app/features/tutors/handler.go
package tutors

import (
	"context"

	uierrors "github.com/dalemusser/tutorhub/internal/app/features/errors"
	"github.com/dalemusser/tutorhub/internal/app/system/imagestore"
	"github.com/dalemusser/tutorhub/internal/domain/models"
	"go.uber.org/zap"
)

// DefaultMaxUploadBytes caps the multipart body when Options leaves it zero.
const DefaultMaxUploadBytes int64 = 10 << 20

// TutorStore is the persistence the tutor handlers need.
type TutorStore interface {
	List(ctx context.Context) ([]models.Tutor, error)
	GetByID(ctx context.Context, id string) (*models.Tutor, error)
	Create(ctx context.Context, t models.Tutor) (models.InsertAck, error)
	Delete(ctx context.Context, id string) (models.DeleteAck, error)
}

// UploadObserver is told about every image upload attempt.
type UploadObserver interface {
	ObserveUpload(store string, err error)
}

// Options tune tutor creation.
type Options struct {
	// RequireImage rejects a create without a file part. When false the
	// tutor is stored with an empty image reference.
	RequireImage bool
	// MaxUploadBytes bounds the whole multipart body.
	MaxUploadBytes int64
	// Uploads may be nil.
	Uploads UploadObserver
}

// Handler serves the /tutors routes.
type Handler struct {
	Store  TutorStore
	Images imagestore.ImageStore
	Opts   Options
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler wires a tutor Handler.
func NewHandler(store TutorStore, images imagestore.ImageStore, opts Options, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{
		Store:  store,
		Images: images,
		Opts:   opts,
		ErrLog: errLog,
		Log:    logger,
	}
}
