// internal/app/features/profiles/handler.go
package profiles

import (
	"context"

	uierrors "github.com/dalemusser/tutorhub/internal/app/features/errors"
	"github.com/dalemusser/tutorhub/internal/domain/models"
	"go.uber.org/zap"
)

// maxBodyBytes bounds a JSON profile body.
const maxBodyBytes = 1 << 20

// ProfileStore is the persistence one profile family needs.
type ProfileStore interface {
	Kind() models.ProfileKind
	List(ctx context.Context) ([]models.Profile, error)
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	Create(ctx context.Context, p models.Profile) (models.InsertAck, error)
	Delete(ctx context.Context, id string) (models.DeleteAck, error)
}

// Handler serves one profile family: confirmed tutors, users or students.
// Bootstrap builds one Handler per family, each over its own collection.
type Handler struct {
	Store  ProfileStore
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler wires a profile Handler. The logger is tagged with the
// family so log lines from /users and /students stay distinguishable.
func NewHandler(store ProfileStore, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  store,
		ErrLog: errLog,
		Log:    logger.With(zap.String("kind", string(store.Kind()))),
	}
}
