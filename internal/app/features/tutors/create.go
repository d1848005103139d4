// internal/app/features/tutors/create.go
package tutors

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	uierrors "github.com/dalemusser/tutorhub/internal/app/features/errors"
	"github.com/dalemusser/tutorhub/internal/app/system/imagestore"
	"github.com/dalemusser/tutorhub/internal/app/system/jsonutil"
	"github.com/dalemusser/tutorhub/internal/app/system/timeouts"
	"github.com/dalemusser/tutorhub/internal/domain/models"
	"go.uber.org/zap"
)

// multipartMemory is how much of a multipart body is kept in memory before
// file parts spill to temporary files.
const multipartMemory = 8 << 20

// HandleCreate handles POST /tutors.
//
// The body is multipart/form-data with text fields name, dept, university,
// college, exp, phone and one file part named "file". Text fields are stored
// as submitted. The image is stored first; if that fails nothing is written
// to the database, and if the database write fails the image is removed
// where the store supports it.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Opts.MaxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.Log.Info("tutor create: body too large", zap.Int64("limit", tooBig.Limit))
			uierrors.Write(w, http.StatusRequestEntityTooLarge, "upload too large", nil)
			return
		}
		h.ErrLog.BadRequest(w, r, "invalid multipart form", err.Error())
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	tutor := models.Tutor{
		Name:       r.FormValue("name"),
		Dept:       r.FormValue("dept"),
		University: r.FormValue("university"),
		College:    r.FormValue("college"),
		Exp:        r.FormValue("exp"),
		Phone:      r.FormValue("phone"),
	}

	file, header, err := r.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart):
		if h.Opts.RequireImage {
			h.ErrLog.BadRequest(w, r, "No file uploaded", nil)
			return
		}
	case err != nil:
		h.ErrLog.BadRequest(w, r, "invalid file part", err.Error())
		return
	default:
		defer file.Close()
		ref, ok := h.saveImage(w, r, file, header)
		if !ok {
			return
		}
		tutor.Image = ref
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ack, err := h.Store.Create(ctx, tutor)
	if err != nil {
		h.discardImage(r.Context(), tutor.Image)
		h.ErrLog.StoreFailure(w, r, err)
		return
	}

	h.Log.Info("tutor created",
		zap.String("tutor_id", ack.InsertedID.Hex()),
		zap.String("image", tutor.Image))
	jsonutil.OK(w, ack)
}

// saveImage stores the uploaded file and returns its reference. On failure
// it has already written the reply and returns ok=false.
func (h *Handler) saveImage(w http.ResponseWriter, r *http.Request, file multipart.File, header *multipart.FileHeader) (string, bool) {
	upload, err := imagestore.Inspect(header.Filename, header.Size, file)
	if err != nil {
		if errors.Is(err, imagestore.ErrUnsupportedType) {
			h.ErrLog.BadRequest(w, r, "file must be an image", err.Error())
			return "", false
		}
		h.ErrLog.ServerErrorDetails(w, r, "Image upload failed", err)
		return "", false
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "tutor image upload")
	defer cancel()

	ref, err := h.Images.Save(ctx, upload)
	if h.Opts.Uploads != nil {
		h.Opts.Uploads.ObserveUpload(h.Images.Name(), err)
	}
	if err != nil {
		h.ErrLog.ServerErrorDetails(w, r, "Image upload failed", err)
		return "", false
	}
	return ref, true
}

// discardImage removes an image whose tutor document was never written.
func (h *Handler) discardImage(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	rm, ok := h.Images.(imagestore.Remover)
	if !ok {
		h.Log.Warn("orphaned tutor image",
			zap.String("store", h.Images.Name()),
			zap.String("image", ref))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Short())
	defer cancel()
	if err := rm.Remove(ctx, ref); err != nil {
		h.Log.Warn("could not remove orphaned tutor image",
			zap.String("store", h.Images.Name()),
			zap.String("image", ref),
			zap.Error(err))
	}
}
