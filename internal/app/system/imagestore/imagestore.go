// Package imagestore saves tutor images and returns the reference stored
// on the tutor document.
//
// One ImageStore is chosen at startup from configuration:
//   - cloudinary: uploads to a Cloudinary folder, returns the secure URL
//   - s3: puts the object into an S3-compatible bucket, returns its public URL
//   - local: writes under a local directory with a random name, returns a
//     path below the static upload route
package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// Store kinds accepted by New.
const (
	KindCloudinary = "cloudinary"
	KindS3         = "s3"
	KindLocal      = "local"
)

var (
	// ErrUnsupportedType is returned when the upload is not an image.
	ErrUnsupportedType = errors.New("uploaded file is not an image")
	// ErrUnknownKind is returned by New for an unrecognized store kind.
	ErrUnknownKind = errors.New("unknown image store")
)

// scriptable image types are served from our own origin, so they are
// refused even though their MIME type is image/*.
var scriptable = map[string]bool{
	"image/svg+xml": true,
}

// Upload is one image as received from the client.
type Upload struct {
	Filename    string // client-supplied, never used as a storage path
	ContentType string // detected from content by Inspect
	Ext         string // extension matching ContentType, e.g. ".png"
	Size        int64
	Body        io.Reader
}

// ImageStore persists an uploaded image and returns its reference.
type ImageStore interface {
	Save(ctx context.Context, u Upload) (string, error)
	Name() string
}

// Remover is implemented by stores that can delete a reference they
// returned from Save.
type Remover interface {
	Remove(ctx context.Context, ref string) error
}

// Config selects and configures the ImageStore built by New.
type Config struct {
	Kind string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	LocalPath string
	LocalURL  string

	S3Region    string
	S3Bucket    string
	S3Prefix    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
}

// New builds the ImageStore named by cfg.Kind.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (ImageStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case KindCloudinary:
		return NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	case KindS3:
		client, err := NewS3Client(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("s3 client: %w", err)
		}
		return NewS3(client, cfg.S3Bucket, cfg.S3Prefix, cfg.S3PublicURL, cfg.S3Region), nil
	case KindLocal:
		return NewLocal(cfg.LocalPath, cfg.LocalURL, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}

// sniffLen matches mimetype's default read limit.
const sniffLen = 3072

// Inspect detects the content type of body from its leading bytes and
// rewinds it. Non-image content and SVG yield ErrUnsupportedType.
func Inspect(filename string, size int64, body io.ReadSeeker) (Upload, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Upload{}, fmt.Errorf("read upload: %w", err)
	}
	if _, err := body.Seek(0, io.SeekStart); err != nil {
		return Upload{}, fmt.Errorf("rewind upload: %w", err)
	}

	mt := mimetype.Detect(head[:n])
	if !strings.HasPrefix(mt.String(), "image/") || scriptable[mt.String()] {
		return Upload{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
	}

	return Upload{
		Filename:    filename,
		ContentType: mt.String(),
		Ext:         mt.Extension(),
		Size:        size,
		Body:        body,
	}, nil
}

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// storedExt picks the extension a stored image is named with. The client's
// extension is kept only when it names the detected type, so "a.jpeg"
// stays ".jpeg" but "evil.html" holding a PNG becomes ".png".
func storedExt(u Upload) string {
	ext := strings.ToLower(filepath.Ext(u.Filename))
	if extPattern.MatchString(ext) && extNamesType(ext, u.ContentType) {
		return ext
	}
	if extPattern.MatchString(u.Ext) {
		return u.Ext
	}
	return ""
}

func extNamesType(ext, contentType string) bool {
	byExt, _, err := mime.ParseMediaType(mime.TypeByExtension(ext))
	if err != nil {
		return false
	}
	detected := mimetype.Lookup(contentType)
	return detected != nil && detected.Is(byExt)
}
