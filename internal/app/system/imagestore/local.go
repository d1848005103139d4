package imagestore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// storedName matches the names Save generates.
var storedName = regexp.MustCompile(`^[0-9a-f]{32}(\.[a-z0-9]{1,8})?$`)

// Local writes images into a directory that is served under URLPrefix.
type Local struct {
	dir       string
	urlPrefix string
	log       *zap.Logger
}

// NewLocal creates dir if needed and returns a Local store.
func NewLocal(dir, urlPrefix string, logger *zap.Logger) (*Local, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("local image store: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("local image store: %w", err)
	}
	if urlPrefix == "" {
		urlPrefix = "/uploads"
	}
	return &Local{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		log:       logger,
	}, nil
}

// Name implements ImageStore.
func (l *Local) Name() string { return KindLocal }

// Dir is the directory files are written to.
func (l *Local) Dir() string { return l.dir }

// URLPrefix is the route the directory is served under.
func (l *Local) URLPrefix() string { return l.urlPrefix }

// Save writes the image under a random name and returns its URL path.
// The client filename only contributes its extension, and only when that
// extension names the detected content type.
func (l *Local) Save(ctx context.Context, u Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name, err := randomName(storedExt(u))
	if err != nil {
		return "", err
	}

	full := filepath.Join(l.dir, name)
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, u.Body); err != nil {
		f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	if l.log != nil {
		l.log.Debug("stored tutor image on disk",
			zap.String("file", name),
			zap.Int64("size", u.Size))
	}
	return path.Join(l.urlPrefix, name), nil
}

// Remove deletes a file previously returned by Save. References that do
// not point at a generated name under URLPrefix are refused.
func (l *Local) Remove(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir, name := path.Split(ref)
	if path.Clean(dir) != l.urlPrefix || !storedName.MatchString(name) {
		return fmt.Errorf("local image store: not a stored reference: %q", ref)
	}
	if err := os.Remove(filepath.Join(l.dir, name)); err != nil {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	if l.log != nil {
		l.log.Debug("removed tutor image from disk", zap.String("file", name))
	}
	return nil
}

// randomName returns 32 hex characters from crypto/rand followed by ext.
func randomName(ext string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("random filename: %w", err)
	}
	return hex.EncodeToString(b) + ext, nil
}
