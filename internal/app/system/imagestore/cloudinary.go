package imagestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// DefaultCloudinaryFolder is the folder tutor images are uploaded into.
const DefaultCloudinaryFolder = "tutors"

// mediaUploader is the slice of Cloudinary's upload API used here.
type mediaUploader interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// Cloudinary streams images to a Cloudinary folder.
type Cloudinary struct {
	api    mediaUploader
	folder string
}

// NewCloudinary builds a Cloudinary store from account credentials.
func NewCloudinary(cloudName, apiKey, apiSecret, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return newCloudinary(&cld.Upload, folder), nil
}

func newCloudinary(api mediaUploader, folder string) *Cloudinary {
	if folder == "" {
		folder = DefaultCloudinaryFolder
	}
	return &Cloudinary{api: api, folder: folder}
}

// Name implements ImageStore.
func (c *Cloudinary) Name() string { return KindCloudinary }

// Save uploads the image and returns the secure (https) URL Cloudinary assigns.
func (c *Cloudinary) Save(ctx context.Context, u Upload) (string, error) {
	res, err := c.api.Upload(ctx, u.Body, uploader.UploadParams{Folder: c.folder})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res == nil {
		return "", errors.New("cloudinary upload: empty response")
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("cloudinary upload: response has no secure_url")
	}
	return res.SecureURL, nil
}
