package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// ErrDisabled is returned by every operation when no object store is configured.
var ErrDisabled = errors.New("image storage disabled")

// ImageStorage stores exercise images in an object store.
type ImageStorage interface {
	// PresignedImageURL creates a temporary URL that allows GET requests for the object.
	PresignedImageURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// PutImage uploads an object. Used by the seeder.
	PutImage(ctx context.Context, objectKey, contentType string, body io.Reader) error
}

// ObjectKey converts a catalog image path (/exercises/<name>/images/<file>) into a bucket key.
func ObjectKey(imagePath string) string {
	return strings.TrimPrefix(path.Clean("/"+imagePath), "/")
}

type disabledStorage struct{}

// NewDisabledStorage returns an ImageStorage that fails every call with ErrDisabled.
func NewDisabledStorage() ImageStorage {
	return disabledStorage{}
}

func (disabledStorage) PresignedImageURL(context.Context, string, time.Duration) (string, error) {
	return "", ErrDisabled
}

func (disabledStorage) PutImage(context.Context, string, string, io.Reader) error {
	return ErrDisabled
}
