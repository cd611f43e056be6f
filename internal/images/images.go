// Package images hosts product images and hands back stable URLs.
package images

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/jafarshop/storefront/internal/domain"
)

// Store persists an image and returns its reference
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (domain.ImageRef, error)
}

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Extension returns the file extension for an accepted content type
func Extension(contentType string) (string, bool) {
	mediaType := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	ext, ok := allowedTypes[strings.ToLower(mediaType)]
	return ext, ok
}

// ProductImageKey builds a unique object key under the product's prefix
func ProductImageKey(productID uuid.UUID, ext string) string {
	return path.Join("products", productID.String(), uuid.NewString()+ext)
}
