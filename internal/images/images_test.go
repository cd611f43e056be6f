package images

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestExtension(t *testing.T) {
	ext, ok := Extension("image/PNG")
	require.True(t, ok)
	require.Equal(t, ".png", ext)

	ext, ok = Extension("image/jpeg; charset=binary")
	require.True(t, ok)
	require.Equal(t, ".jpg", ext)

	_, ok = Extension("application/pdf")
	require.False(t, ok)
}

func TestProductImageKey(t *testing.T) {
	id := uuid.New()
	key := ProductImageKey(id, ".webp")

	require.True(t, strings.HasPrefix(key, "products/"+id.String()+"/"))
	require.True(t, strings.HasSuffix(key, ".webp"))
	require.NotEqual(t, key, ProductImageKey(id, ".webp"))
}

func TestS3Store_URL(t *testing.T) {
	store := &s3Store{baseURL: "https://cdn.example.com"}
	require.Equal(t, "https://cdn.example.com/products/a.png", store.URL("/products/a.png"))
}
