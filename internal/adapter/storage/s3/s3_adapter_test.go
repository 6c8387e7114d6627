package s3

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := objectKey("olx-products", "My Bike.JPG")

	require.True(t, strings.HasPrefix(key, "olx-products/"))
	require.True(t, strings.HasSuffix(key, ".JPG"))
	id := strings.TrimSuffix(strings.TrimPrefix(key, "olx-products/"), ".JPG")
	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	assert.NotEqual(t, key, objectKey("olx-products", "My Bike.JPG"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", contentType("a.PNG"))
	assert.Equal(t, "application/octet-stream", contentType("noext"))
}
