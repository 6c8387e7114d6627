package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestValidateImageName(t *testing.T) {
	for _, name := range []string{"a.jpg", "a.JPEG", "photo.png", "x.gif", "y.webp"} {
		assert.NoError(t, ValidateImageName(name), name)
	}
	for _, name := range []string{"a.exe", "noext", "a.svg", "a.png.sh", ""} {
		assert.ErrorIs(t, ValidateImageName(name), domain.ErrUnsupportedImage, name)
	}
}

func TestMediaUsecase_Ingest(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		storage := new(MockMediaStorage)
		storage.On("Upload", mock.Anything, "a.png", []byte{1}).Return("http://cdn/a.png", nil).Once()
		uc := NewMediaUsecase(storage, logger.NewNop())

		url, err := uc.Ingest(ctx, &Upload{FileName: "a.png", Data: []byte{1}})

		require.NoError(t, err)
		assert.Equal(t, "http://cdn/a.png", url)
		storage.AssertExpectations(t)
	})

	t.Run("EmptyFile", func(t *testing.T) {
		storage := new(MockMediaStorage)
		uc := NewMediaUsecase(storage, logger.NewNop())

		_, errNil := uc.Ingest(ctx, nil)
		_, errEmpty := uc.Ingest(ctx, &Upload{FileName: "a.png"})

		assert.ErrorIs(t, errNil, domain.ErrInvalidInput)
		assert.ErrorIs(t, errEmpty, domain.ErrInvalidInput)
		storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("BackendFailure", func(t *testing.T) {
		storage := new(MockMediaStorage)
		storage.On("Upload", mock.Anything, "a.png", mock.Anything).Return("", errors.New("bucket missing")).Once()
		uc := NewMediaUsecase(storage, logger.NewNop())

		_, err := uc.Ingest(ctx, &Upload{FileName: "a.png", Data: []byte{1}})

		assert.ErrorIs(t, err, domain.ErrStorage)
		assert.Contains(t, err.Error(), "bucket missing")
	})
}
