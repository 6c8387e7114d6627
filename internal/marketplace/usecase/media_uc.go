package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"go.uber.org/zap"
)

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Upload is a file received from a multipart form.
type Upload struct {
	FileName string
	Data     []byte
}

// ValidateImageName checks the extension against the image allow-list.
func ValidateImageName(fileName string) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedImageExt[ext] {
		return domain.ErrUnsupportedImage
	}
	return nil
}

// MediaUsecase validates images and hands them to one storage backend.
type MediaUsecase struct {
	store  domain.MediaStorage
	logger *logger.Logger
}

func NewMediaUsecase(store domain.MediaStorage, log *logger.Logger) *MediaUsecase {
	return &MediaUsecase{store: store, logger: log.Named("MediaUsecase")}
}

// Ingest stores an image and returns its public URL.
func (uc *MediaUsecase) Ingest(ctx context.Context, upload *Upload) (string, error) {
	if upload == nil || len(upload.Data) == 0 {
		return "", domain.InvalidInput("Image file is empty")
	}
	if err := ValidateImageName(upload.FileName); err != nil {
		uc.logger.Warn("Rejected upload with disallowed extension", zap.String("file_name", upload.FileName))
		return "", err
	}

	ctx, span := tracer.Start(ctx, "MediaUsecase.Ingest")
	defer span.End()

	url, err := uc.store.Upload(ctx, upload.FileName, upload.Data)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Media upload failed", zap.String("file_name", upload.FileName), zap.Error(err))
		return "", fmt.Errorf("MediaUsecase.Ingest: %w: %v", domain.ErrStorage, err)
	}
	uc.logger.Info("Media uploaded", zap.String("file_name", upload.FileName), zap.String("url", url))
	return url, nil
}
