package s3

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const bucketCheckTimeout = 10 * time.Second

// S3Storage keeps product images in a MinIO/S3 bucket under one folder prefix.
type S3Storage struct {
	client *minio.Client
	bucket string
	folder string
	logger *logger.Logger
}

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Folder    string
	UseSSL    bool
}

func NewS3Storage(opts Options, log *logger.Logger) (*S3Storage, error) {
	l := log.Named("S3Storage")
	l.Info("Initializing S3 MinIO Storage", zap.String("endpoint", opts.Endpoint), zap.String("bucket", opts.Bucket), zap.Bool("use_ssl", opts.UseSSL))

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		l.Error("Failed to create MinIO client", zap.Error(err))
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", opts.Endpoint, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), bucketCheckTimeout)
	defer cancel()

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		l.Error("Failed to check bucket", zap.String("bucket", opts.Bucket), zap.Error(err))
		return nil, fmt.Errorf("failed to check bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			l.Error("Failed to create bucket", zap.String("bucket", opts.Bucket), zap.Error(err))
			return nil, fmt.Errorf("failed to make bucket %s: %w", opts.Bucket, err)
		}
		l.Info("Bucket created", zap.String("bucket", opts.Bucket))
	}

	return &S3Storage{client: client, bucket: opts.Bucket, folder: opts.Folder, logger: l}, nil
}

// objectKey builds "<folder>/<uuid><ext>", keeping the original extension.
func objectKey(folder, fileName string) string {
	return path.Join(folder, uuid.New().String()+filepath.Ext(fileName))
}

func contentType(fileName string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func (s *S3Storage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	key := objectKey(s.folder, fileName)

	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(fileName),
	})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("bucket", s.bucket), zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", key, s.bucket, err)
	}
	s.logger.Info("File uploaded", zap.String("key", info.Key), zap.Int64("size", info.Size))

	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, key), nil
}
