package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PublicPrefix is the URL path the HTTP layer serves the directory under.
const PublicPrefix = "/uploads"

// DiskStorage writes avatars to a local directory.
type DiskStorage struct {
	dir    string
	now    func() time.Time
	suffix func() string
	logger *logger.Logger
}

func NewDiskStorage(dir string, log *logger.Logger) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir %s: %w", dir, err)
	}
	return &DiskStorage{dir: dir, now: time.Now, suffix: shortID, logger: log.Named("DiskStorage")}, nil
}

func (s *DiskStorage) Dir() string { return s.dir }

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// fileName is "<unix-millis>-<short id>-<base name without whitespace>".
func (s *DiskStorage) fileName(original string) string {
	base := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, filepath.Base(original))
	return fmt.Sprintf("%d-%s-%s", s.now().UnixMilli(), s.suffix(), base)
}

func (s *DiskStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := s.fileName(fileName)
	target := filepath.Join(s.dir, name)

	if err := os.WriteFile(target, data, 0o644); err != nil {
		s.logger.Error("Failed to write upload", zap.String("path", target), zap.Error(err))
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	s.logger.Info("File stored", zap.String("path", target), zap.Int("size", len(data)))
	return PublicPrefix + "/" + name, nil
}
