package storage

import (
	"context"
	"strings"

	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

// StoredFile is what callers persist (Key) and what they show clients (URL).
type StoredFile struct {
	Key string
	URL string
}

// FileStore keeps uploaded payment proofs and room images.
type FileStore interface {
	Save(ctx context.Context, folder, ext string, data []byte) (*StoredFile, error)
	URL(key string) string
	Delete(ctx context.Context, key string) error
}

// NewFileStore picks Cloudinary when CLOUDINARY_URL is set, local disk otherwise.
func NewFileStore(cfg utils.Config, log *zap.Logger) (FileStore, error) {
	if cfg.Storage.CloudinaryURL != "" {
		return NewCloudinaryStore(cfg.Storage.CloudinaryURL, log)
	}
	return NewLocalStore(cfg.Storage.UploadDir, strings.TrimRight(cfg.App.PublicURL, "/")+"/storage", log)
}

func isAbsoluteURL(key string) bool {
	return strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://")
}
