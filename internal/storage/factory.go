package storage

import (
	"context"
	"fmt"

	"github.com/remotehire/remotehire-backend/internal/config"
)

// NewProvider picks the upload backend from STORAGE_BACKEND.
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.StorageBackend {
	case "", "s3":
		return NewS3Provider(ctx, cfg)
	case "cloudinary":
		return NewCloudinaryProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
