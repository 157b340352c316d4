package storage

import (
	"context"
	"mime/multipart"
)

// Provider is the common interface for direct upload backends.
type Provider interface {
	// Upload streams a multipart file and returns the stored object key and
	// its public URL.
	Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (key string, url string, err error)
}
