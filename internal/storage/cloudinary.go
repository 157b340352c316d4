package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/remotehire/remotehire-backend/internal/config"
)

type CloudinaryProvider struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryProvider(cfg *config.Config) (*CloudinaryProvider, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryProvider{cld: cld}, nil
}

func (p *CloudinaryProvider) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, string, error) {
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read file: %w", err)
	}

	result, err := p.cld.Upload.Upload(ctx, fileBytes, uploader.UploadParams{
		Folder:       "remotehire",
		ResourceType: "auto", // image, video, or raw
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}

	return result.PublicID, result.SecureURL, nil
}
