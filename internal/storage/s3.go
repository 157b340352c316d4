package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/remotehire/remotehire-backend/internal/config"
)

// S3Provider uploads directly to the asset bucket. Object keys are random
// so client-supplied file names can never collide or overwrite.
type S3Provider struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3Provider(ctx context.Context, cfg *config.Config) (*S3Provider, error) {
	if cfg.AWSBucketName == "" {
		return nil, fmt.Errorf("AWS_BUCKET_NAME required")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, err
	}
	return &S3Provider{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.AWSBucketName,
		region: cfg.AWSRegion,
	}, nil
}

func (p *S3Provider) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, string, error) {
	key := uuid.New().String() + filepath.Ext(header.Filename)
	contentType := header.Header.Get("Content-Type")

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &p.bucket,
		Key:         &key,
		Body:        file,
		ContentType: &contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, key)
	return key, url, nil
}
