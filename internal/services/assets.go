package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/remotehire/remotehire-backend/internal/config"
	"github.com/remotehire/remotehire-backend/internal/database"
)

// signedURLTTL is how long generated download links stay valid.
const signedURLTTL = 15 * time.Minute

// AssetService answers questions about uploaded file assets living in S3:
// whether a key exists, what its downloadable URL is, and whether the same
// object is already referenced by another record.
type AssetService struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

func NewAssetService(ctx context.Context, cfg *config.Config) (*AssetService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &AssetService{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.AWSBucketName,
	}, nil
}

// Exists checks each key with HeadObject. A missing object yields false
// rather than an error; other failures propagate.
func (s *AssetService) Exists(ctx context.Context, keys []string) ([]bool, error) {
	results := make([]bool, len(keys))
	for i, key := range keys {
		_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: &s.bucket,
			Key:    &key,
		})
		if err != nil {
			var notFound *types.NotFound
			if errors.As(err, &notFound) {
				results[i] = false
				continue
			}
			return nil, err
		}
		results[i] = true
	}
	return results, nil
}

// SignedURLs generates pre-signed GET URLs for the given object keys.
// Empty keys map to empty URLs.
func (s *AssetService) SignedURLs(ctx context.Context, keys []string) ([]string, error) {
	urls := make([]string, len(keys))
	for i, key := range keys {
		if key == "" {
			continue
		}
		req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: &s.bucket,
			Key:    &key,
		}, s3.WithPresignExpires(signedURLTTL))
		if err != nil {
			return nil, err
		}
		urls[i] = req.URL
	}
	return urls, nil
}

// SignedURL is the single-key convenience form of SignedURLs.
func (s *AssetService) SignedURL(ctx context.Context, key string) (string, error) {
	urls, err := s.SignedURLs(ctx, []string{key})
	if err != nil {
		return "", err
	}
	return urls[0], nil
}

// DeleteObjects removes the given keys from the bucket in one call.
func (s *AssetService) DeleteObjects(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	objects := make([]types.ObjectIdentifier, len(keys))
	for i := range keys {
		objects[i] = types.ObjectIdentifier{Key: &keys[i]}
	}
	_, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: &s.bucket,
		Delete: &types.Delete{Objects: objects},
	})
	return err
}

// FileNames extracts the object key (last path segment) from each URL.
// Clients send full URLs back on profile updates; records store bare keys.
func FileNames(urls []string) []string {
	names := make([]string, len(urls))
	for i, u := range urls {
		parts := strings.Split(u, "/")
		names[i] = parts[len(parts)-1]
	}
	return names
}

// CheckDuplicateAssetUsage scans every collection that references file keys
// and reports keys already used by some record. fieldName only decorates
// the message.
func CheckDuplicateAssetUsage(ctx context.Context, fileNames []string, fieldName string) (string, bool, error) {
	var duplicates []string
	for _, name := range fileNames {
		used, err := assetInUse(ctx, name)
		if err != nil {
			return fmt.Sprintf("an error occurred while checking %s", fieldName), false, err
		}
		if used {
			duplicates = append(duplicates, name)
		}
	}
	if len(duplicates) > 0 {
		return fmt.Sprintf("these %s are already used: %s", fieldName, strings.Join(duplicates, ", ")), false, nil
	}
	return fmt.Sprintf("%s is unique and can be used", fieldName), true, nil
}

func assetInUse(ctx context.Context, fileName string) (bool, error) {
	queries := []struct {
		collection string
		filter     bson.M
	}{
		{CandidateCollection, bson.M{"$or": []bson.M{
			{"avatar": fileName}, {"aboutVideo": fileName}, {"cv": fileName}, {"coverLetter": fileName},
		}}},
		{EmployerCollection, bson.M{"avatar": fileName}},
		{"jobapplies", bson.M{"$or": []bson.M{
			{"aboutVideo": fileName}, {"cv": fileName}, {"coverLetter": fileName},
		}}},
		{"testresults", bson.M{"$or": []bson.M{
			{"recordedVideo": fileName}, {"questions.fileAnswer": fileName},
		}}},
	}
	for _, q := range queries {
		err := database.DB.Collection(q.collection).FindOne(ctx, q.filter).Err()
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return false, err
		}
	}
	return false, nil
}
