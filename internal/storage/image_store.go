// Package storage re-hosts generated images into S3-compatible object
// storage so they outlive the provider's ephemeral URLs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// maxImageSize bounds fetched image bodies; provider images are a few MB.
const maxImageSize = 32 << 20

// ImageStore is the durable storage for generated images.
type ImageStore interface {
	// StoreFromURL downloads the image at sourceURL and stores it under key,
	// returning the public URL of the stored object.
	StoreFromURL(ctx context.Context, sourceURL, key string) (string, error)
	// DeleteByPrefix removes every object under the given key prefix and
	// returns the number of deleted objects.
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
	// IsDurable reports whether url already points at this store.
	IsDurable(url string) bool
}

// Config carries the S3-compatible endpoint settings.
type Config struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

type s3ImageStore struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	httpClient    *http.Client
	logger        *zap.Logger
}

var _ ImageStore = (*s3ImageStore)(nil)

// NewS3ImageStore creates an ImageStore backed by an S3-compatible bucket.
func NewS3ImageStore(ctx context.Context, cfg Config, logger *zap.Logger) (ImageStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load storage credentials: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	logger.Info("Image store created",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket))

	return &s3ImageStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		httpClient:    &http.Client{Timeout: 60 * time.Second},
		logger:        logger.Named("ImageStore"),
	}, nil
}

func (s *s3ImageStore) StoreFromURL(ctx context.Context, sourceURL, key string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch image: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return "", fmt.Errorf("failed to read image body: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	publicURL := s.publicBaseURL + "/" + key
	s.logger.Debug("Image stored",
		zap.String("key", key),
		zap.Int("sizeBytes", len(body)))
	return publicURL, nil
}

func (s *s3ImageStore) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	deleted := 0
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return deleted, fmt.Errorf("failed to list objects under %q: %w", prefix, err)
		}
		if len(page.Contents) == 0 {
			continue
		}

		objects := make([]types.ObjectIdentifier, 0, len(page.Contents))
		for _, obj := range page.Contents {
			objects = append(objects, types.ObjectIdentifier{Key: obj.Key})
		}

		_, err = s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{Objects: objects},
		})
		if err != nil {
			return deleted, fmt.Errorf("failed to delete objects under %q: %w", prefix, err)
		}
		deleted += len(objects)
	}

	return deleted, nil
}

func (s *s3ImageStore) IsDurable(url string) bool {
	return s.publicBaseURL != "" && strings.HasPrefix(url, s.publicBaseURL)
}
