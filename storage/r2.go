package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/salonewatch/bot-go/config"
)

// R2Store persists media to a Cloudflare R2 bucket through the S3 API.
type R2Store struct {
	client *s3.Client
	cfg    *config.R2Config
}

func NewR2Store(cfg *config.R2Config) *R2Store {
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region: cfg.Region,
	})

	return &R2Store{client: client, cfg: cfg}
}

func (s *R2Store) Save(ctx context.Context, kind string, data []byte, mimeType string) (string, error) {
	key := objectKey(kind, mimeType)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("put media object: %w", err)
	}

	return strings.TrimRight(s.cfg.PublicURL, "/") + "/" + key, nil
}
