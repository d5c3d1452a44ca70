package mediastore

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Config points the store at an S3-compatible service. Endpoint is left
// empty for real AWS and set for MinIO-style deployments.
type Config struct {
	Region    string
	Bucket    string
	Endpoint  string
	AccessKey string
	SecretKey string
	// PublicBaseURL is prepended to object keys to form the URL handed
	// back to clients.
	PublicBaseURL string
}

type Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	base := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if base == "" {
		if cfg.Endpoint != "" {
			base = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &Store{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: base,
	}, nil
}

// ObjectKey builds a date-partitioned storage key so uploads never
// collide regardless of the original filename.
func ObjectKey(prefix, filename string) string {
	d := time.Now()
	ext := path.Ext(filename)
	return fmt.Sprintf("%s/%d/%02d/%s%s", prefix, d.Year(), int(d.Month()), uuid.NewString(), ext)
}

func (s *Store) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.publicBaseURL + "/" + key, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}
