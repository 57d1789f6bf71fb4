package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sony/gobreaker"
)

// ObjectStore is the capability the upload paths depend on. Upload returns a
// public URL when the bucket allows public reads, otherwise the object key is
// what callers persist and PresignURL turns it into a temporary link.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	PresignURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type S3Store struct {
	client     *s3.Client
	uploader   *manager.Uploader
	breaker    *gobreaker.CircuitBreaker
	bucket     string
	region     string
	publicRead bool
}

func NewS3Store(ctx context.Context, region, bucket string, publicRead bool) (*S3Store, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg)
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "s3-upload",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &S3Store{
		client:     client,
		uploader:   manager.NewUploader(client),
		breaker:    cb,
		bucket:     bucket,
		region:     region,
		publicRead: publicRead,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return s.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		})
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	if s.publicRead {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, url.PathEscape(key)), nil
	}
	return key, nil
}

func (s *S3Store) PresignURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	p := s3.NewPresignClient(s.client)
	req, err := p.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}
