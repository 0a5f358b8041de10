package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"chirp/config"
)

const presignExpiry = 15 * time.Minute

// S3Store implements BlobStore against any S3-compatible endpoint. In
// development this is MinIO with static credentials and a BaseEndpoint
// override.
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// NewS3Store builds the client from the storage section of the app config.
func NewS3Store(ctx context.Context, sc config.StorageConfig) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(sc.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			sc.AccessKey,
			sc.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if sc.Endpoint != "" {
			o.BaseEndpoint = aws.String(sc.Endpoint)
		}
		o.UsePathStyle = true // MinIO
	})

	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  sc.Bucket,
	}, nil
}

// newStorageKey returns a fresh opaque blob key. Keys are flat so they can be
// embedded in a single URL path segment.
func newStorageKey() string {
	return uuid.New().String()
}

func (s *S3Store) CreateAndUpload(ctx context.Context, up Upload) (BlobRef, error) {
	key := newStorageKey()
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        up.Reader,
		ContentType: aws.String(up.ContentType),
	})
	if err != nil {
		return BlobRef{}, fmt.Errorf("upload blob %s: %w", up.Filename, err)
	}
	return BlobRef{
		Key:         key,
		Filename:    up.Filename,
		ContentType: up.ContentType,
		ByteSize:    up.ByteSize,
	}, nil
}

func (s *S3Store) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("presign blob %s: %w", key, err)
	}
	return req.URL, nil
}

func (s *S3Store) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("get blob %s: %w", key, err)
	}
	contentType := ""
	if out.ContentType != nil {
		contentType = *out.ContentType
	}
	return out.Body, contentType, nil
}
