package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/kobbyjust/feedback-ingest/logger"
)

// attachmentLinkTTL is how long a generated attachment link stays valid.
const attachmentLinkTTL = 24 * time.Hour

// AttachmentStorage stores attachment bytes and produces time-limited
// access links for them.
type AttachmentStorage interface {
	Save(ctx context.Context, key string, body []byte, contentType string) error
	GetURL(ctx context.Context, key string) (string, error)
}

// S3AttachmentStorage stores attachments in an S3 bucket and issues
// presigned GET URLs with a 24-hour TTL.
type S3AttachmentStorage struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	bucketName string
}

// NewS3AttachmentStorage creates an S3-backed attachment storage instance.
func NewS3AttachmentStorage(client *s3.Client, bucketName string) *S3AttachmentStorage {
	return &S3AttachmentStorage{
		client:     client,
		presigner:  s3.NewPresignClient(client),
		bucketName: bucketName,
	}
}

// Save uploads the attachment bytes under the given key.
func (s *S3AttachmentStorage) Save(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put object failed: %w", err)
	}

	logger.GetLogger().Infow("Attachment stored",
		"bucket", s.bucketName,
		"key", key,
		"bytes", len(body))
	return nil
}

// GetURL returns a presigned download URL valid for 24 hours.
func (s *S3AttachmentStorage) GetURL(ctx context.Context, key string) (string, error) {
	result, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(attachmentLinkTTL))
	if err != nil {
		return "", fmt.Errorf("s3 presign failed: %w", err)
	}
	return result.URL, nil
}
