package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/forkfeed/forkfeed-backend/config"
)

// ImageStore persists recipe images and returns a public URL.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// S3ImageStore stores recipe images in the configured S3 bucket.
type S3ImageStore struct {
	s3Config *config.S3Config
}

func NewS3ImageStore(s3Config *config.S3Config) *S3ImageStore {
	return &S3ImageStore{s3Config: s3Config}
}

// Upload writes the image under a fresh key and returns its public URL.
func (s *S3ImageStore) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	ext := "bin"
	switch contentType {
	case "image/png":
		ext = "png"
	case "image/jpeg":
		ext = "jpg"
	case "image/gif":
		ext = "gif"
	case "image/webp":
		ext = "webp"
	}
	key := fmt.Sprintf("recipe-images/%s.%s", uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[ImageStore] Uploaded recipe image: %s", publicURL)
	return publicURL, nil
}

// DisabledImageStore rejects uploads. Used when no bucket is configured;
// recipes can still reference already-hosted image URLs.
type DisabledImageStore struct{}

func (DisabledImageStore) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	return "", newValidationError("image", "image uploads are not configured")
}

// DecodeBase64Image parses a "data:image/png;base64,..." field value into
// raw bytes and a content type.
func DecodeBase64Image(field string) ([]byte, string, error) {
	if !strings.HasPrefix(field, "data:") {
		return nil, "", newValidationError("image", "expected a base64 data URI")
	}
	parts := strings.SplitN(field[len("data:"):], ",", 2)
	if len(parts) != 2 || !strings.HasSuffix(parts[0], ";base64") {
		return nil, "", newValidationError("image", "expected a base64 data URI")
	}
	contentType := strings.TrimSuffix(parts[0], ";base64")
	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, "", newValidationError("image", "invalid base64 payload")
	}
	return data, contentType, nil
}
