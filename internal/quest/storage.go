// internal/quest/storage.go
// Proof-photo storage. Local disk for development, S3 in production.

package quest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
)

var ErrUnsupportedPhoto = errors.New("unsupported photo type")

// allowedPhotoTypes maps accepted content types to file extensions
var allowedPhotoTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// Photo is an uploaded proof image
type Photo struct {
	Body        io.Reader
	ContentType string
}

// PhotoStore saves proof photos and returns their public URL
type PhotoStore interface {
	Save(ctx context.Context, folder string, photo Photo) (string, error)
	Delete(ctx context.Context, url string) error
}

func photoKey(folder, contentType string) (string, error) {
	ext, ok := allowedPhotoTypes[strings.ToLower(contentType)]
	if !ok {
		return "", ErrUnsupportedPhoto
	}
	return fmt.Sprintf("%s/%s_%d%s", folder, uuid.New().String(), time.Now().Unix(), ext), nil
}

type localPhotoStore struct {
	uploadDir string
	baseURL   string
}

// NewLocalPhotoStore writes photos under uploadDir and serves them from baseURL
func NewLocalPhotoStore(uploadDir, baseURL string) PhotoStore {
	return &localPhotoStore{
		uploadDir: uploadDir,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

func (s *localPhotoStore) Save(ctx context.Context, folder string, photo Photo) (string, error) {
	key, err := photoKey(folder, photo.ContentType)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.uploadDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, photo.Body); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return s.baseURL + "/" + key, nil
}

func (s *localPhotoStore) Delete(ctx context.Context, url string) error {
	relative := strings.TrimPrefix(strings.TrimPrefix(url, s.baseURL), "/")
	if relative == "" || strings.Contains(relative, "..") {
		return nil
	}

	if err := os.Remove(filepath.Join(s.uploadDir, filepath.FromSlash(relative))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

type s3PhotoStore struct {
	client  s3iface.S3API
	bucket  string
	baseURL string
}

// NewS3PhotoStore uploads to bucket using the default AWS credential chain
func NewS3PhotoStore(bucket, region string) (PhotoStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return newS3PhotoStore(s3.New(sess), bucket, region), nil
}

func newS3PhotoStore(client s3iface.S3API, bucket, region string) *s3PhotoStore {
	return &s3PhotoStore{
		client:  client,
		bucket:  bucket,
		baseURL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region),
	}
}

func (s *s3PhotoStore) Save(ctx context.Context, folder string, photo Photo) (string, error) {
	key, err := photoKey(folder, photo.ContentType)
	if err != nil {
		return "", err
	}

	body, err := io.ReadAll(photo.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}

	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(photo.ContentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.baseURL + "/" + key, nil
}

func (s *s3PhotoStore) Delete(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, s.baseURL+"/")
	if key == url {
		return nil
	}

	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}
