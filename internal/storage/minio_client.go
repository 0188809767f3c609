package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"socialforum/internal/config"
)

// objectClient is the part of *minio.Client the avatar store uses.
type objectClient interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type MinIOClient struct {
	client    objectClient
	bucket    string
	publicURL string
	now       func() time.Time
}

// NewMinIOClient connects to MinIO and creates the avatar bucket when it is missing.
func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.BucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.BucketName, err)
		}
	}

	return newMinIOClient(client, cfg.BucketName, cfg.PublicURL), nil
}

func newMinIOClient(client objectClient, bucket, publicURL string) *MinIOClient {
	return &MinIOClient{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		now:       time.Now,
	}
}

// Upload stores the avatar under channels/<id>/<yyyy>/<mm>/<uuid><ext> and returns its public URL.
func (m *MinIOClient) Upload(ctx context.Context, channelID uuid.UUID, fileName, contentType string, body io.Reader, size int64) (string, error) {
	ext := extensionFor(fileName, contentType)

	now := m.now()
	objectName := fmt.Sprintf("channels/%s/%d/%02d/%s%s",
		channelID,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		ext)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, body, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"channel-id":        channelID.String(),
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", objectName, err)
	}

	return m.objectURL(objectName), nil
}

// Delete removes the object behind url. URLs outside this bucket are left alone.
func (m *MinIOClient) Delete(ctx context.Context, url string) error {
	prefix := m.objectURL("")
	if !strings.HasPrefix(url, prefix) {
		return nil
	}

	objectName := strings.TrimPrefix(url, prefix)
	if err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", objectName, err)
	}

	return nil
}

func (m *MinIOClient) objectURL(objectName string) string {
	return m.publicURL + "/" + m.bucket + "/" + objectName
}

func extensionFor(fileName, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(fileName)); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
