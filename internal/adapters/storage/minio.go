package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"messaging-service/internal/config"
	"messaging-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClient stores chat media (IMAGE content) in a single bucket.
type MinIOClient struct {
	client *minio.Client
	bucket string
	scheme string
}

func NewMinIOClient(ctx context.Context, cfg *config.StorageConfig) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	lg := logger.L()
	lg.Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.Bucket).Msg("minio connection established")
	return &MinIOClient{client: client, bucket: cfg.Bucket, scheme: scheme}, nil
}

// Upload stores r under a fresh object name and returns its public URL.
func (m *MinIOClient) Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	objectName := ObjectName(filename)
	_, err := m.client.PutObject(ctx, m.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return fmt.Sprintf("%s://%s/%s/%s", m.scheme, m.client.EndpointURL().Host, m.bucket, objectName), nil
}

// ObjectName keeps the client's extension but never its name, so uploads
// cannot overwrite each other.
func ObjectName(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	return "media/" + uuid.New().String() + ext
}
