package report

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"account-db-compare/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Publisher uploads report files to object storage.
type Publisher struct {
	client storage.Client
	cfg    storage.Config
	logger *zap.Logger
}

// NewPublisher creates a publisher for the configured bucket.
func NewPublisher(client storage.Client, cfg storage.Config, logger *zap.Logger) *Publisher {
	return &Publisher{client: client, cfg: cfg, logger: logger}
}

// Publish uploads data under <prefix>/<runID>/<base name of name> and returns
// the object key. The bucket is created when missing.
func (p *Publisher) Publish(ctx context.Context, runID, name string, data []byte) (string, error) {
	if err := storage.EnsureBucket(ctx, p.client, p.cfg.Bucket, p.cfg.Region); err != nil {
		return "", err
	}

	key := storage.ObjectKey(p.cfg.Prefix, runID, filepath.Base(name))
	info, err := p.client.PutObject(ctx, p.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	p.logger.Info("Report uploaded",
		zap.String("bucket", p.cfg.Bucket),
		zap.String("key", key),
		zap.Int64("size", info.Size),
	)
	return key, nil
}

func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".csv":
		return "text/csv"
	case ".prom", ".txt":
		return "text/plain; version=0.0.4"
	default:
		return "application/octet-stream"
	}
}
