package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"soundstash/internal/metrics"
)

// MinioClient implements Client against any S3-compatible object store.
type MinioClient struct {
	mc *minio.Client
}

// MinioOptions configures the connection to the object store.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// NewMinioClient creates a blob client for the given object store endpoint.
func NewMinioClient(opts MinioOptions) (*MinioClient, error) {
	mc, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}
	return &MinioClient{mc: mc}, nil
}

// DownloadAll fetches the entire object into memory.
func (c *MinioClient) DownloadAll(ctx context.Context, container, key string) ([]byte, error) {
	obj, err := c.mc.GetObject(ctx, container, key, minio.GetObjectOptions{})
	if err != nil {
		metrics.BlobDownloads.WithLabelValues("full", "error").Inc()
		return nil, fmt.Errorf("failed to open object %s/%s: %w", container, key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		metrics.BlobDownloads.WithLabelValues("full", "error").Inc()
		return nil, fmt.Errorf("failed to read object %s/%s: %w", container, key, err)
	}

	metrics.BlobDownloads.WithLabelValues("full", "ok").Inc()
	metrics.BlobBytesRead.Add(float64(len(data)))
	return data, nil
}

// DownloadRange fetches the inclusive byte window [start, end].
func (c *MinioClient) DownloadRange(ctx context.Context, container, key string, start, end int64) ([]byte, error) {
	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(start, end); err != nil {
		metrics.BlobDownloads.WithLabelValues("range", "error").Inc()
		return nil, fmt.Errorf("invalid byte range %d-%d: %w", start, end, err)
	}

	obj, err := c.mc.GetObject(ctx, container, key, opts)
	if err != nil {
		metrics.BlobDownloads.WithLabelValues("range", "error").Inc()
		return nil, fmt.Errorf("failed to open object %s/%s: %w", container, key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		metrics.BlobDownloads.WithLabelValues("range", "error").Inc()
		return nil, fmt.Errorf("failed to read range %d-%d of %s/%s: %w", start, end, container, key, err)
	}

	metrics.BlobDownloads.WithLabelValues("range", "ok").Inc()
	metrics.BlobBytesRead.Add(float64(len(data)))
	return data, nil
}

// Length returns the object's total size in bytes.
func (c *MinioClient) Length(ctx context.Context, container, key string) (int64, error) {
	info, err := c.mc.StatObject(ctx, container, key, minio.StatObjectOptions{})
	if err != nil {
		metrics.BlobDownloads.WithLabelValues("length", "error").Inc()
		return 0, fmt.Errorf("failed to stat object %s/%s: %w", container, key, err)
	}

	metrics.BlobDownloads.WithLabelValues("length", "ok").Inc()
	return info.Size, nil
}

// Upload stores data under container/key.
func (c *MinioClient) Upload(ctx context.Context, container, key string, data []byte, contentType string) error {
	_, err := c.mc.PutObject(ctx, container, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		metrics.BlobUploads.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to upload object %s/%s: %w", container, key, err)
	}

	metrics.BlobUploads.WithLabelValues("ok").Inc()
	return nil
}
