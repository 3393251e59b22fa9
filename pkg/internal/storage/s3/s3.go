// Package s3 handles object storage for uploaded documents.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"

	"github.com/google/uuid"
	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/grupovilla/gestprocesos/pkg/configs"
	nlog "github.com/grupovilla/gestprocesos/pkg/log"
)

// Client wraps the MinIO client plus the configured bucket.
type Client struct {
	*minio.Client

	bucket string
}

// New initialises the MinIO client and creates the bucket when it does not
// exist yet.
func New(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig().S3

	endpoint := cfg.Endpoint
	// Allow endpoints with a full scheme (http:// or https://).
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			cfg.UseSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("gestprocesos", configs.AppVersion)

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}

	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}

		nlog.Logger().Info().Str("bucket", cfg.Bucket).Msg("bucket created")
	}

	nlog.Logger().Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.Bucket).Msg("s3 connected")

	return &Client{Client: cli, bucket: cfg.Bucket}, nil
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}

// Put stores one object under namespace with a random key prefix so that
// repeated uploads of the same filename never collide. It returns the object
// key, which is what the attachment rows persist as ruta.
func (c *Client) Put(ctx context.Context, namespace, filename string, r io.Reader, size int64, contentType string) (string, error) {
	key := path.Join(namespace, uuid.NewString()+"_"+filename)

	if _, err := c.PutObject(ctx, c.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return key, nil
}

// Get opens the object for reading. The caller must close the returned
// reader.
func (c *Client) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := c.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}

	// GetObject is lazy; surface missing objects here instead of on first
	// read.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, fmt.Errorf("stat object %s: %w", key, err)
	}

	return obj, nil
}

// Remove deletes the object. A missing object is not an error so that row
// deletion stays idempotent when the blob is already gone.
func (c *Client) Remove(ctx context.Context, key string) error {
	err := c.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
	if err == nil {
		return nil
	}

	var resp minio.ErrorResponse
	if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
		nlog.Logger().Warn().Str("key", key).Msg("blob already gone")
		return nil
	}

	return fmt.Errorf("remove object %s: %w", key, err)
}

// HealthCheck verifies connectivity by listing buckets.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.ListBuckets(ctx)
	return err
}

// Close exists for interface symmetry with the other storage clients.
func (c *Client) Close() error {
	return nil
}
