package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/saamdocs/docgen-service/internal/config"
)

// Archive stores rendered document content as plain-text objects in a MinIO
// bucket. It is an optional, best-effort sink next to the relational store.
type Archive struct {
	client *minio.Client
	bucket string
}

// NewArchive creates the MinIO client and ensures the bucket exists.
func NewArchive(cfg config.ArchiveConfig) (*Archive, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("archive endpoint missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	a := &Archive{client: mc, bucket: cfg.Bucket}
	// ensure bucket exists (idempotent)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		exist, xerr := mc.BucketExists(ctx, a.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return a, nil
}

// Put stores content under key as text/plain.
func (a *Archive) Put(ctx context.Context, key, content string) error {
	r := strings.NewReader(content)
	_, err := a.client.PutObject(ctx, a.bucket, key, r, int64(r.Len()), minio.PutObjectOptions{ContentType: "text/plain; charset=utf-8"})
	return err
}

// PresignedURL returns a presigned GET URL for an archived object.
func (a *Archive) PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	presigned, err := a.client.PresignedGetObject(ctx, a.bucket, key, expires, make(url.Values))
	if err != nil {
		return "", err
	}
	return presigned.String(), nil
}
