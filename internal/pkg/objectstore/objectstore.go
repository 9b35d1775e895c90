// Package objectstore archives uploaded documents to S3-compatible storage.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appcfg "github.com/ayushmaan100/Smart-content-finder/internal/config"
)

// objectAPI is the slice of the S3 client the uploader needs.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Uploader stores objects in a single bucket.
type S3Uploader struct {
	client objectAPI
	bucket string
	prefix string
	now    func() time.Time
}

// NewS3Uploader builds an uploader from the storage.s3 config block.
func NewS3Uploader(cfg appcfg.S3Config) (*S3Uploader, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	region := strings.TrimSpace(cfg.Region)
	if bucket == "" || region == "" {
		return nil, fmt.Errorf("incomplete s3 config: bucket and region are required")
	}

	opts := s3.Options{
		Region:       region,
		UsePathStyle: cfg.PathStyleAccess,
	}
	if ak, sk := strings.TrimSpace(cfg.AccessKeyID), strings.TrimSpace(cfg.SecretAccessKey); ak != "" && sk != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(ak, sk, "")
	}
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		parsed, err := url.Parse(endpoint)
		if err != nil || parsed.Host == "" {
			return nil, fmt.Errorf("invalid s3 endpoint: %s", cfg.Endpoint)
		}
		opts.BaseEndpoint = aws.String(strings.TrimSuffix(endpoint, "/"))
		// Custom endpoints (MinIO, R2) generally do not resolve virtual-hosted buckets.
		opts.UsePathStyle = true
	}

	return &S3Uploader{
		client: s3.New(opts),
		bucket: bucket,
		prefix: cfg.KeyPrefix,
		now:    time.Now,
	}, nil
}

// Archive uploads payload under a fresh key and returns that key.
func (u *S3Uploader) Archive(ctx context.Context, filename string, payload []byte, contentType string) (string, error) {
	key := ObjectKey(u.prefix, filename, u.now())
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(payload),
		ContentLength: aws.Int64(int64(len(payload))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return key, nil
}

// Remove deletes a previously archived object.
func (u *S3Uploader) Remove(ctx context.Context, key string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

// ObjectKey renders prefix/YYYY/MM/<uuid><ext>, keeping the original extension.
func ObjectKey(prefix, filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(filename)))
	if ext == "" || len(ext) > 10 {
		ext = ".dat"
	}
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext

	key := path.Join(strings.Trim(strings.ReplaceAll(prefix, "\\", "/"), "/"), now.Format("2006"), now.Format("01"), name)
	return strings.TrimPrefix(key, "/")
}
