package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/babyduj/shower-api/internal/config"
)

const defaultThumbnailSize = 300

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store keeps gallery images in an S3-compatible bucket (AWS, MinIO, R2).
type S3Store struct {
	client        objectPutter
	bucket        string
	baseURL       string
	thumbnailSize uint
}

func NewS3Store(ctx context.Context, conf *config.StorageConfig) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(conf.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			conf.AccessKey,
			conf.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("awsconfig.LoadDefaultConfig -> %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(conf.Endpoint)
		o.UsePathStyle = true
	})

	return newS3Store(client, conf), nil
}

func newS3Store(client objectPutter, conf *config.StorageConfig) *S3Store {
	size := conf.ThumbnailSize
	if size == 0 {
		size = defaultThumbnailSize
	}

	baseURL := conf.PublicBaseURL
	if baseURL == "" {
		baseURL = strings.TrimRight(conf.Endpoint, "/") + "/" + conf.Bucket
	}

	return &S3Store{
		client:        client,
		bucket:        conf.Bucket,
		baseURL:       strings.TrimRight(baseURL, "/"),
		thumbnailSize: size,
	}
}

// StorePhoto uploads the original image and a JPEG thumbnail and returns
// their public URLs. A thumbnail failure is logged and leaves the thumbnail
// URL empty; the original is still kept.
func (s *S3Store) StorePhoto(ctx context.Context, filename, contentType string, data []byte) (string, string, error) {
	key := NewObjectKey("photos", filename)

	if err := s.put(ctx, key, contentType, data); err != nil {
		return "", "", err
	}

	thumb, err := Thumbnail(data, s.thumbnailSize)
	if err != nil {
		zap.L().Warn("failed to build thumbnail", zap.String("key", key), zap.Error(err))
		return s.URL(key), "", nil
	}

	thumbKey := NewObjectKey("thumbnails", strings.TrimSuffix(path.Base(key), path.Ext(key))+".jpg")
	if err := s.put(ctx, thumbKey, "image/jpeg", thumb); err != nil {
		zap.L().Warn("failed to upload thumbnail", zap.String("key", thumbKey), zap.Error(err))
		return s.URL(key), "", nil
	}

	return s.URL(key), s.URL(thumbKey), nil
}

func (s *S3Store) URL(key string) string {
	return s.baseURL + "/" + key
}

func (s *S3Store) put(ctx context.Context, key, contentType string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("s.client.PutObject(%s) -> %w", key, err)
	}

	return nil
}

// NewObjectKey returns prefix/<uuid><ext>, keeping only the lower-cased
// extension of the client-supplied filename.
func NewObjectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	if len(ext) > 5 {
		ext = ""
	}

	return prefix + "/" + uuid.NewString() + ext
}
