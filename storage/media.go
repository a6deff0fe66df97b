package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"soundlink/config"
	"soundlink/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MediaStore hosts song audio and cover images in a MinIO bucket, filling
// the role a hosted media CDN would in production.
type MediaStore struct {
	client *minio.Client
	bucket string
	// baseURL is prepended to object paths to form the public URL.
	baseURL string
}

// NewMediaStore connects to MinIO and ensures the bucket exists.
func NewMediaStore(cfg *config.Config) (*MediaStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{Region: cfg.MinioRegion})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("created media bucket", logger.String("bucket", cfg.MinioBucket))
	}

	return &MediaStore{
		client:  client,
		bucket:  cfg.MinioBucket,
		baseURL: strings.TrimSuffix(cfg.MediaBaseURL, "/"),
	}, nil
}

// Upload stores a media file under the given prefix ("audio" or "covers")
// and returns its public URL. Object names are random so two uploads of
// the same filename never collide.
func (s *MediaStore) Upload(ctx context.Context, prefix, filename string, reader io.Reader, size int64) (string, error) {
	ext := filepath.Ext(filename)
	objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: inferContentType(filename),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	logger.Debug("uploaded media object",
		logger.String("object", objectName),
		logger.Int64("size", size))
	return s.baseURL + "/" + objectName, nil
}

// Remove deletes the object behind a URL previously returned by Upload.
// Unknown URLs are ignored so a catalog delete never fails on media
// that's already gone.
func (s *MediaStore) Remove(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, s.baseURL+"/") {
		return nil
	}
	objectName := strings.TrimPrefix(url, s.baseURL+"/")
	if objectName == "" {
		return nil
	}

	err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", objectName, err)
	}
	return nil
}

// Serve streams an object to the writer. Used by the /media/ route so
// dev setups work without a public bucket.
func (s *MediaStore) Serve(ctx context.Context, objectName string, w io.Writer) error {
	object, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to get object %s: %w", objectName, err)
	}
	defer object.Close()

	if _, err := io.Copy(w, object); err != nil {
		return fmt.Errorf("failed to stream object %s: %w", objectName, err)
	}
	return nil
}

// BucketUsage reports object count and total bytes per top-level prefix.
func (s *MediaStore) BucketUsage(ctx context.Context) (map[string]int64, error) {
	usage := make(map[string]int64)
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list bucket objects: %w", object.Err)
		}
		prefix := "misc"
		if idx := strings.Index(object.Key, "/"); idx > 0 {
			prefix = object.Key[:idx]
		}
		usage[prefix] += object.Size
	}
	return usage, nil
}

// inferContentType maps a filename extension to its MIME type.
func inferContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
