package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"path"

	"yatube/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	MediaClient *minio.Client
	mediaBucket string
)

// InitStorage подключается к MinIO и создает бакет для картинок постов.
// Хранилище опционально: без него посты создаются без картинок.
func InitStorage(ctx context.Context) error {
	if config.AppConfig == nil {
		return fmt.Errorf("AppConfig is not loaded")
	}
	media := config.AppConfig.Media
	if media.Endpoint == "" {
		return fmt.Errorf("media storage is not configured")
	}

	client, err := minio.New(media.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(media.AccessKey, media.SecretKey, ""),
		Secure: media.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create media client: %w", err)
	}

	bucket := media.Bucket
	if bucket == "" {
		bucket = "yatube-media"
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check media bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create media bucket: %w", err)
		}
	}

	MediaClient = client
	mediaBucket = bucket
	log.Printf("Media storage initialized, bucket: %s", bucket)
	return nil
}

// SaveImage кладет картинку поста в объектное хранилище и возвращает ее путь
func SaveImage(ctx context.Context, fileName string, reader io.Reader, size int64, contentType string) (string, error) {
	if MediaClient == nil {
		return "", fmt.Errorf("media storage not available")
	}

	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}
	objectName := fmt.Sprintf("posts/%s%s", hex.EncodeToString(suffix), path.Ext(fileName))

	_, err := MediaClient.PutObject(ctx, mediaBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return objectName, nil
}
