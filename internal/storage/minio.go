package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"quiz-integrity-service/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore implements BlobStore on a MinIO/S3 bucket.
type MinioStore struct {
	client *minio.Client
	cfg    config.MinIOConfig
}

func NewMinioStore(cfg config.MinIOConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		log.Printf("Error initializing MinIO client: %v", err)
		return nil, err
	}

	exists, err := client.BucketExists(context.Background(), cfg.Bucket)
	if err != nil {
		log.Printf("Error checking if bucket %s exists: %v", cfg.Bucket, err)
		return nil, err
	}
	if !exists {
		err = client.MakeBucket(context.Background(), cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region})
		if err != nil {
			log.Printf("Error creating bucket %s: %v", cfg.Bucket, err)
			return nil, err
		}
		log.Printf("Created bucket: %s", cfg.Bucket)
	}

	log.Println("Successfully initialized MinIO client")
	return &MinioStore{client: client, cfg: cfg}, nil
}

// Upload stores the object and returns its public URL.
func (m *MinioStore) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.cfg.Bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		log.Printf("Error uploading file to MinIO: %v", err)
		return "", err
	}
	return m.publicURL(objectName), nil
}

func (m *MinioStore) publicURL(objectName string) string {
	endpoint := m.cfg.PublicEndpoint
	if endpoint == "" {
		scheme := "http"
		if m.cfg.UseSSL {
			scheme = "https"
		}
		endpoint = fmt.Sprintf("%s://%s", scheme, m.cfg.Endpoint)
	}
	return fmt.Sprintf("%s/%s/%s", endpoint, m.cfg.Bucket, objectName)
}
