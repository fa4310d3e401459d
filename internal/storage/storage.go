package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage - хранилище загруженных файлов
type Storage interface {
	// Save сохраняет содержимое под ключом вида "<folder>/<name>"
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// URL возвращает публичный адрес сохранённого файла
	URL(key string) string

	// Ping проверяет доступность хранилища для /health
	Ping(ctx context.Context) error
}

const (
	TypeLocal        = "local"
	TypeS3           = "s3"
	TypeCloudflareR2 = "cloudflare_r2"
)

// Config holds storage configuration
type Config struct {
	Type       string // local, s3, cloudflare_r2
	BasePath   string // For local storage
	BaseURL    string // Public URL base
	Bucket     string // For S3/R2
	Region     string // For S3
	AccessKey  string // For S3/R2
	SecretKey  string // For S3/R2
	Endpoint   string // For R2 or custom S3
	PublicRead bool   // Make files public by default
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case TypeLocal, "":
		return NewLocalStorage(cfg)
	case TypeS3:
		return NewS3Storage(cfg)
	case TypeCloudflareR2:
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
