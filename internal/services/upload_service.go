package services

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fachrinfl/ts-project-management-api/internal/logger"
	"github.com/fachrinfl/ts-project-management-api/internal/services/dto"
	"github.com/fachrinfl/ts-project-management-api/internal/storage"
	"github.com/fachrinfl/ts-project-management-api/pkg/apperrors"

	"github.com/google/uuid"
)

var folderPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

type UploadConfig struct {
	MaxFileSize   int64
	AllowedTypes  []string // пусто - любые; поддерживается "image/*"
	DefaultFolder string
}

// UploadFile - файл, уже сохранённый во временный каталог
type UploadFile struct {
	TempPath     string
	OriginalName string
	ContentType  string
	Size         int64
	Folder       string
}

type UploadService interface {
	// Upload переносит временный файл в хранилище. Временный файл удаляется при любом исходе.
	Upload(ctx context.Context, file *UploadFile) (*dto.UploadResult, error)
}

type uploadService struct {
	storage storage.Storage
	config  UploadConfig
}

func NewUploadService(store storage.Storage, config UploadConfig) UploadService {
	if config.DefaultFolder == "" {
		config.DefaultFolder = "general"
	}
	return &uploadService{storage: store, config: config}
}

func (s *uploadService) Upload(ctx context.Context, file *UploadFile) (*dto.UploadResult, error) {
	defer removeTempFile(ctx, file.TempPath)

	folder := strings.TrimSpace(file.Folder)
	if folder == "" {
		folder = s.config.DefaultFolder
	}
	if !folderPattern.MatchString(folder) {
		return nil, apperrors.ValidationError(map[string]string{
			"folder": "Must be 1-64 characters: letters, digits, '-' or '_'",
		})
	}

	if s.config.MaxFileSize > 0 && file.Size > s.config.MaxFileSize {
		return nil, apperrors.ErrFileTooLarge
	}

	src, err := os.Open(file.TempPath)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	contentType, err := detectContentType(src, file.ContentType)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !s.isAllowed(contentType) {
		return nil, apperrors.ErrInvalidFileType
	}

	publicID := folder + "/" + uuid.NewString()
	key := publicID + safeExtension(file.OriginalName)

	if err := s.storage.Save(ctx, key, src, contentType); err != nil {
		logger.CtxWithError(ctx, "Failed to store uploaded file", err, "key", key)
		return nil, apperrors.ErrStorageUnavailable.WithError(err)
	}

	logger.CtxInfo(ctx, "File uploaded", "key", key, "size", file.Size, "content_type", contentType)
	return &dto.UploadResult{
		URL:          s.storage.URL(key),
		PublicID:     publicID,
		ResourceType: resourceType(contentType),
	}, nil
}

func (s *uploadService) isAllowed(contentType string) bool {
	if len(s.config.AllowedTypes) == 0 {
		return true
	}
	for _, allowed := range s.config.AllowedTypes {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if allowed == contentType {
			return true
		}
		if prefix, ok := strings.CutSuffix(allowed, "/*"); ok && strings.HasPrefix(contentType, prefix+"/") {
			return true
		}
	}
	return false
}

// detectContentType доверяет заголовку клиента, если он конкретный, иначе смотрит на первые байты
func detectContentType(f io.ReadSeeker, declared string) (string, error) {
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil && mediaType != "application/octet-stream" {
		return strings.ToLower(mediaType), nil
	}

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	mediaType, _, _ := mime.ParseMediaType(http.DetectContentType(head[:n]))
	return mediaType, nil
}

func resourceType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	default:
		return "raw"
	}
}

func safeExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

// removeTempFile никогда не возвращает ошибку, только пишет в лог
func removeTempFile(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.CtxWarn(ctx, "Failed to remove temp upload", "path", path, "error", err)
	}
}
