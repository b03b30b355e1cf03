package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"returnit_backend/internal/storage"
	"returnit_backend/pkg/apperrors"
)

type UploadService interface {
	SaveImage(ctx context.Context, userID string, header *multipart.FileHeader) (*UploadedFile, error)
	DeleteImage(ctx context.Context, key string) error
}

type UploadedFile struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type uploadService struct {
	store        storage.Storage
	maxSize      int64
	allowedTypes map[string]string // MIME type -> canonical extension
}

func NewUploadService(store storage.Storage, maxSize int64, allowedTypes []string) UploadService {
	allowed := make(map[string]string, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = extensionFor(t)
	}
	return &uploadService{
		store:        store,
		maxSize:      maxSize,
		allowedTypes: allowed,
	}
}

func (s *uploadService) SaveImage(ctx context.Context, userID string, header *multipart.FileHeader) (*UploadedFile, error) {
	if header.Size > s.maxSize {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("File is too large, the limit is %d bytes", s.maxSize))
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer file.Close()

	contentType, err := sniffContentType(file)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ext, ok := s.allowedTypes[contentType]
	if !ok {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("Unsupported file type %q", contentType))
	}

	key := fmt.Sprintf("items/%s/%s%s", userID, uuid.NewString(), ext)
	if err := s.store.Save(ctx, key, contentType, file, header.Size); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError,
			"uploads", "Failed to store file", http.StatusBadGateway)
	}

	return &UploadedFile{Key: key, URL: s.store.URL(key)}, nil
}

func (s *uploadService) DeleteImage(ctx context.Context, key string) error {
	// Keys are always generated server-side as items/<user>/<uuid>.<ext>;
	// reject anything that does not look like one.
	if !strings.HasPrefix(key, "items/") || strings.Contains(key, "..") {
		return apperrors.NewBadRequestError("Invalid file key")
	}

	if err := s.store.Delete(ctx, key); err != nil {
		if apperrors.Is(err, storage.ErrObjectNotFound) {
			return apperrors.NewNotFoundError("uploads", "File not found")
		}
		return apperrors.Wrap(err, apperrors.CodeExternalServiceError,
			"uploads", "Failed to delete file", http.StatusBadGateway)
	}
	return nil
}

// sniffContentType reads the first bytes of the file and rewinds it, so
// the type check cannot be spoofed by the Content-Type header alone.
func sniffContentType(file multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read file header: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind file: %w", err)
	}
	return http.DetectContentType(buf[:n]), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
