package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Dosada05/tournament-manager/storage"
)

const exportKeyPrefix = "exports/"

// ExportService keeps rendered images of tables and brackets in object
// storage. Rendering happens in the client.
type ExportService interface {
	StoreExport(ctx context.Context, contentType string, body io.Reader) (*ExportResult, error)
	DeleteExport(ctx context.Context, key string) error
}

type ExportResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type exportService struct {
	uploader storage.FileUploader
	logger   *slog.Logger
}

// NewExportService accepts a nil uploader; every call then reports
// ErrExportUnavailable.
func NewExportService(uploader storage.FileUploader, logger *slog.Logger) ExportService {
	return &exportService{uploader: uploader, logger: logger}
}

func (s *exportService) StoreExport(ctx context.Context, contentType string, body io.Reader) (*ExportResult, error) {
	if s.uploader == nil {
		return nil, ErrExportUnavailable
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExportType, contentType)
	}
	ext, err := storage.GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedExportType, err)
	}

	key := exportKeyPrefix + uuid.NewString() + ext
	res, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}
	s.logger.Info("export stored", "key", res.Key)
	return &ExportResult{Key: res.Key, URL: res.Location}, nil
}

// ExportKey maps the file name returned to clients back to its storage key.
func ExportKey(name string) string {
	return exportKeyPrefix + name
}

func (s *exportService) DeleteExport(ctx context.Context, key string) error {
	if !IsPrivileged(ctx) {
		s.logger.Debug("ignoring export deletion from unprivileged caller", "key", key)
		return nil
	}
	if s.uploader == nil {
		return ErrExportUnavailable
	}
	if !strings.HasPrefix(key, exportKeyPrefix) || strings.Contains(key, "..") {
		return fmt.Errorf("%w: export key %q", ErrNotFound, key)
	}
	if err := s.uploader.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete export: %w", err)
	}
	s.logger.Info("export deleted", "key", key)
	return nil
}
