package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mmcdole/tunedl/internal/backend"
	"github.com/mmcdole/tunedl/internal/domain"
)

const maxNameAttempts = 1000

// DownloadService sends download requests and saves the resulting files
type DownloadService struct {
	repo    domain.DownloadRepository
	history *HistoryService
	logger  *slog.Logger
}

// NewDownloadService creates a new download service. history may be nil.
func NewDownloadService(repo domain.DownloadRepository, history *HistoryService, logger *slog.Logger) *DownloadService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DownloadService{
		repo:    repo,
		history: history,
		logger:  logger,
	}
}

// Submit issues exactly one POST /download for url. Every outcome,
// including transport failure, is returned inside the response.
func (s *DownloadService) Submit(ctx context.Context, url string) domain.DownloadResponse {
	id := uuid.NewString()
	ctx = backend.WithRequestID(ctx, id)

	s.logger.Info("submitting download", "url", url, "request_id", id)

	if s.history != nil {
		if err := s.history.Record(url); err != nil {
			s.logger.Warn("failed to record url history", "error", err)
		}
	}

	result, status, err := s.repo.Download(ctx, url)
	if err == nil {
		s.logger.Info("download finished", "status", status, "files", len(result.Files), "request_id", id)
	}
	return domain.DownloadResponse{
		Result:     result,
		StatusCode: status,
		Err:        err,
		RequestID:  id,
	}
}

// FileURL returns the link for a downloaded file
func (s *DownloadService) FileURL(name string) string {
	return s.repo.FileURL(name)
}

// Save streams a downloaded file into dir and returns the written path.
// The file is written under a temporary name and renamed once complete.
func (s *DownloadService) Save(ctx context.Context, name, dir string) (string, error) {
	base := filepath.Base(filepath.Clean(strings.ReplaceAll(name, "\\", "/")))
	if base == "." || base == "/" || base == ".." || base == "" {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.part")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	tmpPath := tmp.Name()

	id := uuid.NewString()
	n, err := s.repo.FetchFile(backend.WithRequestID(ctx, id), name, tmp)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		s.logger.Error("failed to save file", "name", name, "error", err, "request_id", id)
		return "", err
	}

	dest, err := freeName(dir, base)
	if err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}

	s.logger.Info("saved file", "name", name, "path", dest, "bytes", n, "request_id", id)
	return dest, nil
}

// freeName returns dir/base, or "name (n).ext" for the first n not yet
// taken, so existing files are never overwritten
func freeName(dir, base string) (string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem, ext = base, ""
	}

	for n := 0; n < maxNameAttempts; n++ {
		name := base
		if n > 0 {
			name = fmt.Sprintf("%s (%d)%s", stem, n, ext)
		}
		path := filepath.Join(dir, name)
		if _, err := os.Lstat(path); errors.Is(err, fs.ErrNotExist) {
			return path, nil
		} else if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("no free file name for %q in %s", base, dir)
}

// IsOffline reports whether err means the service could not be reached
func IsOffline(err error) bool {
	return errors.Is(err, domain.ErrServerOffline)
}
