package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mmcdole/tunedl/internal/backend"
	"github.com/mmcdole/tunedl/internal/domain"
)

// OrganizeService triggers library organization on the service
type OrganizeService struct {
	repo   domain.OrganizeRepository
	logger *slog.Logger
}

// NewOrganizeService creates a new organize service
func NewOrganizeService(repo domain.OrganizeRepository, logger *slog.Logger) *OrganizeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrganizeService{repo: repo, logger: logger}
}

// Run issues one POST /organize
func (s *OrganizeService) Run(ctx context.Context) domain.OrganizeResponse {
	id := uuid.NewString()
	s.logger.Info("organizing library", "request_id", id)

	result, status, err := s.repo.Organize(backend.WithRequestID(ctx, id))
	return domain.OrganizeResponse{
		Result:     result,
		StatusCode: status,
		Err:        err,
		RequestID:  id,
	}
}
