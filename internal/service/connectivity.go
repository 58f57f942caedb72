package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/tunedl/internal/domain"
)

// ConnectivityService probes whether the download service is reachable
type ConnectivityService struct {
	checker domain.HealthChecker
	logger  *slog.Logger
}

// NewConnectivityService creates a new connectivity service
func NewConnectivityService(checker domain.HealthChecker, logger *slog.Logger) *ConnectivityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConnectivityService{checker: checker, logger: logger}
}

// Check returns true when the service answered
func (s *ConnectivityService) Check(ctx context.Context) bool {
	if err := s.checker.Ping(ctx); err != nil {
		s.logger.Debug("service unreachable", "error", err)
		return false
	}
	return true
}
