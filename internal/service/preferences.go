package service

import (
	"log/slog"

	"github.com/mmcdole/tunedl/internal/domain"
)

// PreferenceService reads and writes the persisted theme
type PreferenceService struct {
	store  domain.Store
	logger *slog.Logger
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(store domain.Store, logger *slog.Logger) *PreferenceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PreferenceService{store: store, logger: logger}
}

// Theme returns the stored theme value and whether one was stored
func (s *PreferenceService) Theme() (string, bool) {
	return s.store.GetPreference(domain.ThemeKey)
}

// SaveTheme persists the theme
func (s *PreferenceService) SaveTheme(theme domain.Theme) error {
	if err := s.store.SavePreference(domain.ThemeKey, string(theme)); err != nil {
		s.logger.Error("failed to save theme", "theme", theme, "error", err)
		return err
	}
	s.logger.Debug("saved theme", "theme", theme)
	return nil
}
