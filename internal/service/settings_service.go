package service

import (
	"context"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
)

type settingsFetcher interface {
	Settings(ctx context.Context) (*models.Settings, error)
}

// SettingsService exposes scoring-external toggles owned by the server of
// record, such as whether promotion is enabled.
type SettingsService struct {
	upstream settingsFetcher
}

// NewSettingsService constructs SettingsService.
func NewSettingsService(upstream settingsFetcher) *SettingsService {
	return &SettingsService{upstream: upstream}
}

// Get fetches the current settings.
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	return s.upstream.Settings(ctx)
}
