package service

import (
	"context"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
	appErrors "github.com/noah-isme/alanjal-marks-api/pkg/errors"
)

type preferenceStore interface {
	Get(ctx context.Context, userID string, semester, quarter int) (models.ViewPreference, error)
	Set(ctx context.Context, userID string, semester, quarter int, pref models.ViewPreference) error
}

// PreferenceService keeps the weekly and assessment views of one user opening
// on the same week and class per semester+quarter scope.
type PreferenceService struct {
	store preferenceStore
}

// NewPreferenceService constructs PreferenceService.
func NewPreferenceService(store preferenceStore) *PreferenceService {
	return &PreferenceService{store: store}
}

// Get loads the saved selection for a scope; an empty preference means the
// user has not picked yet.
func (s *PreferenceService) Get(ctx context.Context, userID string, semester, quarter int) (models.ViewPreference, error) {
	if err := validateScope(semester, quarter); err != nil {
		return models.ViewPreference{}, err
	}
	return s.store.Get(ctx, userID, semester, quarter)
}

// Set stores the selection for a scope.
func (s *PreferenceService) Set(ctx context.Context, userID string, semester, quarter int, pref models.ViewPreference) error {
	if err := validateScope(semester, quarter); err != nil {
		return err
	}
	return s.store.Set(ctx, userID, semester, quarter, pref)
}

func validateScope(semester, quarter int) error {
	if semester != 1 && semester != 2 {
		return appErrors.Clone(appErrors.ErrValidation, "semester must be 1 or 2")
	}
	if quarter != 1 && quarter != 2 {
		return appErrors.Clone(appErrors.ErrValidation, "quarter must be 1 or 2")
	}
	return nil
}
