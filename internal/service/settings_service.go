package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ndewijer/Market-Data-Simulator/internal/apperrors"
	"github.com/ndewijer/Market-Data-Simulator/internal/model"
	"github.com/ndewijer/Market-Data-Simulator/internal/repository"
	"github.com/ndewijer/Market-Data-Simulator/internal/validation"
)

// SettingsService persists the update loop settings chosen through the API so they
// survive a restart.
type SettingsService struct {
	repo *repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService backed by repo.
func NewSettingsService(repo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		repo: repo,
	}
}

// Load returns the stored settings layered over defaults. Missing or unparsable
// stored values fall back to the corresponding default.
func (s *SettingsService) Load(ctx context.Context, defaults model.FeedSettings) (model.FeedSettings, error) {
	stored, err := s.repo.GetAll(ctx)
	if err != nil {
		return model.FeedSettings{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveSettings, err)
	}

	settings := defaults
	if raw, ok := stored[model.SettingIntervalMs]; ok {
		if ms, err := strconv.ParseInt(raw, 10, 64); err == nil && validation.ValidateInterval(ms) == nil {
			settings.IntervalMs = ms
		}
	}
	if raw, ok := stored[model.SettingAutoUpdate]; ok {
		if enabled, err := strconv.ParseBool(raw); err == nil {
			settings.AutoUpdate = enabled
		}
	}
	return settings, nil
}

// SaveInterval validates and stores the update interval in milliseconds.
func (s *SettingsService) SaveInterval(ctx context.Context, ms int64) error {
	if err := validation.ValidateInterval(ms); err != nil {
		return err
	}
	if err := s.repo.Set(ctx, model.SettingIntervalMs, strconv.FormatInt(ms, 10)); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveSettings, err)
	}
	return nil
}

// SaveAutoUpdate stores whether scheduled updates are enabled.
func (s *SettingsService) SaveAutoUpdate(ctx context.Context, enabled bool) error {
	if err := s.repo.Set(ctx, model.SettingAutoUpdate, strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveSettings, err)
	}
	return nil
}
