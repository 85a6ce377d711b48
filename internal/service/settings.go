package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/karlseguin/ccache/v3"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/repository"
	"urlaubsverwaltung/internal/validation"
)

const settingsCacheKey = "settings"

// SettingsService reads and stores the system settings.
type SettingsService interface {
	// GetSettings returns the stored settings, or the defaults if none were saved.
	GetSettings(ctx context.Context) (*model.Settings, error)

	// Save validates and persists s. Rule violations are returned as *validation.Errors.
	Save(ctx context.Context, s *model.Settings) (*model.Settings, error)
}

type settingsService struct {
	repo  repository.SettingsRepository
	cache *ccache.Cache[*model.Settings]
	ttl   time.Duration
}

// NewSettingsService constructs a SettingsService caching reads for ttl.
func NewSettingsService(repo repository.SettingsRepository, ttl time.Duration) SettingsService {
	return &settingsService{
		repo:  repo,
		cache: ccache.New(ccache.Configure[*model.Settings]().MaxSize(1)),
		ttl:   ttl,
	}
}

func (s *settingsService) GetSettings(ctx context.Context) (*model.Settings, error) {
	item, err := s.cache.Fetch(settingsCacheKey, s.ttl, func() (*model.Settings, error) {
		stored, err := s.repo.Get(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			defaults := model.DefaultSettings()
			return &defaults, nil
		}
		return stored, err
	})
	if err != nil {
		return nil, err
	}
	out := *item.Value()
	return &out, nil
}

func (s *settingsService) Save(ctx context.Context, settings *model.Settings) (*model.Settings, error) {
	if err := validation.ValidateSettings(settings).Err(); err != nil {
		return nil, err
	}
	stored, err := s.repo.Save(ctx, settings)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(settingsCacheKey)
	return stored, nil
}
