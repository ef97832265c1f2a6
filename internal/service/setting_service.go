package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/sms-project/sms-backend/internal/config"
	"github.com/sms-project/sms-backend/internal/model"
)

// SettingStore is the persistence surface for runtime-tunable settings.
// *repository.SettingRepository satisfies it.
type SettingStore interface {
	GetAll(ctx context.Context) ([]model.AppSetting, error)
	Upsert(ctx context.Context, key, value string) error
	GetByKey(ctx context.Context, key string) (*model.AppSetting, error)
}

// SettingService exposes tunable policy values. Values stored in the database
// win; anything unset falls back to the environment configuration, so a fresh
// deployment works without seeding.
type SettingService struct {
	settings SettingStore
	cfg      *config.Config
	log      zerolog.Logger
}

// NewSettingService creates a new SettingService.
func NewSettingService(settings SettingStore, cfg *config.Config, log zerolog.Logger) *SettingService {
	return &SettingService{
		settings: settings,
		cfg:      cfg,
		log:      log.With().Str("component", "setting_service").Logger(),
	}
}

// GetAll returns every stored setting.
func (s *SettingService) GetAll(ctx context.Context) ([]model.AppSetting, error) {
	return s.settings.GetAll(ctx)
}

// Update stores one setting value.
func (s *SettingService) Update(ctx context.Context, key, value string) error {
	return s.settings.Upsert(ctx, key, value)
}

// ExpectedPresentDays returns the attendance denominator: the number of school
// days a fully present student would accumulate in a term.
func (s *SettingService) ExpectedPresentDays(ctx context.Context) int {
	return s.intSetting(ctx, config.SettingExpectedPresentDays, s.cfg.ExpectedPresentDays)
}

// AssignmentFullMarks returns the per-assignment maximum used by the
// completion formula.
func (s *SettingService) AssignmentFullMarks(ctx context.Context) int {
	return s.intSetting(ctx, config.SettingAssignmentFullMarks, s.cfg.AssignmentFullMarks)
}

func (s *SettingService) intSetting(ctx context.Context, key string, fallback int) int {
	setting, err := s.settings.GetByKey(ctx, key)
	if err != nil {
		return fallback
	}
	v, err := strconv.Atoi(setting.Value)
	if err != nil || v <= 0 {
		s.log.Warn().Str("key", key).Str("value", setting.Value).Msg("ignoring invalid setting value")
		return fallback
	}
	return v
}
