package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/sms-project/sms-backend/internal/config"
	"github.com/sms-project/sms-backend/internal/model"
	"github.com/sms-project/sms-backend/internal/repository"
)

type fakeSettingStore struct {
	values map[string]string
}

func (f *fakeSettingStore) GetAll(ctx context.Context) ([]model.AppSetting, error) {
	var out []model.AppSetting
	for k, v := range f.values {
		out = append(out, model.AppSetting{Key: k, Value: v})
	}
	return out, nil
}

func (f *fakeSettingStore) Upsert(ctx context.Context, key, value string) error {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	f.values[key] = value
	return nil
}

func (f *fakeSettingStore) GetByKey(ctx context.Context, key string) (*model.AppSetting, error) {
	v, ok := f.values[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &model.AppSetting{Key: key, Value: v}, nil
}

func newSettingSvc(store *fakeSettingStore) *SettingService {
	cfg := &config.Config{ExpectedPresentDays: 180, AssignmentFullMarks: 10}
	return NewSettingService(store, cfg, zerolog.Nop())
}

func TestExpectedPresentDaysFallsBackToConfig(t *testing.T) {
	svc := newSettingSvc(&fakeSettingStore{})
	assert.Equal(t, 180, svc.ExpectedPresentDays(context.Background()))
}

func TestStoredSettingOverridesConfig(t *testing.T) {
	store := &fakeSettingStore{values: map[string]string{
		config.SettingExpectedPresentDays: "40",
	}}
	svc := newSettingSvc(store)
	assert.Equal(t, 40, svc.ExpectedPresentDays(context.Background()))
}

func TestInvalidStoredSettingIgnored(t *testing.T) {
	store := &fakeSettingStore{values: map[string]string{
		config.SettingExpectedPresentDays: "not-a-number",
		config.SettingAssignmentFullMarks: "-5",
	}}
	svc := newSettingSvc(store)
	assert.Equal(t, 180, svc.ExpectedPresentDays(context.Background()))
	assert.Equal(t, 10, svc.AssignmentFullMarks(context.Background()))
}
