package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sms-project/sms-backend/internal/model"
	"github.com/sms-project/sms-backend/internal/repository"
)

func enrolledIn(classLevelID int) *fakeClassResolver {
	return &fakeClassResolver{enrollment: &model.Enrollment{StudentID: 1, ClassLevelID: classLevelID, IsCurrent: true}}
}

func activeDevice(token string) *fakeDeviceLookup {
	return &fakeDeviceLookup{devices: map[string]*model.AuthorizedDevice{
		token: {ID: 1, DeviceID: token, Name: "gate", IsActive: true},
	}}
}

func TestMarkSelfCreatesPresentRecord(t *testing.T) {
	store := &fakeAttendanceStore{}
	svc := NewAttendanceService(store, activeDevice("d"), enrolledIn(3), zerolog.Nop())

	rec, err := svc.MarkSelf(context.Background(), 1, time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, model.AttendancePresent, rec.Status)
	assert.Equal(t, 3, rec.ClassLevelID)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), rec.Date)
}

func TestMarkSelfTwiceIsConflict(t *testing.T) {
	store := &fakeAttendanceStore{insertErr: repository.ErrUniqueViolation}
	svc := NewAttendanceService(store, activeDevice("d"), enrolledIn(3), zerolog.Nop())

	_, err := svc.MarkSelf(context.Background(), 1, time.Now())
	assert.ErrorIs(t, err, ErrAlreadyMarked)
}

func TestMarkSelfRequiresEnrollment(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendanceStore{}, activeDevice("d"), &fakeClassResolver{err: ErrNoEnrollment}, zerolog.Nop())

	_, err := svc.MarkSelf(context.Background(), 1, time.Now())
	assert.ErrorIs(t, err, ErrNoEnrollment)
}

func TestMarkWithStatusOverwrites(t *testing.T) {
	store := &fakeAttendanceStore{}
	svc := NewAttendanceService(store, activeDevice("d"), enrolledIn(3), zerolog.Nop())
	ctx := context.Background()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := svc.MarkWithStatus(ctx, 1, model.AttendanceLate, day)
	require.NoError(t, err)
	rec, err := svc.MarkWithStatus(ctx, 1, model.AttendanceAbsent, day)
	require.NoError(t, err)

	assert.Equal(t, model.AttendanceAbsent, rec.Status)
	assert.Len(t, store.upserted, 2)
}

func TestMarkWithStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendanceStore{}, activeDevice("d"), enrolledIn(3), zerolog.Nop())

	_, err := svc.MarkWithStatus(context.Background(), 1, model.AttendanceStatus("asleep"), time.Now())
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestMarkByDeviceUnknownDevice(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendanceStore{}, activeDevice("known"), enrolledIn(3), zerolog.Nop())

	err := svc.MarkByDevice(context.Background(), "bogus", 1, time.Now())
	assert.ErrorIs(t, err, ErrDeviceUnknown)
}

func TestMarkByDeviceInactiveDevice(t *testing.T) {
	devices := &fakeDeviceLookup{devices: map[string]*model.AuthorizedDevice{
		"gate": {ID: 1, DeviceID: "gate", IsActive: false},
	}}
	svc := NewAttendanceService(&fakeAttendanceStore{}, devices, enrolledIn(3), zerolog.Nop())

	err := svc.MarkByDevice(context.Background(), "gate", 1, time.Now())
	assert.ErrorIs(t, err, ErrDeviceInactive)
}

func TestMarkByDeviceIsIdempotent(t *testing.T) {
	store := &fakeAttendanceStore{ignoredDup: true}
	svc := NewAttendanceService(store, activeDevice("gate"), enrolledIn(3), zerolog.Nop())

	// The day is already marked; the retry must succeed without effect.
	err := svc.MarkByDevice(context.Background(), "gate", 1, time.Now())
	assert.NoError(t, err)
	assert.Empty(t, store.inserted)
}

func TestDateOnlyTruncatesToUTCDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	in := time.Date(2026, 3, 3, 1, 15, 0, 0, loc) // 2026-03-02 18:15 UTC

	got := dateOnly(in)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), got)
}
