package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sms-project/sms-backend/internal/repository"
)

func newParticipationSvc(store *fakeParticipationStore, resolver CurrentClassResolver) *ParticipationService {
	return NewParticipationService(store, resolver, zerolog.Nop())
}

func TestRecordParticipation(t *testing.T) {
	store := &fakeParticipationStore{}
	svc := newParticipationSvc(store, enrolledIn(3))

	rec, err := svc.Record(context.Background(), 1, 2, 4.5, 9)
	require.NoError(t, err)
	assert.Equal(t, 3, rec.ClassLevelID)
	assert.Equal(t, 4.5, rec.Mark)
	assert.Equal(t, 9, rec.AddedBy)
}

func TestRecordParticipationMarkAboveScale(t *testing.T) {
	svc := newParticipationSvc(&fakeParticipationStore{}, enrolledIn(3))

	_, err := svc.Record(context.Background(), 1, 2, 6, 9)
	assert.ErrorIs(t, err, ErrMarksOutOfRange)
}

func TestRecordParticipationDuplicate(t *testing.T) {
	store := &fakeParticipationStore{insertErr: repository.ErrUniqueViolation}
	svc := newParticipationSvc(store, enrolledIn(3))

	_, err := svc.Record(context.Background(), 1, 2, 3, 9)
	assert.ErrorIs(t, err, ErrDuplicateRecord)
}

func TestRecordParticipationNeedsEnrollment(t *testing.T) {
	svc := newParticipationSvc(&fakeParticipationStore{}, &fakeClassResolver{err: ErrNoEnrollment})

	_, err := svc.Record(context.Background(), 1, 2, 3, 9)
	assert.ErrorIs(t, err, ErrNoEnrollment)
}

func TestAmendValidatesRange(t *testing.T) {
	svc := newParticipationSvc(&fakeParticipationStore{}, enrolledIn(3))

	assert.ErrorIs(t, svc.Amend(context.Background(), 1, -1), ErrMarksOutOfRange)
	assert.ErrorIs(t, svc.Amend(context.Background(), 1, 5.5), ErrMarksOutOfRange)
}

func TestAmendMissingRecord(t *testing.T) {
	svc := newParticipationSvc(&fakeParticipationStore{}, enrolledIn(3))

	err := svc.Amend(context.Background(), 99, 3)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestAverageForWithoutEnrollmentIsZero(t *testing.T) {
	store := &fakeParticipationStore{average: 4}
	svc := newParticipationSvc(store, &fakeClassResolver{err: ErrNoEnrollment})

	avg, err := svc.AverageFor(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, avg)
}
