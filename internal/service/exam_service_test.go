package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sms-project/sms-backend/internal/model"
)

func newExamSvc(store *fakeExamStore, resolver CurrentClassResolver) *ExamService {
	return NewExamService(store, resolver, zerolog.Nop())
}

func TestAddRecordValidatesMarks(t *testing.T) {
	svc := newExamSvc(newFakeExamStore(), enrolledIn(3))
	ctx := context.Background()

	_, err := svc.AddRecord(ctx, model.AddExamRecordRequest{
		StudentID: 1, ClassLevelID: 3, SubjectID: 1, ExamTypeID: 1,
		Marks: 60, FullMarks: 50,
	})
	assert.ErrorIs(t, err, ErrMarksOutOfRange)

	_, err = svc.AddRecord(ctx, model.AddExamRecordRequest{
		StudentID: 1, ClassLevelID: 3, SubjectID: 1, ExamTypeID: 1,
		Marks: 10, FullMarks: 0,
	})
	assert.ErrorIs(t, err, ErrMarksOutOfRange)
}

func TestAddRecordAllowsRetakes(t *testing.T) {
	store := newFakeExamStore()
	svc := newExamSvc(store, enrolledIn(3))
	ctx := context.Background()

	req := model.AddExamRecordRequest{
		StudentID: 1, ClassLevelID: 3, SubjectID: 1, ExamTypeID: 1,
		Marks: 40, FullMarks: 50,
	}
	_, err := svc.AddRecord(ctx, req)
	require.NoError(t, err)
	_, err = svc.AddRecord(ctx, req)
	require.NoError(t, err)
	assert.Len(t, store.records, 2)
}

func TestUpdateRecordValidatesMarks(t *testing.T) {
	store := newFakeExamStore()
	store.records[1] = &model.ExamRecord{ID: 1, Marks: 10, FullMarks: 50}
	svc := newExamSvc(store, enrolledIn(3))

	_, err := svc.UpdateRecord(context.Background(), 1, 60, 50)
	assert.ErrorIs(t, err, ErrMarksOutOfRange)

	rec, err := svc.UpdateRecord(context.Background(), 1, 45, 50)
	require.NoError(t, err)
	assert.Equal(t, 45.0, rec.Marks)
}

func TestMeanFractionSkipsZeroFullMarks(t *testing.T) {
	records := []model.ExamRecord{
		{Marks: 40, FullMarks: 50},
		{Marks: 99, FullMarks: 0}, // skipped
		{Marks: 30, FullMarks: 50},
	}
	assert.InDelta(t, 0.7, meanFraction(records), 1e-9)
}

func TestMeanFractionEmptyIsZero(t *testing.T) {
	assert.Zero(t, meanFraction(nil))
	assert.Zero(t, meanFraction([]model.ExamRecord{{Marks: 5, FullMarks: 0}}))
}

func TestPastAndCurrentPerformanceSplitByClass(t *testing.T) {
	store := newFakeExamStore()
	store.inPast = []model.ExamRecord{{Marks: 40, FullMarks: 50}}
	store.inCurrent = []model.ExamRecord{{Marks: 30, FullMarks: 50}}
	svc := newExamSvc(store, enrolledIn(3))
	ctx := context.Background()

	past, err := svc.PastPerformance(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, past, 1e-9)

	current, err := svc.CurrentPerformance(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, current, 1e-9)
}

func TestPerformanceWithoutEnrollmentIsZero(t *testing.T) {
	store := newFakeExamStore()
	store.inPast = []model.ExamRecord{{Marks: 40, FullMarks: 50}}
	svc := newExamSvc(store, &fakeClassResolver{err: ErrNoEnrollment})

	past, err := svc.PastPerformance(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, past)
}
