package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sms-project/sms-backend/internal/model"
	"github.com/sms-project/sms-backend/internal/repository"
)

func newAssignmentSvc(store *fakeAssignmentStore, resolver CurrentClassResolver) *AssignmentService {
	return NewAssignmentService(store, resolver, fixedMarkPolicy(10), zerolog.Nop())
}

func TestGradeWithinRange(t *testing.T) {
	store := newFakeAssignmentStore()
	store.assignments[1] = &model.Assignment{ID: 1, FullMarks: 10}
	svc := newAssignmentSvc(store, enrolledIn(3))

	sub, err := svc.Grade(context.Background(), 1, 2, 8.5, "good work")
	require.NoError(t, err)
	assert.Equal(t, 8.5, sub.Marks)
	assert.Equal(t, "good work", sub.Feedback)
}

func TestGradeAboveFullMarksRejected(t *testing.T) {
	store := newFakeAssignmentStore()
	store.assignments[1] = &model.Assignment{ID: 1, FullMarks: 10}
	svc := newAssignmentSvc(store, enrolledIn(3))

	_, err := svc.Grade(context.Background(), 1, 2, 11, "")
	assert.ErrorIs(t, err, ErrMarksOutOfRange)
}

func TestGradeTwiceIsConflict(t *testing.T) {
	store := newFakeAssignmentStore()
	store.assignments[1] = &model.Assignment{ID: 1, FullMarks: 10}
	store.insertSubErr = repository.ErrUniqueViolation
	svc := newAssignmentSvc(store, enrolledIn(3))

	_, err := svc.Grade(context.Background(), 1, 2, 5, "")
	assert.ErrorIs(t, err, ErrDuplicateRecord)
}

func TestRegradeMissingSubmission(t *testing.T) {
	svc := newAssignmentSvc(newFakeAssignmentStore(), enrolledIn(3))

	_, err := svc.Regrade(context.Background(), 99, 5, "")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRegradeUpdatesMarksAndFeedback(t *testing.T) {
	store := newFakeAssignmentStore()
	store.assignments[1] = &model.Assignment{ID: 1, FullMarks: 10}
	store.submissions[1] = &model.Submission{ID: 1, AssignmentID: 1, StudentID: 2, Marks: 4}
	svc := newAssignmentSvc(store, enrolledIn(3))

	sub, err := svc.Regrade(context.Background(), 1, 7, "revised")
	require.NoError(t, err)
	assert.Equal(t, 7.0, sub.Marks)
	assert.Equal(t, "revised", sub.Feedback)
}

func TestCompletionRate(t *testing.T) {
	store := newFakeAssignmentStore()
	store.countByClass = 4
	store.statSubmitted = 3
	store.statMarksSum = 24 // 24 of 40 achievable
	svc := newAssignmentSvc(store, enrolledIn(3))

	rate, err := svc.CompletionRate(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, rate, 1e-9)
}

func TestCompletionRateNoAssignments(t *testing.T) {
	store := newFakeAssignmentStore()
	svc := newAssignmentSvc(store, enrolledIn(3))

	rate, err := svc.CompletionRate(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, rate)
}

func TestCompletionRateNoEnrollment(t *testing.T) {
	svc := newAssignmentSvc(newFakeAssignmentStore(), &fakeClassResolver{err: ErrNoEnrollment})

	rate, err := svc.CompletionRate(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, rate)
}

func TestCreateAppliesDefaults(t *testing.T) {
	store := newFakeAssignmentStore()
	svc := newAssignmentSvc(store, enrolledIn(3))

	a := &model.Assignment{Title: "Essay", ClassLevelID: 3}
	require.NoError(t, svc.Create(context.Background(), a))
	assert.Equal(t, 10.0, a.FullMarks)
	assert.False(t, a.Deadline.IsZero())
}

func TestSubmissionSummary(t *testing.T) {
	store := newFakeAssignmentStore()
	store.countByClass = 5
	store.statSubmitted = 4
	store.statMarksSum = 30
	svc := newAssignmentSvc(store, enrolledIn(3))

	summary, err := svc.SubmissionSummary(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.TotalAssignments)
	assert.Equal(t, 1, summary.Unsubmitted)
	assert.InDelta(t, 6.0, summary.AverageMark, 1e-9)
	assert.InDelta(t, 60.0, summary.Percentage, 1e-9)
}
