package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sms-project/sms-backend/internal/model"
)

func newEnrollmentService(store *fakeEnrollmentStore, users *fakeStudentLookup) *EnrollmentService {
	return NewEnrollmentService(store, users, zerolog.Nop())
}

func studentUsers(ids ...int) *fakeStudentLookup {
	users := &fakeStudentLookup{users: make(map[int]*model.User)}
	for _, id := range ids {
		users.users[id] = &model.User{ID: id, Role: model.RoleStudent}
	}
	return users
}

func TestEnrollPromotesAndDemotesOldCurrent(t *testing.T) {
	store := newFakeEnrollmentStore()
	svc := newEnrollmentService(store, studentUsers(1))
	ctx := context.Background()

	require.NoError(t, svc.Enroll(ctx, 1, 10, true))
	require.NoError(t, svc.Enroll(ctx, 1, 11, true))

	current, err := svc.CurrentClassOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 11, current.ClassLevelID)
	assert.Equal(t, []int{10, 11}, store.promoted)
}

func TestEnrollWithoutCurrentFlagRecordsHistory(t *testing.T) {
	store := newFakeEnrollmentStore()
	svc := newEnrollmentService(store, studentUsers(1))
	ctx := context.Background()

	require.NoError(t, svc.Enroll(ctx, 1, 9, false))

	_, err := svc.CurrentClassOf(ctx, 1)
	assert.ErrorIs(t, err, ErrNoEnrollment)
	assert.Equal(t, []int{9}, store.pastAdded)
}

func TestEnrollUnknownStudent(t *testing.T) {
	svc := newEnrollmentService(newFakeEnrollmentStore(), studentUsers())

	err := svc.Enroll(context.Background(), 42, 10, true)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestEnrollRejectsNonStudent(t *testing.T) {
	users := studentUsers()
	users.users[7] = &model.User{ID: 7, Role: model.RoleTeacher}
	svc := newEnrollmentService(newFakeEnrollmentStore(), users)

	err := svc.Enroll(context.Background(), 7, 10, true)
	assert.ErrorIs(t, err, ErrNotStudent)
}

func TestReplaceEnrollmentsLastCurrentWins(t *testing.T) {
	store := newFakeEnrollmentStore()
	svc := newEnrollmentService(store, studentUsers(1))
	ctx := context.Background()

	inputs := []model.EnrollmentInput{
		{ClassLevelID: 5, IsCurrent: true},
		{ClassLevelID: 6, IsCurrent: false},
		{ClassLevelID: 7, IsCurrent: true},
	}
	require.NoError(t, svc.ReplaceEnrollments(ctx, 1, inputs))

	current, err := svc.CurrentClassOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, current.ClassLevelID)
	assert.Equal(t, []int{6}, store.pastAdded)
}

func TestCurrentClassOfNoEnrollment(t *testing.T) {
	svc := newEnrollmentService(newFakeEnrollmentStore(), studentUsers(1))

	_, err := svc.CurrentClassOf(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoEnrollment)
}
