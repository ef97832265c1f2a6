package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sms-project/sms-backend/internal/model"
)

type stubAttendanceMetrics struct{ present int }

func (s stubAttendanceMetrics) PresentCount(ctx context.Context, studentID, classLevelID int) (int, error) {
	return s.present, nil
}

type stubSubmissionMetrics struct {
	rate    float64
	summary model.AssignmentSummary
}

func (s stubSubmissionMetrics) CompletionRate(ctx context.Context, studentID int) (float64, error) {
	return s.rate, nil
}

func (s stubSubmissionMetrics) SubmissionSummary(ctx context.Context, studentID int) (model.AssignmentSummary, error) {
	return s.summary, nil
}

type stubParticipationMetrics struct{ avg float64 }

func (s stubParticipationMetrics) AverageFor(ctx context.Context, studentID int) (float64, error) {
	return s.avg, nil
}

type stubExamMetrics struct{ past, current float64 }

func (s stubExamMetrics) PastPerformance(ctx context.Context, studentID int) (float64, error) {
	return s.past, nil
}

func (s stubExamMetrics) CurrentPerformance(ctx context.Context, studentID int) (float64, error) {
	return s.current, nil
}

type stubPolicy struct{ days int }

func (s stubPolicy) ExpectedPresentDays(ctx context.Context) int { return s.days }

func newMetricsSvc(
	resolver CurrentClassResolver,
	users *fakeStudentLookup,
	att stubAttendanceMetrics,
	sub stubSubmissionMetrics,
	part stubParticipationMetrics,
	exams stubExamMetrics,
	policy stubPolicy,
) *MetricsService {
	return NewMetricsService(resolver, users, att, sub, part, exams, policy, zerolog.Nop())
}

func TestAttendanceRate(t *testing.T) {
	svc := newMetricsSvc(enrolledIn(3), studentUsers(1),
		stubAttendanceMetrics{present: 90}, stubSubmissionMetrics{}, stubParticipationMetrics{}, stubExamMetrics{}, stubPolicy{days: 180})

	rate, err := svc.AttendanceRate(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, rate, 1e-9)
}

func TestAttendanceRateNoEnrollmentIsZero(t *testing.T) {
	svc := newMetricsSvc(&fakeClassResolver{err: ErrNoEnrollment}, studentUsers(1),
		stubAttendanceMetrics{present: 90}, stubSubmissionMetrics{}, stubParticipationMetrics{}, stubExamMetrics{}, stubPolicy{days: 180})

	rate, err := svc.AttendanceRate(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, rate)
}

func TestInternalMarkBlend(t *testing.T) {
	// attRate 0.5, completion 0.6, participation 4:
	// (0.5*5 + 0.6*10 + 4) / 20 = 12.5 / 20 = 0.625
	svc := newMetricsSvc(enrolledIn(3), studentUsers(1),
		stubAttendanceMetrics{present: 90},
		stubSubmissionMetrics{rate: 0.6},
		stubParticipationMetrics{avg: 4},
		stubExamMetrics{},
		stubPolicy{days: 180})

	mark, err := svc.InternalMark(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.625, mark, 1e-9)
}

func TestFeatureVectorValues(t *testing.T) {
	users := studentUsers()
	users.users[1] = &model.User{ID: 1, Role: model.RoleStudent, Gender: model.GenderFemale}
	svc := newMetricsSvc(enrolledIn(3), users,
		stubAttendanceMetrics{present: 90},
		stubSubmissionMetrics{rate: 0.6},
		stubParticipationMetrics{avg: 4},
		stubExamMetrics{past: 0.8, current: 0.6},
		stubPolicy{days: 180})

	v, err := svc.FeatureVector(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, v.Gender)
	assert.InDelta(t, 0.5, v.AttendanceRate, 1e-9)
	assert.InDelta(t, 0.6, v.AssignmentSubmissionRate, 1e-9)
	assert.InDelta(t, 0.8, v.PastExamScores, 1e-9)
	assert.InDelta(t, 0.6, v.InternalAssessmentMarks, 1e-9)
	assert.InDelta(t, 0.625, v.InternalMarks, 1e-9)
	// mean(completion, internalMark, attRate) = (0.6 + 0.625 + 0.5) / 3
	assert.InDelta(t, 0.575, v.StudyHoursPerWeek, 1e-9)
	assert.Equal(t, 1, v.ParentalEducationLevel)
	assert.Equal(t, 1, v.InternetAccessAtHome)
	assert.Equal(t, 1, v.ExtracurricularActivities)
}

func TestFeatureVectorFieldNames(t *testing.T) {
	users := studentUsers(1)
	svc := newMetricsSvc(enrolledIn(3), users,
		stubAttendanceMetrics{}, stubSubmissionMetrics{}, stubParticipationMetrics{}, stubExamMetrics{}, stubPolicy{days: 180})

	v, err := svc.FeatureVector(context.Background(), 1)
	require.NoError(t, err)

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{
		"Gender", "Study_Hours_per_Week", "Attendance_Rate", "Past_Exam_Scores",
		"Parental_Education_Level", "Internet_Access_at_Home", "Extracurricular_Activities",
		"Internal_Marks", "Assignment_Submission_Rate", "Internal_Assessment_Marks",
	} {
		assert.Contains(t, decoded, key)
	}
}

func TestFeatureVectorUnknownStudent(t *testing.T) {
	svc := newMetricsSvc(enrolledIn(3), studentUsers(),
		stubAttendanceMetrics{}, stubSubmissionMetrics{}, stubParticipationMetrics{}, stubExamMetrics{}, stubPolicy{days: 180})

	_, err := svc.FeatureVector(context.Background(), 42)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestFeatureVectorRejectsNonStudent(t *testing.T) {
	users := studentUsers()
	users.users[5] = &model.User{ID: 5, Role: model.RoleTeacher}
	svc := newMetricsSvc(enrolledIn(3), users,
		stubAttendanceMetrics{}, stubSubmissionMetrics{}, stubParticipationMetrics{}, stubExamMetrics{}, stubPolicy{days: 180})

	_, err := svc.FeatureVector(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotStudent)
}

func TestFeatureVectorNoEnrollmentIsZeroNotError(t *testing.T) {
	svc := newMetricsSvc(&fakeClassResolver{err: ErrNoEnrollment}, studentUsers(1),
		stubAttendanceMetrics{present: 90},
		stubSubmissionMetrics{rate: 0},
		stubParticipationMetrics{avg: 0},
		stubExamMetrics{},
		stubPolicy{days: 180})

	v, err := svc.FeatureVector(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, v.AttendanceRate)
	assert.Zero(t, v.InternalMarks)
	assert.Zero(t, v.StudyHoursPerWeek)
}

func TestDashboardUnenrolledStudent(t *testing.T) {
	svc := newMetricsSvc(&fakeClassResolver{err: ErrNoEnrollment}, studentUsers(1),
		stubAttendanceMetrics{}, stubSubmissionMetrics{}, stubParticipationMetrics{}, stubExamMetrics{}, stubPolicy{days: 180})

	d, err := svc.Dashboard(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, d.Enrolled)
	assert.Zero(t, d.InternalMark)
}

func TestDashboardPercentages(t *testing.T) {
	svc := newMetricsSvc(enrolledIn(3), studentUsers(1),
		stubAttendanceMetrics{present: 90},
		stubSubmissionMetrics{rate: 0.6, summary: model.AssignmentSummary{TotalAssignments: 5}},
		stubParticipationMetrics{avg: 4},
		stubExamMetrics{past: 0.8, current: 0.6},
		stubPolicy{days: 180})

	d, err := svc.Dashboard(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, d.Enrolled)
	assert.Equal(t, 3, d.CurrentClass)
	assert.Equal(t, 90, d.Attendance.PresentDays)
	assert.Equal(t, 180, d.Attendance.ExpectedDays)
	assert.InDelta(t, 50.0, d.Attendance.Percentage, 1e-9)
	assert.InDelta(t, 62.5, d.InternalMark, 1e-9)
	assert.InDelta(t, 80.0, d.PastMark, 1e-9)
	assert.InDelta(t, 60.0, d.InternalAssessment, 1e-9)
	assert.InDelta(t, 80.0, d.ClassParticipation, 1e-9)
}
