package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/sms-project/sms-backend/internal/model"
)

// AttendanceMetrics is the slice of the attendance service the metric engine
// reads.
type AttendanceMetrics interface {
	PresentCount(ctx context.Context, studentID, classLevelID int) (int, error)
}

// SubmissionMetrics is the slice of the assignment service the metric engine
// reads.
type SubmissionMetrics interface {
	CompletionRate(ctx context.Context, studentID int) (float64, error)
	SubmissionSummary(ctx context.Context, studentID int) (model.AssignmentSummary, error)
}

// ParticipationMetrics is the slice of the participation service the metric
// engine reads.
type ParticipationMetrics interface {
	AverageFor(ctx context.Context, studentID int) (float64, error)
}

// ExamMetrics is the slice of the exam service the metric engine reads.
type ExamMetrics interface {
	PastPerformance(ctx context.Context, studentID int) (float64, error)
	CurrentPerformance(ctx context.Context, studentID int) (float64, error)
}

// PolicySource supplies the tunable denominators of the metric formulas.
type PolicySource interface {
	ExpectedPresentDays(ctx context.Context) int
}

// MetricsService aggregates every ledger into the feature vector consumed by
// the external scoring model, and into the percentage-form dashboard shown to
// humans. Missing data never fails a computation: a student with no records
// scores 0 on the affected metrics.
type MetricsService struct {
	enrollments   CurrentClassResolver
	users         StudentLookup
	attendance    AttendanceMetrics
	assignments   SubmissionMetrics
	participation ParticipationMetrics
	exams         ExamMetrics
	policy        PolicySource
	log           zerolog.Logger
}

// NewMetricsService creates a new MetricsService.
func NewMetricsService(
	enrollments CurrentClassResolver,
	users StudentLookup,
	attendance AttendanceMetrics,
	assignments SubmissionMetrics,
	participation ParticipationMetrics,
	exams ExamMetrics,
	policy PolicySource,
	log zerolog.Logger,
) *MetricsService {
	return &MetricsService{
		enrollments:   enrollments,
		users:         users,
		attendance:    attendance,
		assignments:   assignments,
		participation: participation,
		exams:         exams,
		policy:        policy,
		log:           log.With().Str("component", "metrics_service").Logger(),
	}
}

// internalMarkWeight terms: attendance counts 5, completion 10, participation
// its raw 0..5 mark, normalized by the combined ceiling of 20.
const internalMarkCeiling = 20

// AttendanceRate returns present days over the expected present days of a
// term, in [0,1]. Without a current class the rate is 0.
func (s *MetricsService) AttendanceRate(ctx context.Context, studentID int) (float64, error) {
	enrollment, err := s.enrollments.CurrentClassOf(ctx, studentID)
	if err != nil {
		if errors.Is(err, ErrNoEnrollment) {
			return 0, nil
		}
		return 0, err
	}

	present, err := s.attendance.PresentCount(ctx, studentID, enrollment.ClassLevelID)
	if err != nil {
		return 0, err
	}

	expected := s.policy.ExpectedPresentDays(ctx)
	if expected <= 0 {
		return 0, nil
	}
	return float64(present) / float64(expected), nil
}

// InternalMark blends attendance, assignment completion, and class
// participation into one [0,1] score.
func (s *MetricsService) InternalMark(ctx context.Context, studentID int) (float64, error) {
	attRate, err := s.AttendanceRate(ctx, studentID)
	if err != nil {
		return 0, err
	}
	completion, err := s.assignments.CompletionRate(ctx, studentID)
	if err != nil {
		return 0, err
	}
	participation, err := s.participation.AverageFor(ctx, studentID)
	if err != nil {
		return 0, err
	}
	return (attRate*5 + completion*10 + participation) / internalMarkCeiling, nil
}

// FeatureVector assembles the full input record for the scoring model. The
// study-hours proxy is derived, not observed: the mean of completion, internal
// mark, and attendance rate stands in for it. Household fields the system does
// not collect are pinned to 1, matching the scoring model's training data.
func (s *MetricsService) FeatureVector(ctx context.Context, studentID int) (*model.FeatureVector, error) {
	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return nil, ErrStudentNotFound
	}
	if student.Role != model.RoleStudent {
		return nil, ErrNotStudent
	}

	attRate, err := s.AttendanceRate(ctx, studentID)
	if err != nil {
		return nil, err
	}
	completion, err := s.assignments.CompletionRate(ctx, studentID)
	if err != nil {
		return nil, err
	}
	participation, err := s.participation.AverageFor(ctx, studentID)
	if err != nil {
		return nil, err
	}
	past, err := s.exams.PastPerformance(ctx, studentID)
	if err != nil {
		return nil, err
	}
	current, err := s.exams.CurrentPerformance(ctx, studentID)
	if err != nil {
		return nil, err
	}

	internalMark := (attRate*5 + completion*10 + participation) / internalMarkCeiling
	studyHours := (completion + internalMark + attRate) / 3

	return &model.FeatureVector{
		Gender:                    student.Gender.Code(),
		StudyHoursPerWeek:         studyHours,
		AttendanceRate:            attRate,
		PastExamScores:            past,
		ParentalEducationLevel:    1,
		InternetAccessAtHome:      1,
		ExtracurricularActivities: 1,
		InternalMarks:             internalMark,
		AssignmentSubmissionRate:  completion,
		InternalAssessmentMarks:   current,
	}, nil
}

// Dashboard assembles the percentage-form summary for one student. An
// unenrolled student gets the zero dashboard with Enrolled=false rather than
// an error.
func (s *MetricsService) Dashboard(ctx context.Context, studentID int) (*model.StudentDashboard, error) {
	if _, err := s.users.GetByID(ctx, studentID); err != nil {
		return nil, ErrStudentNotFound
	}

	dashboard := &model.StudentDashboard{}

	enrollment, err := s.enrollments.CurrentClassOf(ctx, studentID)
	if err != nil {
		if errors.Is(err, ErrNoEnrollment) {
			return dashboard, nil
		}
		return nil, err
	}
	dashboard.Enrolled = true
	dashboard.CurrentClass = enrollment.ClassLevelID

	present, err := s.attendance.PresentCount(ctx, studentID, enrollment.ClassLevelID)
	if err != nil {
		return nil, err
	}
	expected := s.policy.ExpectedPresentDays(ctx)
	dashboard.Attendance = model.AttendanceSummary{
		PresentDays:  present,
		ExpectedDays: expected,
	}
	attRate := 0.0
	if expected > 0 {
		attRate = float64(present) / float64(expected)
	}
	dashboard.Attendance.Percentage = attRate * 100

	dashboard.Assignment, err = s.assignments.SubmissionSummary(ctx, studentID)
	if err != nil {
		return nil, err
	}

	completion, err := s.assignments.CompletionRate(ctx, studentID)
	if err != nil {
		return nil, err
	}
	participation, err := s.participation.AverageFor(ctx, studentID)
	if err != nil {
		return nil, err
	}
	past, err := s.exams.PastPerformance(ctx, studentID)
	if err != nil {
		return nil, err
	}
	current, err := s.exams.CurrentPerformance(ctx, studentID)
	if err != nil {
		return nil, err
	}

	dashboard.InternalMark = (attRate*5 + completion*10 + participation) / internalMarkCeiling * 100
	dashboard.PastMark = past * 100
	dashboard.InternalAssessment = current * 100
	dashboard.ClassParticipation = participation / ParticipationMarkMax * 100
	return dashboard, nil
}
