package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sms-project/sms-backend/internal/model"
	"github.com/sms-project/sms-backend/internal/repository"
)

// AssignmentStore is the persistence surface the assignment service needs.
// *repository.AssignmentRepository satisfies it.
type AssignmentStore interface {
	GetByID(ctx context.Context, id int) (*model.Assignment, error)
	ListByClass(ctx context.Context, classLevelID int) ([]model.Assignment, error)
	Create(ctx context.Context, a *model.Assignment) error
	Update(ctx context.Context, a *model.Assignment) error
	Delete(ctx context.Context, id int) error
	CountByClass(ctx context.Context, classLevelID int) (int, error)
	InsertSubmission(ctx context.Context, s *model.Submission) error
	GetSubmission(ctx context.Context, id int) (*model.Submission, error)
	UpdateSubmission(ctx context.Context, s *model.Submission) error
	SubmissionStats(ctx context.Context, studentID, classLevelID int) (int, float64, error)
}

// MarkPolicy supplies the per-assignment maximum mark used as the completion
// denominator and the default grading ceiling. *SettingService satisfies it.
type MarkPolicy interface {
	AssignmentFullMarks(ctx context.Context) int
}

// AssignmentService handles assignment CRUD and submission grading, and
// derives the submission completion metric.
type AssignmentService struct {
	assignments AssignmentStore
	enrollments CurrentClassResolver
	policy      MarkPolicy
	log         zerolog.Logger
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(assignments AssignmentStore, enrollments CurrentClassResolver, policy MarkPolicy, log zerolog.Logger) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		enrollments: enrollments,
		policy:      policy,
		log:         log.With().Str("component", "assignment_service").Logger(),
	}
}

// DefaultDeadline is how far in the future an assignment falls due when the
// teacher does not set a date.
const DefaultDeadline = 7 * 24 * time.Hour

// Create inserts a new assignment, applying the default deadline and full
// marks when unset.
func (s *AssignmentService) Create(ctx context.Context, a *model.Assignment) error {
	if a.Deadline.IsZero() {
		a.Deadline = time.Now().UTC().Add(DefaultDeadline)
	}
	if a.FullMarks <= 0 {
		a.FullMarks = float64(s.policy.AssignmentFullMarks(ctx))
	}
	if err := s.assignments.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}

// GetByID retrieves an assignment.
func (s *AssignmentService) GetByID(ctx context.Context, id int) (*model.Assignment, error) {
	a, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListByClass retrieves the assignments of one class.
func (s *AssignmentService) ListByClass(ctx context.Context, classLevelID int) ([]model.Assignment, error) {
	return s.assignments.ListByClass(ctx, classLevelID)
}

// Update modifies an existing assignment.
func (s *AssignmentService) Update(ctx context.Context, a *model.Assignment) error {
	return s.assignments.Update(ctx, a)
}

// Delete removes an assignment and its submissions.
func (s *AssignmentService) Delete(ctx context.Context, id int) error {
	return s.assignments.Delete(ctx, id)
}

// Grade records a graded submission. Marks must lie within the assignment's
// full marks, and one submission per (assignment, student) is enforced:
// regrading goes through Regrade, never through a second Grade.
func (s *AssignmentService) Grade(ctx context.Context, assignmentID, studentID int, marks float64, feedback string) (*model.Submission, error) {
	assignment, err := s.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if marks < 0 || marks > assignment.FullMarks {
		return nil, ErrMarksOutOfRange
	}

	sub := &model.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Marks:        marks,
		Feedback:     feedback,
	}
	if err := s.assignments.InsertSubmission(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrDuplicateRecord
		}
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return sub, nil
}

// Regrade amends marks and feedback of an existing submission.
func (s *AssignmentService) Regrade(ctx context.Context, submissionID int, marks float64, feedback string) (*model.Submission, error) {
	sub, err := s.assignments.GetSubmission(ctx, submissionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	assignment, err := s.GetByID(ctx, sub.AssignmentID)
	if err != nil {
		return nil, err
	}
	if marks < 0 || marks > assignment.FullMarks {
		return nil, ErrMarksOutOfRange
	}

	sub.Marks = marks
	sub.Feedback = feedback
	if err := s.assignments.UpdateSubmission(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// CompletionRate returns the student's submission completion for their
// current class in [0,1]: submitted marks over the maximum achievable across
// every assignment of the class. A class without assignments, or a student
// without a current class, rates 0 rather than dividing by zero.
func (s *AssignmentService) CompletionRate(ctx context.Context, studentID int) (float64, error) {
	enrollment, err := s.enrollments.CurrentClassOf(ctx, studentID)
	if err != nil {
		if errors.Is(err, ErrNoEnrollment) {
			return 0, nil
		}
		return 0, err
	}

	total, err := s.assignments.CountByClass(ctx, enrollment.ClassLevelID)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	_, marksSum, err := s.assignments.SubmissionStats(ctx, studentID, enrollment.ClassLevelID)
	if err != nil {
		return 0, err
	}
	fullMarks := float64(s.policy.AssignmentFullMarks(ctx))
	return marksSum / (float64(total) * fullMarks), nil
}

// SubmissionSummary returns the human-facing assignment block for the
// dashboard: average mark, totals, and the unsubmitted count.
func (s *AssignmentService) SubmissionSummary(ctx context.Context, studentID int) (model.AssignmentSummary, error) {
	var summary model.AssignmentSummary

	enrollment, err := s.enrollments.CurrentClassOf(ctx, studentID)
	if err != nil {
		if errors.Is(err, ErrNoEnrollment) {
			return summary, nil
		}
		return summary, err
	}

	total, err := s.assignments.CountByClass(ctx, enrollment.ClassLevelID)
	if err != nil {
		return summary, err
	}
	summary.TotalAssignments = total
	if total == 0 {
		return summary, nil
	}

	submitted, marksSum, err := s.assignments.SubmissionStats(ctx, studentID, enrollment.ClassLevelID)
	if err != nil {
		return summary, err
	}

	fullMarks := float64(s.policy.AssignmentFullMarks(ctx))
	summary.AverageMark = marksSum / float64(total)
	summary.Percentage = marksSum / (float64(total) * fullMarks) * 100
	summary.Unsubmitted = total - submitted
	return summary, nil
}
