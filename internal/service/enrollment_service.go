package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/sms-project/sms-backend/internal/model"
	"github.com/sms-project/sms-backend/internal/repository"
)

// EnrollmentStore is the persistence surface the enrollment service needs.
// *repository.EnrollmentRepository satisfies it.
type EnrollmentStore interface {
	GetCurrent(ctx context.Context, studentID int) (*model.Enrollment, error)
	History(ctx context.Context, studentID int) ([]model.Enrollment, error)
	ListByStudent(ctx context.Context, studentID int) ([]model.Enrollment, error)
	Promote(ctx context.Context, studentID, classLevelID int) error
	AddPast(ctx context.Context, studentID, classLevelID int) error
}

// StudentLookup resolves student accounts. *repository.UserRepository
// satisfies it.
type StudentLookup interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
}

// EnrollmentService owns the time-varying class membership of each student.
// Every other ledger resolves "this student's current class" through it.
type EnrollmentService struct {
	enrollments EnrollmentStore
	users       StudentLookup
	log         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(enrollments EnrollmentStore, users StudentLookup, log zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		users:       users,
		log:         log.With().Str("component", "enrollment_service").Logger(),
	}
}

// Enroll places the student in classLevelID. With makeCurrent the existing
// current enrollment is demoted and the new one activated as one atomic unit;
// re-enrolling the same current class is a no-op. Without makeCurrent the
// class is recorded as historical.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, classLevelID int, makeCurrent bool) error {
	if err := s.requireStudent(ctx, studentID); err != nil {
		return err
	}

	if !makeCurrent {
		return s.enrollments.AddPast(ctx, studentID, classLevelID)
	}

	if err := s.enrollments.Promote(ctx, studentID, classLevelID); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return ErrRecordNotFound
		}
		return err
	}

	s.log.Info().
		Int("student_id", studentID).
		Int("class_level_id", classLevelID).
		Msg("student promoted")
	return nil
}

// CurrentClassOf returns the student's current enrollment or ErrNoEnrollment.
func (s *EnrollmentService) CurrentClassOf(ctx context.Context, studentID int) (*model.Enrollment, error) {
	e, err := s.enrollments.GetCurrent(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoEnrollment
		}
		return nil, err
	}
	return e, nil
}

// HistoryOf returns the student's past (non-current) enrollments.
func (s *EnrollmentService) HistoryOf(ctx context.Context, studentID int) ([]model.Enrollment, error) {
	return s.enrollments.History(ctx, studentID)
}

// ListOf returns all of the student's enrollments, current included.
func (s *EnrollmentService) ListOf(ctx context.Context, studentID int) ([]model.Enrollment, error) {
	return s.enrollments.ListByStudent(ctx, studentID)
}

// ReplaceEnrollments applies a nested enrollment list from the update
// endpoint. Entries are processed in order; every entry flagged current runs
// the promotion, so the last current entry wins.
func (s *EnrollmentService) ReplaceEnrollments(ctx context.Context, studentID int, inputs []model.EnrollmentInput) error {
	if err := s.requireStudent(ctx, studentID); err != nil {
		return err
	}

	for _, in := range inputs {
		if err := s.Enroll(ctx, studentID, in.ClassLevelID, in.IsCurrent); err != nil {
			return err
		}
	}
	return nil
}

func (s *EnrollmentService) requireStudent(ctx context.Context, studentID int) error {
	u, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	if u.Role != model.RoleStudent {
		return ErrNotStudent
	}
	return nil
}
