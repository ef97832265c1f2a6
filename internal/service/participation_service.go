package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/sms-project/sms-backend/internal/model"
	"github.com/sms-project/sms-backend/internal/repository"
)

// ParticipationStore is the persistence surface for classroom participation.
// *repository.ParticipationRepository satisfies it.
type ParticipationStore interface {
	Insert(ctx context.Context, p *model.ParticipationRecord) error
	UpdateMark(ctx context.Context, id int, mark float64) error
	ListByStudentClass(ctx context.Context, studentID, classLevelID int) ([]model.ParticipationRecord, error)
	Average(ctx context.Context, studentID, classLevelID int) (float64, error)
}

// ParticipationMarkMax bounds the 0..5 participation scale.
const ParticipationMarkMax = 5

// ParticipationService records per-subject participation marks and exposes
// the class average used by the internal mark formula.
type ParticipationService struct {
	participation ParticipationStore
	enrollments   CurrentClassResolver
	log           zerolog.Logger
}

// NewParticipationService creates a new ParticipationService.
func NewParticipationService(participation ParticipationStore, enrollments CurrentClassResolver, log zerolog.Logger) *ParticipationService {
	return &ParticipationService{
		participation: participation,
		enrollments:   enrollments,
		log:           log.With().Str("component", "participation_service").Logger(),
	}
}

// Record stores a participation mark for a student's current class. One record
// per (student, class, subject) is enforced.
func (s *ParticipationService) Record(ctx context.Context, studentID, subjectID int, mark float64, addedBy int) (*model.ParticipationRecord, error) {
	if mark < 0 || mark > ParticipationMarkMax {
		return nil, ErrMarksOutOfRange
	}

	enrollment, err := s.enrollments.CurrentClassOf(ctx, studentID)
	if err != nil {
		return nil, err
	}

	record := &model.ParticipationRecord{
		StudentID:    studentID,
		ClassLevelID: enrollment.ClassLevelID,
		SubjectID:    subjectID,
		Mark:         mark,
		AddedBy:      addedBy,
	}
	if err := s.participation.Insert(ctx, record); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrDuplicateRecord
		}
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

// Amend replaces the mark of an existing participation record.
func (s *ParticipationService) Amend(ctx context.Context, recordID int, mark float64) error {
	if mark < 0 || mark > ParticipationMarkMax {
		return ErrMarksOutOfRange
	}
	if err := s.participation.UpdateMark(ctx, recordID, mark); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}

// RecordsFor lists a student's participation records for their current class.
func (s *ParticipationService) RecordsFor(ctx context.Context, studentID int) ([]model.ParticipationRecord, error) {
	enrollment, err := s.enrollments.CurrentClassOf(ctx, studentID)
	if err != nil {
		if errors.Is(err, ErrNoEnrollment) {
			return []model.ParticipationRecord{}, nil
		}
		return nil, err
	}
	return s.participation.ListByStudentClass(ctx, studentID, enrollment.ClassLevelID)
}

// AverageFor returns the mean participation mark of the student's current
// class, 0 when there are no records or no current class.
func (s *ParticipationService) AverageFor(ctx context.Context, studentID int) (float64, error) {
	enrollment, err := s.enrollments.CurrentClassOf(ctx, studentID)
	if err != nil {
		if errors.Is(err, ErrNoEnrollment) {
			return 0, nil
		}
		return 0, err
	}
	return s.participation.Average(ctx, studentID, enrollment.ClassLevelID)
}
