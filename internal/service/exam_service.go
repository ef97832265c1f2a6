package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sms-project/sms-backend/internal/model"
	"github.com/sms-project/sms-backend/internal/repository"
)

// ExamStore is the persistence surface for exam types and marksheet records.
// *repository.ExamRepository satisfies it.
type ExamStore interface {
	ListTypes(ctx context.Context) ([]model.ExamType, error)
	CreateType(ctx context.Context, t *model.ExamType) error
	UpdateType(ctx context.Context, t *model.ExamType) error
	DeleteType(ctx context.Context, id int) error
	InsertRecord(ctx context.Context, rec *model.ExamRecord) error
	GetRecord(ctx context.Context, id int) (*model.ExamRecord, error)
	UpdateRecord(ctx context.Context, rec *model.ExamRecord) error
	DeleteRecord(ctx context.Context, id int) error
	ListByStudent(ctx context.Context, studentID int) ([]model.ExamRecord, error)
	ListByStudentClass(ctx context.Context, studentID, classLevelID int) ([]model.ExamRecord, error)
	ListByStudentExcludingClass(ctx context.Context, studentID, classLevelID int) ([]model.ExamRecord, error)
}

// ExamService manages exam types and marksheet records, and derives the
// fractional exam scores consumed by the metric engine. Re-takes are allowed:
// the same (student, class, subject, exam type) may have several records, and
// averages cover all of them.
type ExamService struct {
	exams       ExamStore
	enrollments CurrentClassResolver
	log         zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(exams ExamStore, enrollments CurrentClassResolver, log zerolog.Logger) *ExamService {
	return &ExamService{
		exams:       exams,
		enrollments: enrollments,
		log:         log.With().Str("component", "exam_service").Logger(),
	}
}

// ListTypes returns all exam types.
func (s *ExamService) ListTypes(ctx context.Context) ([]model.ExamType, error) {
	return s.exams.ListTypes(ctx)
}

// CreateType registers a new exam type.
func (s *ExamService) CreateType(ctx context.Context, name string) (*model.ExamType, error) {
	t := &model.ExamType{Name: name}
	if err := s.exams.CreateType(ctx, t); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrDuplicateRecord
		}
		return nil, err
	}
	return t, nil
}

// UpdateType renames an exam type.
func (s *ExamService) UpdateType(ctx context.Context, id int, name string) error {
	if err := s.exams.UpdateType(ctx, &model.ExamType{ID: id, Name: name}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecordNotFound
		}
		if errors.Is(err, repository.ErrUniqueViolation) {
			return ErrDuplicateRecord
		}
		return err
	}
	return nil
}

// DeleteType removes an exam type. Types referenced by marksheet records
// cannot be deleted.
func (s *ExamService) DeleteType(ctx context.Context, id int) error {
	if err := s.exams.DeleteType(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecordNotFound
		}
		if errors.Is(err, repository.ErrForeignKey) {
			return ErrDependencyExists
		}
		return err
	}
	return nil
}

// AddRecord inserts one marksheet entry. Marks may not exceed full marks.
func (s *ExamService) AddRecord(ctx context.Context, req model.AddExamRecordRequest) (*model.ExamRecord, error) {
	if req.FullMarks <= 0 || req.Marks > req.FullMarks {
		return nil, ErrMarksOutOfRange
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	rec := &model.ExamRecord{
		StudentID:    req.StudentID,
		ClassLevelID: req.ClassLevelID,
		SubjectID:    req.SubjectID,
		ExamTypeID:   req.ExamTypeID,
		Marks:        req.Marks,
		FullMarks:    req.FullMarks,
		Date:         date,
	}
	if err := s.exams.InsertRecord(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return rec, nil
}

// UpdateRecord amends the marks of an existing marksheet entry.
func (s *ExamService) UpdateRecord(ctx context.Context, id int, marks, fullMarks float64) (*model.ExamRecord, error) {
	if fullMarks <= 0 || marks > fullMarks {
		return nil, ErrMarksOutOfRange
	}

	rec, err := s.exams.GetRecord(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	rec.Marks = marks
	rec.FullMarks = fullMarks
	if err := s.exams.UpdateRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteRecord removes a marksheet entry.
func (s *ExamService) DeleteRecord(ctx context.Context, id int) error {
	if err := s.exams.DeleteRecord(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}

// RecordsFor lists every marksheet entry of a student across all classes.
func (s *ExamService) RecordsFor(ctx context.Context, studentID int) ([]model.ExamRecord, error) {
	return s.exams.ListByStudent(ctx, studentID)
}

// PastPerformance returns the mean fractional score over records from classes
// other than the student's current one. Records with zero full marks are
// skipped; an empty set rates 0.
func (s *ExamService) PastPerformance(ctx context.Context, studentID int) (float64, error) {
	return s.performance(ctx, studentID, s.exams.ListByStudentExcludingClass)
}

// CurrentPerformance returns the mean fractional score over records from the
// student's current class.
func (s *ExamService) CurrentPerformance(ctx context.Context, studentID int) (float64, error) {
	return s.performance(ctx, studentID, s.exams.ListByStudentClass)
}

func (s *ExamService) performance(ctx context.Context, studentID int, list func(context.Context, int, int) ([]model.ExamRecord, error)) (float64, error) {
	enrollment, err := s.enrollments.CurrentClassOf(ctx, studentID)
	if err != nil {
		if errors.Is(err, ErrNoEnrollment) {
			return 0, nil
		}
		return 0, err
	}

	records, err := list(ctx, studentID, enrollment.ClassLevelID)
	if err != nil {
		return 0, err
	}
	return meanFraction(records), nil
}

// meanFraction averages marks/full_marks over records, skipping any with a
// non-positive full marks so a bad row cannot poison the mean.
func meanFraction(records []model.ExamRecord) float64 {
	var sum float64
	var n int
	for _, rec := range records {
		if rec.FullMarks <= 0 {
			continue
		}
		sum += rec.Fraction()
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
