package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/sms-project/sms-backend/internal/model"
	"github.com/sms-project/sms-backend/internal/repository"
)

// ClassStore is the persistence surface for class levels and their curricula.
// *repository.ClassRepository satisfies it.
type ClassStore interface {
	GetByID(ctx context.Context, id int) (*model.ClassLevel, error)
	List(ctx context.Context) ([]model.ClassLevel, error)
	Create(ctx context.Context, c *model.ClassLevel) error
	Delete(ctx context.Context, id int) error
	ListSubjects(ctx context.Context, classLevelID int) ([]model.Subject, error)
	AssignSubject(ctx context.Context, classLevelID, subjectID int) error
	RemoveSubject(ctx context.Context, classLevelID, subjectID int) error
}

// SubjectStore is the persistence surface for subjects.
// *repository.SubjectRepository satisfies it.
type SubjectStore interface {
	List(ctx context.Context) ([]model.Subject, error)
	Create(ctx context.Context, s *model.Subject) error
	Update(ctx context.Context, s *model.Subject) error
	Delete(ctx context.Context, id int) error
}

// CatalogService manages the shared reference data every ledger points at:
// class levels, subjects, and which subjects each class teaches.
type CatalogService struct {
	classes  ClassStore
	subjects SubjectStore
	log      zerolog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(classes ClassStore, subjects SubjectStore, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		classes:  classes,
		subjects: subjects,
		log:      log.With().Str("component", "catalog_service").Logger(),
	}
}

// ListClasses returns every class level ordered by level.
func (s *CatalogService) ListClasses(ctx context.Context) ([]model.ClassLevel, error) {
	return s.classes.List(ctx)
}

// GetClass retrieves one class level.
func (s *CatalogService) GetClass(ctx context.Context, id int) (*model.ClassLevel, error) {
	c, err := s.classes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return c, nil
}

// CreateClass registers a new class level.
func (s *CatalogService) CreateClass(ctx context.Context, level int) (*model.ClassLevel, error) {
	c := &model.ClassLevel{Level: level}
	if err := s.classes.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrDuplicateRecord
		}
		return nil, err
	}
	return c, nil
}

// DeleteClass removes a class level. Levels referenced by enrollments or any
// ledger cannot be deleted.
func (s *CatalogService) DeleteClass(ctx context.Context, id int) error {
	if err := s.classes.Delete(ctx, id); err != nil {
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

// ClassSubjects lists the curriculum of one class level.
func (s *CatalogService) ClassSubjects(ctx context.Context, classLevelID int) ([]model.Subject, error) {
	return s.classes.ListSubjects(ctx, classLevelID)
}

// AssignSubject attaches a subject to a class level's curriculum. Assigning
// twice is a no-op.
func (s *CatalogService) AssignSubject(ctx context.Context, classLevelID, subjectID int) error {
	if err := s.classes.AssignSubject(ctx, classLevelID, subjectID); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}

// RemoveSubject detaches a subject from a class level's curriculum.
func (s *CatalogService) RemoveSubject(ctx context.Context, classLevelID, subjectID int) error {
	if err := s.classes.RemoveSubject(ctx, classLevelID, subjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}

// ListSubjects returns every subject.
func (s *CatalogService) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	return s.subjects.List(ctx)
}

// CreateSubject registers a new subject.
func (s *CatalogService) CreateSubject(ctx context.Context, name string) (*model.Subject, error) {
	sub := &model.Subject{Name: name}
	if err := s.subjects.Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrDuplicateRecord
		}
		return nil, err
	}
	return sub, nil
}

// UpdateSubject renames a subject.
func (s *CatalogService) UpdateSubject(ctx context.Context, id int, name string) error {
	if err := s.subjects.Update(ctx, &model.Subject{ID: id, Name: name}); err != nil {
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

// DeleteSubject removes a subject. Subjects referenced by records cannot be
// deleted.
func (s *CatalogService) DeleteSubject(ctx context.Context, id int) error {
	if err := s.subjects.Delete(ctx, id); err != nil {
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
