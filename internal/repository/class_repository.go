package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sms-project/sms-backend/internal/model"
)

// ClassRepository handles class level and curriculum data access.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

// GetByID retrieves a class level by its ID.
func (r *ClassRepository) GetByID(ctx context.Context, id int) (*model.ClassLevel, error) {
	c := &model.ClassLevel{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, level, created_at, updated_at FROM class_levels WHERE id = $1`, id,
	).Scan(&c.ID, &c.Level, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

// List retrieves all class levels in ascending order.
func (r *ClassRepository) List(ctx context.Context) ([]model.ClassLevel, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, level, created_at, updated_at FROM class_levels ORDER BY level`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var classes []model.ClassLevel
	for rows.Next() {
		var c model.ClassLevel
		if err := rows.Scan(&c.ID, &c.Level, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// Create inserts a new class level.
func (r *ClassRepository) Create(ctx context.Context, c *model.ClassLevel) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO class_levels (level) VALUES ($1) RETURNING id, created_at, updated_at`,
		c.Level,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return mapError(err)
}

// Delete removes a class level. Fails with ErrForeignKey while enrollments or
// ledger rows still reference it.
func (r *ClassRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM class_levels WHERE id = $1`, id)
	return mapError(err)
}

// ListSubjects retrieves the subjects attached to one class level.
func (r *ClassRepository) ListSubjects(ctx context.Context, classLevelID int) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.name, s.created_at, s.updated_at
		 FROM subjects s
		 JOIN class_subjects cs ON cs.subject_id = s.id
		 WHERE cs.class_level_id = $1
		 ORDER BY s.name`, classLevelID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// AssignSubject attaches a subject to a class level's curriculum.
func (r *ClassRepository) AssignSubject(ctx context.Context, classLevelID, subjectID int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO class_subjects (class_level_id, subject_id) VALUES ($1, $2)`,
		classLevelID, subjectID,
	)
	return mapError(err)
}

// RemoveSubject detaches a subject from a class level's curriculum.
func (r *ClassRepository) RemoveSubject(ctx context.Context, classLevelID, subjectID int) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM class_subjects WHERE class_level_id = $1 AND subject_id = $2`,
		classLevelID, subjectID,
	)
	return mapError(err)
}
