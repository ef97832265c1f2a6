package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sms-project/sms-backend/internal/model"
)

// ParticipationRepository handles class participation data access.
type ParticipationRepository struct {
	pool *pgxpool.Pool
}

// NewParticipationRepository creates a new ParticipationRepository.
func NewParticipationRepository(pool *pgxpool.Pool) *ParticipationRepository {
	return &ParticipationRepository{pool: pool}
}

// Insert records a participation mark. A second record for the same
// (student, class, subject) fails with ErrUniqueViolation.
func (r *ParticipationRepository) Insert(ctx context.Context, p *model.ParticipationRecord) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO participation_records (student_id, class_level_id, subject_id, mark, added_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		p.StudentID, p.ClassLevelID, p.SubjectID, p.Mark, p.AddedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return mapError(err)
}

// UpdateMark overwrites the mark of an existing record. Reports ErrNotFound
// if no row matched.
func (r *ParticipationRepository) UpdateMark(ctx context.Context, id int, mark float64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE participation_records SET mark = $1, updated_at = NOW() WHERE id = $2`,
		mark, id,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByStudentClass retrieves a student's participation records for one class.
func (r *ParticipationRepository) ListByStudentClass(ctx context.Context, studentID, classLevelID int) ([]model.ParticipationRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, class_level_id, subject_id, mark, added_by, created_at, updated_at
		 FROM participation_records
		 WHERE student_id = $1 AND class_level_id = $2
		 ORDER BY subject_id`, studentID, classLevelID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var records []model.ParticipationRecord
	for rows.Next() {
		var p model.ParticipationRecord
		var addedBy *int
		if err := rows.Scan(&p.ID, &p.StudentID, &p.ClassLevelID, &p.SubjectID, &p.Mark, &addedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if addedBy != nil {
			p.AddedBy = *addedBy
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

// Average returns the mean participation mark for one student in one class,
// or 0 when there are no records.
func (r *ParticipationRepository) Average(ctx context.Context, studentID, classLevelID int) (float64, error) {
	var avg float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(mark), 0) FROM participation_records
		 WHERE student_id = $1 AND class_level_id = $2`,
		studentID, classLevelID,
	).Scan(&avg)
	return avg, mapError(err)
}
