package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sms-project/sms-backend/internal/model"
)

// EnrollmentRepository handles class-membership data access. The single
// nontrivial write is the promotion: demote-then-activate inside one
// transaction so that a crash or a racing request can never leave a student
// with zero or two current enrollments.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

const enrollmentColumns = `id, student_id, class_level_id, is_current, created_at, updated_at`

// GetCurrent retrieves the student's current enrollment, or ErrNotFound.
func (r *EnrollmentRepository) GetCurrent(ctx context.Context, studentID int) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments
		 WHERE student_id = $1 AND is_current`, studentID,
	).Scan(&e.ID, &e.StudentID, &e.ClassLevelID, &e.IsCurrent, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return e, nil
}

// History retrieves the student's non-current enrollments, oldest first.
func (r *EnrollmentRepository) History(ctx context.Context, studentID int) ([]model.Enrollment, error) {
	return r.list(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments
		 WHERE student_id = $1 AND NOT is_current
		 ORDER BY id`, studentID)
}

// ListByStudent retrieves all of the student's enrollments, oldest first.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Enrollment, error) {
	return r.list(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments
		 WHERE student_id = $1
		 ORDER BY id`, studentID)
}

func (r *EnrollmentRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var enrollments []model.Enrollment
	for rows.Next() {
		var e model.Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.ClassLevelID, &e.IsCurrent, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// Promote makes classLevelID the student's current class: every other current
// row is demoted and the (student, class) row is created or reactivated, all
// in one transaction. Re-promoting the same class is a no-op upsert.
func (r *EnrollmentRepository) Promote(ctx context.Context, studentID, classLevelID int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapError(err)
	}
	defer tx.Rollback(ctx)

	if err := r.PromoteTx(ctx, tx, studentID, classLevelID); err != nil {
		return err
	}
	return mapError(tx.Commit(ctx))
}

// PromoteTx is Promote running inside a caller-owned transaction, used when
// the promotion must commit or roll back together with other writes
// (e.g. registration).
func (r *EnrollmentRepository) PromoteTx(ctx context.Context, tx pgx.Tx, studentID, classLevelID int) error {
	if _, err := tx.Exec(ctx,
		`UPDATE enrollments SET is_current = FALSE, updated_at = NOW()
		 WHERE student_id = $1 AND is_current AND class_level_id <> $2`,
		studentID, classLevelID,
	); err != nil {
		return mapError(err)
	}

	_, err := tx.Exec(ctx,
		`INSERT INTO enrollments (student_id, class_level_id, is_current)
		 VALUES ($1, $2, TRUE)
		 ON CONFLICT (student_id, class_level_id)
		 DO UPDATE SET is_current = TRUE, updated_at = NOW()`,
		studentID, classLevelID,
	)
	return mapError(err)
}

// AddPast records a historical (non-current) enrollment, leaving any current
// row untouched.
func (r *EnrollmentRepository) AddPast(ctx context.Context, studentID, classLevelID int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO enrollments (student_id, class_level_id, is_current)
		 VALUES ($1, $2, FALSE)
		 ON CONFLICT (student_id, class_level_id) DO NOTHING`,
		studentID, classLevelID,
	)
	return mapError(err)
}
