package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sms-project/sms-backend/internal/model"
)

// ExamRepository handles exam type and marksheet data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

// ─── Exam types ─────────────────────────────────────────────────────────────

// ListTypes retrieves all exam types.
func (r *ExamRepository) ListTypes(ctx context.Context) ([]model.ExamType, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM exam_types ORDER BY name`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var types []model.ExamType
	for rows.Next() {
		var t model.ExamType
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// CreateType inserts a new exam type.
func (r *ExamRepository) CreateType(ctx context.Context, t *model.ExamType) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO exam_types (name) VALUES ($1) RETURNING id, created_at`,
		t.Name,
	).Scan(&t.ID, &t.CreatedAt)
	return mapError(err)
}

// UpdateType renames an exam type.
func (r *ExamRepository) UpdateType(ctx context.Context, t *model.ExamType) error {
	_, err := r.pool.Exec(ctx, `UPDATE exam_types SET name = $1 WHERE id = $2`, t.Name, t.ID)
	return mapError(err)
}

// DeleteType removes an exam type. Fails with ErrForeignKey while marksheet
// rows still reference it.
func (r *ExamRepository) DeleteType(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM exam_types WHERE id = $1`, id)
	return mapError(err)
}

// ─── Exam records ───────────────────────────────────────────────────────────

const examRecordColumns = `id, student_id, class_level_id, subject_id, exam_type_id, marks, full_marks, date`

// InsertRecord inserts one marksheet line.
func (r *ExamRepository) InsertRecord(ctx context.Context, rec *model.ExamRecord) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO exam_records (student_id, class_level_id, subject_id, exam_type_id, marks, full_marks, date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		rec.StudentID, rec.ClassLevelID, rec.SubjectID, rec.ExamTypeID, rec.Marks, rec.FullMarks, rec.Date,
	).Scan(&rec.ID)
	return mapError(err)
}

// GetRecord retrieves one marksheet line by ID.
func (r *ExamRepository) GetRecord(ctx context.Context, id int) (*model.ExamRecord, error) {
	rec := &model.ExamRecord{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+examRecordColumns+` FROM exam_records WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.StudentID, &rec.ClassLevelID, &rec.SubjectID, &rec.ExamTypeID, &rec.Marks, &rec.FullMarks, &rec.Date)
	if err != nil {
		return nil, mapError(err)
	}
	return rec, nil
}

// UpdateRecord overwrites the marks of an existing marksheet line.
func (r *ExamRepository) UpdateRecord(ctx context.Context, rec *model.ExamRecord) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE exam_records SET marks = $1, full_marks = $2 WHERE id = $3`,
		rec.Marks, rec.FullMarks, rec.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRecord removes a marksheet line.
func (r *ExamRepository) DeleteRecord(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM exam_records WHERE id = $1`, id)
	return mapError(err)
}

// ListByStudent retrieves every marksheet line for a student.
func (r *ExamRepository) ListByStudent(ctx context.Context, studentID int) ([]model.ExamRecord, error) {
	return r.listRecords(ctx,
		`SELECT `+examRecordColumns+` FROM exam_records
		 WHERE student_id = $1 ORDER BY date, id`, studentID)
}

// ListByStudentClass retrieves a student's marksheet lines for one class.
func (r *ExamRepository) ListByStudentClass(ctx context.Context, studentID, classLevelID int) ([]model.ExamRecord, error) {
	return r.listRecords(ctx,
		`SELECT `+examRecordColumns+` FROM exam_records
		 WHERE student_id = $1 AND class_level_id = $2 ORDER BY date, id`,
		studentID, classLevelID)
}

// ListByStudentExcludingClass retrieves a student's marksheet lines outside
// one class. The metric engine uses it for the historical performance split.
func (r *ExamRepository) ListByStudentExcludingClass(ctx context.Context, studentID, classLevelID int) ([]model.ExamRecord, error) {
	return r.listRecords(ctx,
		`SELECT `+examRecordColumns+` FROM exam_records
		 WHERE student_id = $1 AND class_level_id <> $2 ORDER BY date, id`,
		studentID, classLevelID)
}

func (r *ExamRepository) listRecords(ctx context.Context, query string, args ...interface{}) ([]model.ExamRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var records []model.ExamRecord
	for rows.Next() {
		var rec model.ExamRecord
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.ClassLevelID, &rec.SubjectID, &rec.ExamTypeID, &rec.Marks, &rec.FullMarks, &rec.Date); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
