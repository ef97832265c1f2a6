package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sms-project/sms-backend/internal/model"
)

// AttendanceRepository handles attendance ledger data access. Duplicate
// handling differs per write path, so the three inserts are kept as three
// distinct statements instead of one polymorphic upsert.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Insert records one attendance outcome. A second insert for the same
// (student, class, date) fails with ErrUniqueViolation.
func (r *AttendanceRepository) Insert(ctx context.Context, rec *model.AttendanceRecord) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO attendance_records (student_id, class_level_id, date, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		rec.StudentID, rec.ClassLevelID, rec.Date, rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt)
	return mapError(err)
}

// Upsert records an outcome, overwriting the status of an existing row for
// the same day. Used by the explicit status-setting path, which is an
// idempotent update by contract.
func (r *AttendanceRepository) Upsert(ctx context.Context, rec *model.AttendanceRecord) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO attendance_records (student_id, class_level_id, date, status)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (student_id, class_level_id, date)
		 DO UPDATE SET status = EXCLUDED.status
		 RETURNING id, created_at`,
		rec.StudentID, rec.ClassLevelID, rec.Date, rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt)
	return mapError(err)
}

// InsertIgnoreDuplicate records an outcome unless one already exists, in
// which case it reports created=false with no error. Used by the device path,
// which tolerates hardware retries.
func (r *AttendanceRepository) InsertIgnoreDuplicate(ctx context.Context, rec *model.AttendanceRecord) (created bool, err error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO attendance_records (student_id, class_level_id, date, status)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (student_id, class_level_id, date) DO NOTHING`,
		rec.StudentID, rec.ClassLevelID, rec.Date, rec.Status,
	)
	if err != nil {
		return false, mapError(err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByStudentClass retrieves a student's records for one class, ordered by date.
func (r *AttendanceRepository) ListByStudentClass(ctx context.Context, studentID, classLevelID int) ([]model.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, class_level_id, date, status, created_at
		 FROM attendance_records
		 WHERE student_id = $1 AND class_level_id = $2
		 ORDER BY date`, studentID, classLevelID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var records []model.AttendanceRecord
	for rows.Next() {
		var rec model.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.ClassLevelID, &rec.Date, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountPresent counts a student's present days in one class.
func (r *AttendanceRepository) CountPresent(ctx context.Context, studentID, classLevelID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendance_records
		 WHERE student_id = $1 AND class_level_id = $2 AND status = $3`,
		studentID, classLevelID, model.AttendancePresent,
	).Scan(&count)
	return count, mapError(err)
}

// ClassRoster lists every student currently enrolled in a class with their
// attendance outcome for the given day, unmarked students included.
func (r *AttendanceRepository) ClassRoster(ctx context.Context, classLevelID int, date time.Time) ([]model.ClassAttendanceRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.id, u.full_name, a.status
		 FROM users u
		 JOIN enrollments e ON e.student_id = u.id AND e.is_current
		 LEFT JOIN attendance_records a
		   ON a.student_id = u.id AND a.class_level_id = e.class_level_id AND a.date = $2
		 WHERE u.role = 'student' AND e.class_level_id = $1
		 ORDER BY u.full_name`, classLevelID, date)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var roster []model.ClassAttendanceRow
	for rows.Next() {
		var row model.ClassAttendanceRow
		var status *model.AttendanceStatus
		if err := rows.Scan(&row.StudentID, &row.StudentName, &status); err != nil {
			return nil, err
		}
		if status != nil {
			row.Status = *status
			row.Marked = true
		}
		roster = append(roster, row)
	}
	return roster, rows.Err()
}
