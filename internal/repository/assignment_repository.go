package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sms-project/sms-backend/internal/model"
)

// AssignmentRepository handles assignment and submission data access.
type AssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository creates a new AssignmentRepository.
func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

const assignmentColumns = `id, title, body, teacher_id, class_level_id, subject_id, deadline, full_marks, created_at`

func scanAssignment(row pgx.Row) (*model.Assignment, error) {
	a := &model.Assignment{}
	var teacherID *int
	err := row.Scan(&a.ID, &a.Title, &a.Body, &teacherID, &a.ClassLevelID, &a.SubjectID, &a.Deadline, &a.FullMarks, &a.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	if teacherID != nil {
		a.TeacherID = *teacherID
	}
	return a, nil
}

// GetByID retrieves an assignment by ID.
func (r *AssignmentRepository) GetByID(ctx context.Context, id int) (*model.Assignment, error) {
	return scanAssignment(r.pool.QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id))
}

// ListByClass retrieves all assignments for one class, newest first.
func (r *AssignmentRepository) ListByClass(ctx context.Context, classLevelID int) ([]model.Assignment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+assignmentColumns+` FROM assignments
		 WHERE class_level_id = $1 ORDER BY created_at DESC`, classLevelID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		var a model.Assignment
		var teacherID *int
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &teacherID, &a.ClassLevelID, &a.SubjectID, &a.Deadline, &a.FullMarks, &a.CreatedAt); err != nil {
			return nil, err
		}
		if teacherID != nil {
			a.TeacherID = *teacherID
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// Create inserts a new assignment.
func (r *AssignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO assignments (title, body, teacher_id, class_level_id, subject_id, deadline, full_marks)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		a.Title, a.Body, a.TeacherID, a.ClassLevelID, a.SubjectID, a.Deadline, a.FullMarks,
	).Scan(&a.ID, &a.CreatedAt)
	return mapError(err)
}

// Update modifies an existing assignment.
func (r *AssignmentRepository) Update(ctx context.Context, a *model.Assignment) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE assignments SET title = $1, body = $2, subject_id = $3, deadline = $4, full_marks = $5
		 WHERE id = $6`,
		a.Title, a.Body, a.SubjectID, a.Deadline, a.FullMarks, a.ID,
	)
	return mapError(err)
}

// Delete removes an assignment and its submissions.
func (r *AssignmentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	return mapError(err)
}

// CountByClass counts the assignments defined for one class.
func (r *AssignmentRepository) CountByClass(ctx context.Context, classLevelID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM assignments WHERE class_level_id = $1`, classLevelID,
	).Scan(&count)
	return count, mapError(err)
}

// ─── Submissions ────────────────────────────────────────────────────────────

// InsertSubmission records a graded submission. A second grade for the same
// (assignment, student) fails with ErrUniqueViolation.
func (r *AssignmentRepository) InsertSubmission(ctx context.Context, s *model.Submission) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO submissions (assignment_id, student_id, marks, feedback)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, submitted_at`,
		s.AssignmentID, s.StudentID, s.Marks, s.Feedback,
	).Scan(&s.ID, &s.SubmittedAt)
	return mapError(err)
}

// GetSubmission retrieves a submission by ID.
func (r *AssignmentRepository) GetSubmission(ctx context.Context, id int) (*model.Submission, error) {
	s := &model.Submission{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, assignment_id, student_id, marks, feedback, submitted_at
		 FROM submissions WHERE id = $1`, id,
	).Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.Marks, &s.Feedback, &s.SubmittedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return s, nil
}

// UpdateSubmission overwrites the marks and feedback of an existing
// submission. Reports ErrNotFound if no row matched.
func (r *AssignmentRepository) UpdateSubmission(ctx context.Context, s *model.Submission) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE submissions SET marks = $1, feedback = $2 WHERE id = $3`,
		s.Marks, s.Feedback, s.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SubmissionStats returns, for one student in one class, the number of graded
// submissions and their mark total.
func (r *AssignmentRepository) SubmissionStats(ctx context.Context, studentID, classLevelID int) (submitted int, marksSum float64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(s.id), COALESCE(SUM(s.marks), 0)
		 FROM submissions s
		 JOIN assignments a ON a.id = s.assignment_id
		 WHERE s.student_id = $1 AND a.class_level_id = $2`,
		studentID, classLevelID,
	).Scan(&submitted, &marksSum)
	return submitted, marksSum, mapError(err)
}
