package model

import "time"

// Assignment is teacher-authored work for one class, optionally tied to a
// subject. FullMarks is the grading ceiling for its submissions.
type Assignment struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	TeacherID    int       `json:"teacher_id"`
	ClassLevelID int       `json:"class_level_id"`
	SubjectID    *int      `json:"subject_id,omitempty"`
	Deadline     time.Time `json:"deadline"`
	FullMarks    float64   `json:"full_marks"`
	CreatedAt    time.Time `json:"created_at"`
}

// Submission is a graded hand-in. One row per (assignment, student); regrading
// goes through a dedicated update path, never an upsert.
type Submission struct {
	ID           int       `json:"id"`
	AssignmentID int       `json:"assignment_id"`
	StudentID    int       `json:"student_id"`
	Marks        float64   `json:"marks"`
	Feedback     string    `json:"feedback"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// CreateAssignmentRequest is the payload for creating an assignment.
type CreateAssignmentRequest struct {
	Title        string  `json:"title" binding:"required,min=2,max=255"`
	Body         string  `json:"body" binding:"required"`
	ClassLevelID int     `json:"class_level_id" binding:"required,min=1"`
	SubjectID    *int    `json:"subject_id" binding:"omitempty,min=1"`
	Deadline     string  `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	FullMarks    float64 `json:"full_marks" binding:"omitempty,gt=0"`
}

// GradeSubmissionRequest is the payload for recording a graded submission.
type GradeSubmissionRequest struct {
	StudentID int     `json:"student_id" binding:"required,min=1"`
	Marks     float64 `json:"marks" binding:"min=0"`
	Feedback  string  `json:"feedback" binding:"omitempty,max=2000"`
}

// RegradeSubmissionRequest is the payload for amending an existing submission.
type RegradeSubmissionRequest struct {
	Marks    float64 `json:"marks" binding:"min=0"`
	Feedback string  `json:"feedback" binding:"omitempty,max=2000"`
}
