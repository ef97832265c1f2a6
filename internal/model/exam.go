package model

import "time"

// ExamType is shared reference data naming a kind of exam (terminal, unit
// test, ...).
type ExamType struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateExamTypeRequest is the payload for creating an exam type.
type CreateExamTypeRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// ExamRecord is one marksheet line: marks obtained out of full marks for a
// subject exam in a given class level. Re-takes may produce multiple rows for
// the same (student, class, subject, exam type); the fractional score averages
// over all of them.
type ExamRecord struct {
	ID           int       `json:"id"`
	StudentID    int       `json:"student_id"`
	ClassLevelID int       `json:"class_level_id"`
	SubjectID    int       `json:"subject_id"`
	ExamTypeID   int       `json:"exam_type_id"`
	Marks        float64   `json:"marks"`
	FullMarks    float64   `json:"full_marks"`
	Date         time.Time `json:"date"`
}

// Fraction returns marks/full_marks, or 0 when full marks is zero.
func (r ExamRecord) Fraction() float64 {
	if r.FullMarks <= 0 {
		return 0
	}
	return r.Marks / r.FullMarks
}

// AddExamRecordRequest is the payload for one marksheet entry. The marks CRUD
// endpoint accepts a batch of these.
type AddExamRecordRequest struct {
	StudentID    int     `json:"student_id" binding:"required,min=1"`
	ClassLevelID int     `json:"class_level_id" binding:"required,min=1"`
	SubjectID    int     `json:"subject_id" binding:"required,min=1"`
	ExamTypeID   int     `json:"exam_type_id" binding:"required,min=1"`
	Marks        float64 `json:"marks" binding:"min=0"`
	FullMarks    float64 `json:"full_marks" binding:"min=0"`
	Date         string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateExamRecordRequest is the payload for amending a marksheet entry.
type UpdateExamRecordRequest struct {
	Marks     float64 `json:"marks" binding:"min=0"`
	FullMarks float64 `json:"full_marks" binding:"min=0"`
}
