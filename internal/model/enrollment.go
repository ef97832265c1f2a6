package model

import "time"

// Enrollment ties a student to a class level. For any student at most one row
// has IsCurrent=true; the rest are historical and are kept forever because the
// metric engine reads past classes from them.
type Enrollment struct {
	ID           int       `json:"id"`
	StudentID    int       `json:"student_id"`
	ClassLevelID int       `json:"class_level_id"`
	IsCurrent    bool      `json:"is_current"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EnrollmentInput is one entry of the nested list accepted by the enrollment
// update endpoint. Entries flagged current trigger promotion.
type EnrollmentInput struct {
	ClassLevelID int  `json:"class_level_id" binding:"required,min=1"`
	IsCurrent    bool `json:"is_current"`
}

// UpdateEnrollmentsRequest is the payload for PUT /enrollment/update.
type UpdateEnrollmentsRequest struct {
	StudentID   int               `json:"student_id" binding:"required,min=1"`
	Enrollments []EnrollmentInput `json:"enrollments" binding:"required,min=1,dive"`
}
