package model

import "time"

// ParticipationRecord holds a 0–5 class participation mark per subject. One
// row per (student, class level, subject).
type ParticipationRecord struct {
	ID           int       `json:"id"`
	StudentID    int       `json:"student_id"`
	ClassLevelID int       `json:"class_level_id"`
	SubjectID    int       `json:"subject_id"`
	Mark         float64   `json:"mark"`
	AddedBy      int       `json:"added_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RecordParticipationRequest is the payload for recording participation. The
// class level is resolved from the student's current enrollment.
type RecordParticipationRequest struct {
	StudentID int     `json:"student_id" binding:"required,min=1"`
	SubjectID int     `json:"subject_id" binding:"required,min=1"`
	Mark      float64 `json:"mark" binding:"min=0,max=5"`
}

// AmendParticipationRequest is the payload for the update-only path.
type AmendParticipationRequest struct {
	Mark float64 `json:"mark" binding:"min=0,max=5"`
}
