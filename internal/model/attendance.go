package model

import "time"

// AttendanceStatus enumerates the possible outcomes for one student-day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// Valid reports whether s is one of the known statuses.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceLate, AttendanceAbsent:
		return true
	}
	return false
}

// AttendanceRecord is one attendance outcome. A student has at most one row
// per (class level, calendar day).
type AttendanceRecord struct {
	ID           int              `json:"id"`
	StudentID    int              `json:"student_id"`
	ClassLevelID int              `json:"class_level_id"`
	Date         time.Time        `json:"date"`
	Status       AttendanceStatus `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
}

// MarkWithStatusRequest is the payload for the teacher correction path.
type MarkWithStatusRequest struct {
	StudentID int              `json:"student_id" binding:"required,min=1"`
	Status    AttendanceStatus `json:"status" binding:"required,oneof=present late absent"`
	Date      string           `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// MarkByDeviceRequest is the payload for the hardware check-in path.
type MarkByDeviceRequest struct {
	StudentID int `json:"student_id" binding:"required,min=1"`
}

// ClassAttendanceRow is one roster line for a class on a given day.
type ClassAttendanceRow struct {
	StudentID   int              `json:"student_id"`
	StudentName string           `json:"student_name"`
	Status      AttendanceStatus `json:"status,omitempty"`
	Marked      bool             `json:"marked"`
}
