package model

import "time"

// ClassLevel represents an ordinal grade (Class 1, Class 2, ...). It is shared
// reference data: every ledger points at it, no student owns it.
type ClassLevel struct {
	ID        int       `json:"id"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateClassLevelRequest is the payload for creating a class level.
type CreateClassLevelRequest struct {
	Level int `json:"level" binding:"required,min=1"`
}
