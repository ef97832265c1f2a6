package model

import "time"

// Role distinguishes the account types known to the system.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Gender represents the user's gender as stored on the profile.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Code returns the numeric encoding the scoring model expects (male=0, female=1).
func (g Gender) Code() int {
	if g == GenderFemale {
		return 1
	}
	return 0
}

// User represents an account: a student, a teacher, or an admin.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	Gender       Gender    `json:"gender"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterStudentRequest is the payload for student self-registration. The
// account and its initial enrollment are created as one unit: if the
// enrollment part fails, the account must not survive.
type RegisterStudentRequest struct {
	Email        string `json:"email" binding:"required,email"`
	FullName     string `json:"full_name" binding:"required,min=2,max=255"`
	Gender       Gender `json:"gender" binding:"required,oneof=male female"`
	Password     string `json:"password" binding:"required,min=6,max=128"`
	ClassLevelID int    `json:"class_level_id" binding:"required,min=1"`
}

// UpdateUserRequest is the payload for updating an existing account.
type UpdateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required,min=2,max=255"`
	Gender   Gender `json:"gender" binding:"required,oneof=male female"`
	IsActive *bool  `json:"is_active" binding:"omitempty"`
}
