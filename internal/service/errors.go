package service

import "errors"

// Domain errors shared across services. Handlers translate them into typed
// response codes at the request boundary; nothing retries them.
var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrRecordNotFound   = errors.New("record not found")
	ErrNoEnrollment     = errors.New("student has no current class enrollment")
	ErrAlreadyMarked    = errors.New("attendance already marked for this day")
	ErrInvalidStatus    = errors.New("unknown attendance status")
	ErrDeviceUnknown    = errors.New("device is not registered")
	ErrDeviceInactive   = errors.New("device has been deactivated")
	ErrMarksOutOfRange  = errors.New("marks are outside the permitted range")
	ErrDuplicateRecord  = errors.New("a record with the same key already exists")
	ErrEmailTaken       = errors.New("email is already registered")
	ErrDependencyExists = errors.New("record is still referenced by other data")
	ErrNotStudent       = errors.New("account is not a student")
)
