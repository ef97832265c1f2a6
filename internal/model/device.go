package model

import "time"

// AuthorizedDevice is a capability token for unattended attendance hardware.
// It belongs to no student; only the device-based attendance write path
// consults it.
type AuthorizedDevice struct {
	ID        int       `json:"id"`
	DeviceID  string    `json:"device_id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateDeviceRequest is the payload for registering a device. DeviceID is
// generated server-side when omitted.
type CreateDeviceRequest struct {
	DeviceID string `json:"device_id" binding:"omitempty,min=8,max=64"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
}

// UpdateDeviceRequest is the payload for renaming or toggling a device.
type UpdateDeviceRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	IsActive *bool  `json:"is_active" binding:"required"`
}
