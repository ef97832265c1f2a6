package model

import "time"

// AppSetting is a runtime-tunable key/value pair (e.g. expected present days).
type AppSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
