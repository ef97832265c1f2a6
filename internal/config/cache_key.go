package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

// CacheKey is the shared builder for Redis key names.
var CacheKey = &CacheKeyStruct{}

// UserSessionKey returns the cache key holding a user's active session JTI.
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}
