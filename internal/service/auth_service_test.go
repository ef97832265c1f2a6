package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sms-project/sms-backend/internal/config"
	"github.com/sms-project/sms-backend/internal/model"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4,
	}
}

func TestPasswordHashRoundtrip(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), nil)

	hash, err := svc.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NoError(t, svc.CheckPassword(hash, "hunter22"))
	assert.ErrorIs(t, svc.CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}

func TestStaffTokenRoundtrip(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), nil)
	user := &model.User{ID: 7, Role: model.RoleTeacher, IsActive: true}

	hash, err := svc.HashPassword("teacher1")
	require.NoError(t, err)
	user.PasswordHash = hash

	// Staff tokens are stateless, so no Redis client is needed here.
	token, err := svc.Login(context.Background(), user, "teacher1")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, model.RoleTeacher, claims.Role)

	// Session validation is a no-op for staff tokens.
	assert.NoError(t, svc.ValidateSession(context.Background(), claims))
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), nil)
	hash, err := svc.HashPassword("pw1234")
	require.NoError(t, err)
	user := &model.User{ID: 3, Role: model.RoleTeacher, IsActive: false, PasswordHash: hash}

	_, err = svc.Login(context.Background(), user, "pw1234")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), nil)
	user := &model.User{ID: 7, Role: model.RoleAdmin, IsActive: true}
	hash, err := svc.HashPassword("admin123")
	require.NoError(t, err)
	user.PasswordHash = hash

	token, err := svc.Login(context.Background(), user, "admin123")
	require.NoError(t, err)

	other := NewAuthService(&config.Config{JWTSecret: "different", JWTExpiry: time.Hour, BcryptCost: 4}, nil)
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
