package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymdesk_backend/internal/auth"
	"gymdesk_backend/internal/dto"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/pkg/apperrors"
)

func TestLoginRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.CreateUser(&dto.CreateUserRequest{
		Name:     "Reception One",
		Email:    "desk@gym.local",
		Password: "front-desk-1",
		Role:     "receptionist",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleReceptionist, user.Role)

	resp, err := env.auth.Login(&dto.LoginRequest{
		Email:    "desk@gym.local",
		Password: "front-desk-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "receptionist", resp.User.Role)

	claims, err := auth.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.UserRoleReceptionist, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.CreateUser(&dto.CreateUserRequest{
		Name:     "Reception One",
		Email:    "desk@gym.local",
		Password: "front-desk-1",
		Role:     "receptionist",
	})
	require.NoError(t, err)

	_, err = env.auth.Login(&dto.LoginRequest{Email: "desk@gym.local", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthorized, requireAppError(t, err).Code)

	// Unknown email gets the same error shape as a bad password.
	_, err = env.auth.Login(&dto.LoginRequest{Email: "nobody@gym.local", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthorized, requireAppError(t, err).Code)
}

func TestDuplicateUserEmailRejected(t *testing.T) {
	env := newTestEnv(t)

	req := &dto.CreateUserRequest{
		Name:     "Reception One",
		Email:    "desk@gym.local",
		Password: "front-desk-1",
		Role:     "receptionist",
	}
	_, err := env.auth.CreateUser(req)
	require.NoError(t, err)

	_, err = env.auth.CreateUser(req)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, requireAppError(t, err).Code)
}
