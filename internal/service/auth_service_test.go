package service

import (
	"context"
	"testing"

	"screenstock/internal/config"
	"screenstock/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

func newAuthFixture(t *testing.T, password string) AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(&config.Config{
		JWTSecret:          testSecret,
		JWTExpirationHours: 8,
		AdminUsername:      "admin",
		AdminPasswordHash:  string(hash),
	})
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc := newAuthFixture(t, "hunter2")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, 8*3600, resp.ExpiresIn)

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "admin", claims["sub"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthFixture(t, "hunter2")
	ctx := context.Background()

	_, err := svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "root", Password: "hunter2"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsWhenNoHashConfigured(t *testing.T) {
	svc := NewAuthService(&config.Config{AdminUsername: "admin"})

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "anything"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
