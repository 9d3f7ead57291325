package service

import (
	"context"
	"errors"
	"time"

	"screenstock/internal/config"
	"screenstock/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on any login failure. Handlers map it to
// 401 without distinguishing a bad username from a bad password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates the single admin credential configured through
// the environment and issues short-lived JWTs.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.cfg.AdminPasswordHash == "" || req.Username != s.cfg.AdminUsername {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expires := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	claims := jwt.MapClaims{
		"sub": req.Username,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(expires).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: signed,
		ExpiresIn:   int(expires.Seconds()),
	}, nil
}
