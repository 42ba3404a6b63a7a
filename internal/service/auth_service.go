package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/roundonehq/r1-interview-api/internal/dto"
	"github.com/roundonehq/r1-interview-api/internal/repository"
)

// ErrInvalidCredentials indicates the login attempt did not match any account.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Roles carried in JWT claims.
const (
	RoleCandidate = "candidate"
	RoleAdmin     = "admin"
)

// AuthService authenticates candidates and admins and issues bearer tokens.
type AuthService interface {
	CandidateLogin(ctx context.Context, payload dto.CandidateLoginRequest) (dto.LoginResponse, error)
	AdminLogin(ctx context.Context, payload dto.AdminLoginRequest) (dto.LoginResponse, error)
	TokenLogin(ctx context.Context, payload dto.TokenLoginRequest) (dto.LoginResponse, error)
}

type authService struct {
	candidates repository.CandidateRepository
	admins     repository.AdminRepository
	jwtSecret  string
	tokenTTL   time.Duration
	validator  *validator.Validate
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAuthService constructs the authentication service.
func NewAuthService(candidates repository.CandidateRepository, admins repository.AdminRepository, jwtSecret string, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		candidates: candidates,
		admins:     admins,
		jwtSecret:  jwtSecret,
		tokenTTL:   4 * time.Hour,
		validator:  validate,
		logger:     logger.With().Str("component", "auth_service").Logger(),
		now:        time.Now,
	}
}

// HashPassword produces the stored form of a password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (s *authService) CandidateLogin(ctx context.Context, payload dto.CandidateLoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	candidate, err := s.candidates.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if candidate.PasswordHash != HashPassword(payload.Password) {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(candidate.CandidateID, RoleCandidate)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{
		AccessToken: token,
		Role:        RoleCandidate,
		CandidateID: candidate.CandidateID,
		Name:        candidate.Name,
	}, nil
}

func (s *authService) AdminLogin(ctx context.Context, payload dto.AdminLoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	admin, err := s.admins.GetByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if admin.PasswordHash != HashPassword(payload.Password) {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(admin.Username, RoleAdmin)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{
		AccessToken: token,
		Role:        RoleAdmin,
		Name:        admin.Username,
	}, nil
}

// TokenLogin exchanges the magic-link token from the invite email for a
// session, so candidates can start without typing credentials.
func (s *authService) TokenLogin(ctx context.Context, payload dto.TokenLoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	candidate, err := s.candidates.GetByToken(ctx, payload.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	token, err := s.issueToken(candidate.CandidateID, RoleCandidate)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{
		AccessToken: token,
		Role:        RoleCandidate,
		CandidateID: candidate.CandidateID,
		Name:        candidate.Name,
	}, nil
}

func (s *authService) issueToken(subject string, role string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signed, nil
}
