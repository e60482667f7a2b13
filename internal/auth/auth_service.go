package auth

import (
	"context"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	autherrors "github.com/lorf543/payroll-sub000/internal/auth/errors"
	"github.com/lorf543/payroll-sub000/internal/authsession"
	"github.com/lorf543/payroll-sub000/internal/registry"
	"github.com/lorf543/payroll-sub000/internal/shared/apperror"
)

const sessionTTL = 12 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Logout(ctx context.Context, employeeID string) error
}

type service struct {
	repo     Repository
	presence *registry.Presence
	sessions authsession.Store
}

func NewService(repo Repository, presence *registry.Presence, sessions authsession.Store) Service {
	return &service{repo: repo, presence: presence, sessions: sessions}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	cred, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}
	if !cred.IsActive {
		return LoginResponse{}, autherrors.ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.Password), []byte(req.Password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	sessionID, err := s.sessions.Create(ctx, cred.EmployeeID, sessionTTL)
	if err != nil {
		return LoginResponse{}, err
	}

	// Presence is the single source of truth for is_logged_in; logout
	// and the auto-logout sweep flip it through the same transition.
	if err := s.presence.Transition(ctx, cred.EmployeeID, true, "login"); err != nil {
		return LoginResponse{}, err
	}

	token, err := generateToken(cred.EmployeeID.String(), cred.Role, sessionTTL)
	if err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{
		AccessToken: token,
		SessionID:   sessionID,
		EmployeeID:  cred.EmployeeID.String(),
		Role:        cred.Role,
	}, nil
}

func (s *service) Logout(ctx context.Context, employeeID string) error {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return apperror.ErrInvalidInput
	}

	if err := s.presence.Transition(ctx, empID, false, "logout"); err != nil {
		return err
	}
	_, err = s.sessions.DeleteForEmployee(ctx, empID)
	return err
}

func generateToken(employeeID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": employeeID,
		"role":        role,
		"exp":         time.Now().Add(ttl).Unix(),
		"iat":         time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
