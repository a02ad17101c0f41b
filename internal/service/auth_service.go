package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const (
	nameMinLen     = 2
	nameMaxLen     = 50
	passwordMinLen = 6
)

// AuthService coordinates registration, login and self-service profile flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account. The role is always forced to end-user,
// regardless of anything the caller supplied.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, time.Time, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if err := validateAccountFields(name, email, password); err != nil {
		return nil, "", time.Time{}, err
	}
	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUsuario,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates an account. Unknown email, inactive account and wrong
// password all fail with the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("Por favor proporcione email y contraseña")
	}

	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if !user.Active {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	now := time.Now()
	user.LastAccessAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// UpdateProfile changes the caller's own name and/or email. Empty fields are
// left untouched.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, name, email string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		if utf8.RuneCountInString(name) < nameMinLen || utf8.RuneCountInString(name) > nameMaxLen {
			return nil, apperrors.NewValidationError("El nombre debe tener entre 2 y 50 caracteres")
		}
		user.Name = name
	}
	if email = strings.TrimSpace(email); email != "" {
		if !emailPattern.MatchString(email) {
			return nil, apperrors.NewValidationError("Por favor ingrese un email válido")
		}
		if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
			return nil, err
		}
		user.Email = email
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before storing the new hash,
// then issues a fresh session token.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (*domain.User, string, time.Time, error) {
	if currentPassword == "" || newPassword == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("Por favor proporcione la contraseña actual y la nueva")
	}
	if utf8.RuneCountInString(newPassword) < passwordMinLen {
		return nil, "", time.Time{}, apperrors.NewValidationError("La contraseña debe tener al menos 6 caracteres")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		if existing.ID != selfID {
			return apperrors.NewDuplicateEmail()
		}
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}

func validateAccountFields(name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return apperrors.NewValidationError("Por favor proporcione todos los campos requeridos")
	}
	if utf8.RuneCountInString(name) < nameMinLen || utf8.RuneCountInString(name) > nameMaxLen {
		return apperrors.NewValidationError("El nombre debe tener entre 2 y 50 caracteres")
	}
	if !emailPattern.MatchString(email) {
		return apperrors.NewValidationError("Por favor ingrese un email válido")
	}
	if utf8.RuneCountInString(password) < passwordMinLen {
		return apperrors.NewValidationError("La contraseña debe tener al menos 6 caracteres")
	}
	return nil
}
