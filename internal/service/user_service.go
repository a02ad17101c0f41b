package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// UserService implements the admin-only account management operations plus
// agent listing. Route-level policy gates admit only the permitted roles;
// the self-deletion rule needs the acting admin and lives here.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, users repository.UserRepository) *UserService {
	return &UserService{users: users, bcryptCost: cfg.Auth.BcryptCost}
}

// UserUpdateInput carries the admin-updatable fields. Nil fields are left
// untouched. Password is deliberately not updatable through this path.
type UserUpdateInput struct {
	Name   *string
	Email  *string
	Role   *domain.Role
	Active *bool
}

// List returns all accounts, newest first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// GetByID returns one account.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Usuario")
		}
		return nil, err
	}
	return user, nil
}

// Create registers an account on behalf of an admin. Unlike self-service
// registration the role is assignable; it defaults to end-user.
func (s *UserService) Create(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if err := validateAccountFields(name, email, password); err != nil {
		return nil, err
	}
	if role == "" {
		role = domain.RoleUsuario
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("Rol no válido")
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewDuplicateEmail()
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies the whitelisted partial fields to an account.
func (s *UserService) Update(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if utf8.RuneCountInString(name) < nameMinLen || utf8.RuneCountInString(name) > nameMaxLen {
			return nil, apperrors.NewValidationError("El nombre debe tener entre 2 y 50 caracteres")
		}
		user.Name = name
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if !emailPattern.MatchString(email) {
			return nil, apperrors.NewValidationError("Por favor ingrese un email válido")
		}
		if existing, err := s.users.GetByEmail(ctx, email); err == nil {
			if existing.ID != user.ID {
				return nil, apperrors.NewDuplicateEmail()
			}
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		user.Email = email
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperrors.NewValidationError("Rol no válido")
		}
		user.Role = *input.Role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account permanently. Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actorID, id string) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.ID == actorID {
		return apperrors.NewValidationError("No puede eliminar su propia cuenta")
	}
	return s.users.Delete(ctx, user.ID)
}

// ListAgents returns active accounts holding agent or admin roles, for
// assignment pickers.
func (s *UserService) ListAgents(ctx context.Context) ([]domain.User, error) {
	return s.users.ListAgents(ctx)
}
