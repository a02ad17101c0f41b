package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func TestRegisterForcesEndUserRole(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(testConfig(), repo)

	user, token, _, err := svc.Register(context.Background(), "Ana García", "ana@example.com", "secreta1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, domain.RoleUsuario, user.Role)
	require.True(t, user.Active)
	require.NotEqual(t, "secreta1", user.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(testConfig(), newMemUserRepo())
	ctx := context.Background()

	cases := []struct {
		name     string
		userName string
		email    string
		password string
		message  string
	}{
		{"missing fields", "", "ana@example.com", "secreta1", "Por favor proporcione todos los campos requeridos"},
		{"name too short", "A", "ana@example.com", "secreta1", "El nombre debe tener entre 2 y 50 caracteres"},
		{"bad email", "Ana", "no-es-email", "secreta1", "Por favor ingrese un email válido"},
		{"short password", "Ana", "ana@example.com", "corta", "La contraseña debe tener al menos 6 caracteres"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := svc.Register(ctx, tc.userName, tc.email, tc.password)
			require.Error(t, err)
			domainErr := apperrors.ToDomainError(err)
			require.Equal(t, 400, domainErr.HTTPStatus)
			require.Equal(t, tc.message, domainErr.Message)
		})
	}
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(testConfig(), repo)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Ana", "Ana@Example.com", "secreta1")
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "Otra Ana", "ana@example.com", "secreta2")
	require.Error(t, err)
	require.Equal(t, "El email ya está registrado", apperrors.ToDomainError(err).Message)
}

func TestLoginIndistinguishableFailures(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(testConfig(), repo)
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)

	// deactivate the account
	user.Active = false
	require.NoError(t, repo.Update(ctx, user))

	for name, attempt := range map[string][2]string{
		"unknown email":    {"nadie@example.com", "secreta1"},
		"wrong password":   {"ana@example.com", "incorrecta"},
		"inactive account": {"ana@example.com", "secreta1"},
	} {
		t.Run(name, func(t *testing.T) {
			_, _, _, err := svc.Login(ctx, attempt[0], attempt[1])
			require.Error(t, err)
			domainErr := apperrors.ToDomainError(err)
			require.Equal(t, 401, domainErr.HTTPStatus)
			require.Equal(t, "Credenciales inválidas", domainErr.Message)
		})
	}
}

func TestLoginRecordsLastAccess(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(testConfig(), repo)
	ctx := context.Background()

	registered, _, _, err := svc.Register(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)
	require.Nil(t, registered.LastAccessAt)

	logged, token, _, err := svc.Login(ctx, "ana@example.com", "secreta1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotNil(t, logged.LastAccessAt)

	stored, err := repo.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastAccessAt)
}

func TestUpdateProfilePartialFields(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(testConfig(), repo)
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID, "Ana María", "")
	require.NoError(t, err)
	require.Equal(t, "Ana María", updated.Name)
	require.Equal(t, "ana@example.com", updated.Email)

	// keeping your own email is not a duplicate
	updated, err = svc.UpdateProfile(ctx, user.ID, "", "ana@example.com")
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", updated.Email)
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(testConfig(), repo)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)
	other, _, _, err := svc.Register(ctx, "Luis", "luis@example.com", "secreta1")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, other.ID, "", "ana@example.com")
	require.Error(t, err)
	require.Equal(t, "El email ya está registrado", apperrors.ToDomainError(err).Message)
}

func TestChangePassword(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(testConfig(), repo)
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)

	_, _, _, err = svc.ChangePassword(ctx, user.ID, "incorrecta", "nueva-clave")
	require.Error(t, err)
	require.Equal(t, 401, apperrors.ToDomainError(err).HTTPStatus)

	_, _, _, err = svc.ChangePassword(ctx, user.ID, "secreta1", "corta")
	require.Error(t, err)
	require.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)

	_, token, _, err := svc.ChangePassword(ctx, user.ID, "secreta1", "nueva-clave")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, _, _, err = svc.Login(ctx, "ana@example.com", "secreta1")
	require.Error(t, err)
	_, _, _, err = svc.Login(ctx, "ana@example.com", "nueva-clave")
	require.NoError(t, err)
}
