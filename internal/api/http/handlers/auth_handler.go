package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AuthHandler manages registration, login and self-service profile endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Register POST /api/auth/registro.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Payload no válido")
	}

	user, token, _, err := h.service.Register(c.UserContext(), req.Nombre, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Usuario registrado exitosamente",
		"token":   token,
		"usuario": dto.NewUserResponse(user),
	})
}

// Login POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Payload no válido")
	}

	user, token, _, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Inicio de sesión exitoso",
		"token":   token,
		"usuario": dto.NewUserResponse(user),
	})
}

// Me GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Usuario no autenticado")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"usuario": dto.NewUserResponse(caller),
	})
}

// UpdateProfile PUT /api/auth/actualizar-perfil.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Usuario no autenticado")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Payload no válido")
	}

	user, err := h.service.UpdateProfile(c.UserContext(), caller.ID, req.Nombre, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Perfil actualizado correctamente",
		"usuario": dto.NewUserResponse(user),
	})
}

// ChangePassword PUT /api/auth/cambiar-password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Usuario no autenticado")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Payload no válido")
	}

	user, token, _, err := h.service.ChangePassword(c.UserContext(), caller.ID, req.PasswordActual, req.PasswordNuevo)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Contraseña actualizada exitosamente",
		"token":   token,
		"usuario": dto.NewUserResponse(user),
	})
}
