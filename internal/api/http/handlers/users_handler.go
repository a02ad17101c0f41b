package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// UsersHandler manages the admin account-management endpoints and the agent
// listing used by assignment pickers.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// List GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := dto.NewUserResponses(users)
	return c.JSON(fiber.Map{
		"success":  true,
		"cantidad": len(items),
		"usuarios": items,
	})
}

// Get GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"usuario": dto.NewUserResponse(user),
	})
}

// Create POST /api/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Payload no válido")
	}

	user, err := h.service.Create(c.UserContext(), req.Nombre, req.Email, req.Password, req.Rol)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Usuario creado exitosamente",
		"usuario": dto.NewUserResponse(user),
	})
}

// Update PUT /api/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Payload no válido")
	}

	user, err := h.service.Update(c.UserContext(), c.Params("id"), service.UserUpdateInput{
		Name:   req.Nombre,
		Email:  req.Email,
		Role:   req.Rol,
		Active: req.Activo,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Usuario actualizado exitosamente",
		"usuario": dto.NewUserResponse(user),
	})
}

// Delete DELETE /api/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Usuario no autenticado")
	}

	if err := h.service.Delete(c.UserContext(), caller.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Usuario eliminado exitosamente",
	})
}

// ListAgents GET /api/users/agentes.
func (h *UsersHandler) ListAgents(c *fiber.Ctx) error {
	agents, err := h.service.ListAgents(c.UserContext())
	if err != nil {
		return err
	}
	items := dto.NewUserResponses(agents)
	return c.JSON(fiber.Map{
		"success":  true,
		"cantidad": len(items),
		"agentes":  items,
	})
}
