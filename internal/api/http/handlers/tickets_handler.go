package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs the handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Usuario no autenticado")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Payload no válido")
	}

	ticket, err := h.service.Create(c.UserContext(), caller, service.TicketCreateInput{
		Subject:     req.Asunto,
		Description: req.Descripcion,
		Priority:    req.Prioridad,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Ticket creado exitosamente",
		"ticket":  dto.NewTicketResponse(ticket),
	})
}

// List GET /api/tickets with optional estado/prioridad/asignado filters.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Usuario no autenticado")
	}

	tickets, err := h.service.List(c.UserContext(), caller, parseTicketFilter(c))
	if err != nil {
		return err
	}
	items := dto.NewTicketResponses(tickets)
	return c.JSON(fiber.Map{
		"success":  true,
		"cantidad": len(items),
		"tickets":  items,
	})
}

// ListMine GET /api/tickets/mis-tickets.
func (h *TicketsHandler) ListMine(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Usuario no autenticado")
	}

	tickets, err := h.service.ListMine(c.UserContext(), caller)
	if err != nil {
		return err
	}
	items := dto.NewTicketResponses(tickets)
	return c.JSON(fiber.Map{
		"success":  true,
		"cantidad": len(items),
		"tickets":  items,
	})
}

// Get GET /api/tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Usuario no autenticado")
	}

	ticket, err := h.service.GetByID(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"ticket":  dto.NewTicketResponse(ticket),
	})
}

// Assign PUT /api/tickets/:id/asignar.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Usuario no autenticado")
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Payload no válido")
	}

	ticket, err := h.service.Assign(c.UserContext(), caller, c.Params("id"), req.AgenteID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Ticket asignado exitosamente",
		"ticket":  dto.NewTicketResponse(ticket),
	})
}

// ChangeState PUT /api/tickets/:id/estado.
func (h *TicketsHandler) ChangeState(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Usuario no autenticado")
	}
	var req dto.ChangeStateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Payload no válido")
	}

	ticket, err := h.service.ChangeState(c.UserContext(), caller, c.Params("id"), req.Estado)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Estado actualizado exitosamente",
		"ticket":  dto.NewTicketResponse(ticket),
	})
}

// Comment POST /api/tickets/:id/comentarios.
func (h *TicketsHandler) Comment(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Usuario no autenticado")
	}
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Payload no válido")
	}

	ticket, err := h.service.Comment(c.UserContext(), caller, c.Params("id"), req.Contenido)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Comentario agregado exitosamente",
		"ticket":  dto.NewTicketResponse(ticket),
	})
}

// Delete DELETE /api/tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Usuario no autenticado")
	}

	if err := h.service.Delete(c.UserContext(), caller, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Ticket eliminado exitosamente",
	})
}

func parseTicketFilter(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{}
	if estado := c.Query("estado"); estado != "" {
		state := domain.TicketState(estado)
		filter.State = &state
	}
	if prioridad := c.Query("prioridad"); prioridad != "" {
		priority := domain.TicketPriority(prioridad)
		filter.Priority = &priority
	}
	if asignado := c.Query("asignado"); asignado != "" {
		assignee := asignado
		filter.AssigneeID = &assignee
	}
	return filter
}
