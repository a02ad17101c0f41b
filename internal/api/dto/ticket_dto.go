package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Asunto      string                `json:"asunto"`
	Descripcion string                `json:"descripcion"`
	Prioridad   domain.TicketPriority `json:"prioridad"`
}

// AssignTicketRequest payload. An empty agenteId self-assigns.
type AssignTicketRequest struct {
	AgenteID string `json:"agenteId"`
}

// ChangeStateRequest payload.
type ChangeStateRequest struct {
	Estado domain.TicketState `json:"estado"`
}

// CommentRequest payload.
type CommentRequest struct {
	Contenido string `json:"contenido"`
}

// TicketResponse is the full ticket representation. Creator and assignee are
// opaque account identifiers.
type TicketResponse struct {
	ID          string                `json:"id"`
	Asunto      string                `json:"asunto"`
	Descripcion string                `json:"descripcion"`
	Prioridad   domain.TicketPriority `json:"prioridad"`
	Estado      domain.TicketState    `json:"estado"`
	Creador     string                `json:"creador"`
	Asignado    *string               `json:"asignado"`
	Comentarios []domain.Comment      `json:"comentarios"`
	Historial   []domain.StateChange  `json:"historialEstados"`
	FechaCierre *time.Time            `json:"fechaCierre"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// NewTicketResponse maps a domain ticket to its wire form.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	comments := ticket.Comments
	if comments == nil {
		comments = []domain.Comment{}
	}
	history := ticket.History
	if history == nil {
		history = []domain.StateChange{}
	}
	return TicketResponse{
		ID:          ticket.ID,
		Asunto:      ticket.Subject,
		Descripcion: ticket.Description,
		Prioridad:   ticket.Priority,
		Estado:      ticket.State,
		Creador:     ticket.CreatorID,
		Asignado:    ticket.AssigneeID,
		Comentarios: comments,
		Historial:   history,
		FechaCierre: ticket.ClosedAt,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}

// NewTicketResponses maps a slice of tickets.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	items := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, NewTicketResponse(&tickets[i]))
	}
	return items
}
