package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/authz"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketService coordinates ticket workflows. Every operation loads the
// aggregate, mutates it in memory and issues one persist call; authorization
// goes through the authz policy table.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, users repository.UserRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{tickets: tickets, users: users, dispatcher: dispatcher}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Subject     string
	Description string
	Priority    domain.TicketPriority
}

// TicketListFilter describes listing filters. End-user callers have the
// filters ignored and see only their own tickets.
type TicketListFilter struct {
	State      *domain.TicketState
	Priority   *domain.TicketPriority
	AssigneeID *string
}

// Create validates field lengths and persists a new open ticket with empty
// comment and history sequences.
func (s *TicketService) Create(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	if !authz.CanPerform(actor.Role, actor.ID, authz.ActionCreateTicket, nil) {
		return nil, apperrors.NewForbidden("No tiene permisos para crear tickets")
	}

	subject := strings.TrimSpace(input.Subject)
	description := strings.TrimSpace(input.Description)
	if subject == "" || description == "" {
		return nil, apperrors.NewValidationError("Asunto y descripción son obligatorios")
	}
	if n := utf8.RuneCountInString(subject); n < domain.SubjectMinLen || n > domain.SubjectMaxLen {
		return nil, apperrors.NewValidationError("El asunto debe tener entre 5 y 100 caracteres")
	}
	if n := utf8.RuneCountInString(description); n < domain.DescriptionMinLen || n > domain.DescriptionMaxLen {
		return nil, apperrors.NewValidationError("La descripción debe tener entre 10 y 1000 caracteres")
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedia
	}
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("Prioridad no válida")
	}

	ticket := &domain.Ticket{
		Subject:     subject,
		Description: description,
		Priority:    priority,
		State:       domain.TicketStateAbierto,
		CreatorID:   actor.ID,
		Comments:    []domain.Comment{},
		History:     []domain.StateChange{},
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    events.Actor{ID: actor.ID, Role: actor.Role},
		Payload: events.TicketCreatedPayload{
			Subject:  ticket.Subject,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// List returns tickets visible to the actor, newest-created first. Staff see
// everything the filters match; end-users see only their own tickets and any
// supplied filters are ignored.
func (s *TicketService) List(ctx context.Context, actor *domain.User, filter TicketListFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{}
	if authz.CanPerform(actor.Role, actor.ID, authz.ActionViewAllTickets, nil) {
		repoFilter.State = filter.State
		repoFilter.Priority = filter.Priority
		repoFilter.AssigneeID = filter.AssigneeID
	} else {
		creatorID := actor.ID
		repoFilter.CreatorID = &creatorID
	}
	return s.tickets.ListWithFilter(ctx, repoFilter)
}

// ListMine returns tickets created by the actor, newest-created first.
func (s *TicketService) ListMine(ctx context.Context, actor *domain.User) ([]domain.Ticket, error) {
	creatorID := actor.ID
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{CreatorID: &creatorID})
}

// GetByID fetches one ticket, enforcing the view policy.
func (s *TicketService) GetByID(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.fetch(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !authz.CanPerform(actor.Role, actor.ID, authz.ActionViewTicket, ticket) {
		return nil, apperrors.NewForbidden("No tiene permisos para ver este ticket")
	}
	return ticket, nil
}

// Assign sets the assignee. An empty assigneeID assigns the ticket to the
// actor. If the ticket is still open it moves to en_progreso and the implicit
// transition is recorded in the history, attributed to the actor.
func (s *TicketService) Assign(ctx context.Context, actor *domain.User, ticketID, assigneeID string) (*domain.Ticket, error) {
	if !authz.CanPerform(actor.Role, actor.ID, authz.ActionAssignTicket, nil) {
		return nil, apperrors.NewForbidden("No tiene permisos para asignar tickets")
	}
	if assigneeID == "" {
		assigneeID = actor.ID
	}
	if _, err := s.users.GetByID(ctx, assigneeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("El agente indicado no existe")
		}
		return nil, err
	}

	ticket, err := s.fetch(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	ticket.AssigneeID = &assigneeID
	if ticket.State == domain.TicketStateAbierto {
		ticket.State = domain.TicketStateEnProgreso
		ticket.History = append(ticket.History, domain.StateChange{
			State:     domain.TicketStateEnProgreso,
			ActorID:   actor.ID,
			CreatedAt: time.Now(),
		})
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Actor:    events.Actor{ID: actor.ID, Role: actor.Role},
		Payload:  events.TicketAssignedPayload{AssigneeID: assigneeID},
	})
	return ticket, nil
}

// ChangeState transitions the ticket to newState and appends a history
// record. Transitions between any two of the four states are permitted,
// including reopening a closed ticket. Entering cerrado stamps closed-at;
// nothing ever clears it.
func (s *TicketService) ChangeState(ctx context.Context, actor *domain.User, ticketID string, newState domain.TicketState) (*domain.Ticket, error) {
	if !authz.CanPerform(actor.Role, actor.ID, authz.ActionChangeTicketState, nil) {
		return nil, apperrors.NewForbidden("No tiene permisos para cambiar el estado")
	}
	if !newState.Valid() {
		return nil, apperrors.NewValidationError("Estado no válido")
	}

	ticket, err := s.fetch(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	oldState := ticket.State
	ticket.State = newState
	ticket.History = append(ticket.History, domain.StateChange{
		State:     newState,
		ActorID:   actor.ID,
		CreatedAt: time.Now(),
	})
	if newState == domain.TicketStateCerrado {
		now := time.Now()
		ticket.ClosedAt = &now
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStateChanged,
		TicketID: ticket.ID,
		Actor:    events.Actor{ID: actor.ID, Role: actor.Role},
		Payload: events.TicketStateChangedPayload{
			OldState: oldState,
			NewState: newState,
		},
	})
	return ticket, nil
}

// Comment appends a comment. Allowed for staff, the ticket's creator and its
// current assignee, evaluated against the freshly fetched ticket.
func (s *TicketService) Comment(ctx context.Context, actor *domain.User, ticketID, content string) (*domain.Ticket, error) {
	ticket, err := s.fetch(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !authz.CanPerform(actor.Role, actor.ID, authz.ActionCommentTicket, ticket) {
		return nil, apperrors.NewForbidden("No tiene permisos para comentar en este ticket")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("El contenido del comentario es obligatorio")
	}
	if utf8.RuneCountInString(content) > domain.CommentMaxLen {
		return nil, apperrors.NewValidationError("El comentario no puede exceder 500 caracteres")
	}

	comment := domain.Comment{
		ID:        uuid.NewString(),
		AuthorID:  actor.ID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	ticket.Comments = append(ticket.Comments, comment)
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCommented,
		TicketID: ticket.ID,
		Actor:    events.Actor{ID: actor.ID, Role: actor.Role},
		Payload: events.TicketCommentedPayload{
			CommentID: comment.ID,
			AuthorID:  actor.ID,
		},
	})
	return ticket, nil
}

// Delete removes the ticket irreversibly. Admin only.
func (s *TicketService) Delete(ctx context.Context, actor *domain.User, ticketID string) error {
	if !authz.CanPerform(actor.Role, actor.ID, authz.ActionDeleteTicket, nil) {
		return apperrors.NewForbidden("Acceso denegado - Se requieren permisos de administrador")
	}
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Ticket")
		}
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticketID,
		Actor:    events.Actor{ID: actor.ID, Role: actor.Role},
	})
	return nil
}

func (s *TicketService) fetch(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Ticket")
		}
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
