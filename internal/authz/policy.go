package authz

import "github.com/spec-kit/helpdesk-service/internal/domain"

// Action names an authorization decision point. Every handler and service
// asks this package instead of branching on role strings inline.
type Action string

const (
	ActionViewAllTickets    Action = "view_all_tickets"
	ActionViewOwnTickets    Action = "view_own_tickets"
	ActionViewTicket        Action = "view_ticket"
	ActionCreateTicket      Action = "create_ticket"
	ActionAssignTicket      Action = "assign_ticket"
	ActionChangeTicketState Action = "change_ticket_state"
	ActionCommentTicket     Action = "comment_ticket"
	ActionDeleteTicket      Action = "delete_ticket"
	ActionManageUsers       Action = "manage_users"
	ActionListAgents        Action = "list_agents"
)

// CanPerform is the single access-control policy table. The ticket argument
// is consulted only for per-resource actions and may be nil otherwise.
// Unknown combinations are denied.
func CanPerform(role domain.Role, actorID string, action Action, ticket *domain.Ticket) bool {
	switch action {
	case ActionViewAllTickets, ActionAssignTicket, ActionChangeTicketState, ActionListAgents:
		return role.IsStaff()
	case ActionViewOwnTickets, ActionCreateTicket:
		return role.Valid()
	case ActionViewTicket:
		if ticket == nil {
			return false
		}
		return role.IsStaff() || ticket.CreatorID == actorID
	case ActionCommentTicket:
		if ticket == nil {
			return false
		}
		if role.IsStaff() || ticket.CreatorID == actorID {
			return true
		}
		return ticket.AssigneeID != nil && *ticket.AssigneeID == actorID
	case ActionDeleteTicket, ActionManageUsers:
		return role == domain.RoleAdmin
	}
	return false
}
