package authz

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestCanPerform(t *testing.T) {
	creatorTicket := &domain.Ticket{CreatorID: "creator-1"}
	assignedTicket := &domain.Ticket{CreatorID: "creator-1", AssigneeID: strPtr("agent-1")}

	tests := []struct {
		name    string
		role    domain.Role
		actorID string
		action  Action
		ticket  *domain.Ticket
		want    bool
	}{
		{"end user cannot view all tickets", domain.RoleUsuario, "u1", ActionViewAllTickets, nil, false},
		{"agent can view all tickets", domain.RoleAgente, "a1", ActionViewAllTickets, nil, true},
		{"admin can view all tickets", domain.RoleAdmin, "ad1", ActionViewAllTickets, nil, true},

		{"end user can view own tickets", domain.RoleUsuario, "u1", ActionViewOwnTickets, nil, true},
		{"end user can create tickets", domain.RoleUsuario, "u1", ActionCreateTicket, nil, true},
		{"admin can create tickets", domain.RoleAdmin, "ad1", ActionCreateTicket, nil, true},
		{"unknown role can do nothing", domain.Role("superuser"), "x", ActionCreateTicket, nil, false},

		{"creator can view their ticket", domain.RoleUsuario, "creator-1", ActionViewTicket, creatorTicket, true},
		{"stranger cannot view the ticket", domain.RoleUsuario, "u2", ActionViewTicket, creatorTicket, false},
		{"agent can view any ticket", domain.RoleAgente, "a1", ActionViewTicket, creatorTicket, true},
		{"view without ticket context denied", domain.RoleAdmin, "ad1", ActionViewTicket, nil, false},

		{"end user cannot assign", domain.RoleUsuario, "u1", ActionAssignTicket, nil, false},
		{"agent can assign", domain.RoleAgente, "a1", ActionAssignTicket, nil, true},
		{"agent can change state", domain.RoleAgente, "a1", ActionChangeTicketState, nil, true},
		{"end user cannot change state", domain.RoleUsuario, "u1", ActionChangeTicketState, nil, false},

		{"creator can comment", domain.RoleUsuario, "creator-1", ActionCommentTicket, assignedTicket, true},
		{"assignee can comment", domain.RoleAgente, "agent-1", ActionCommentTicket, assignedTicket, true},
		{"stranger cannot comment", domain.RoleUsuario, "u2", ActionCommentTicket, assignedTicket, false},
		{"comment without ticket context denied", domain.RoleUsuario, "u1", ActionCommentTicket, nil, false},

		{"agent cannot delete tickets", domain.RoleAgente, "a1", ActionDeleteTicket, nil, false},
		{"admin can delete tickets", domain.RoleAdmin, "ad1", ActionDeleteTicket, nil, true},
		{"agent cannot manage users", domain.RoleAgente, "a1", ActionManageUsers, nil, false},
		{"admin can manage users", domain.RoleAdmin, "ad1", ActionManageUsers, nil, true},
		{"agent can list agents", domain.RoleAgente, "a1", ActionListAgents, nil, true},
		{"end user cannot list agents", domain.RoleUsuario, "u1", ActionListAgents, nil, false},

		{"unknown action denied", domain.RoleAdmin, "ad1", Action("format_disk"), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CanPerform(tt.role, tt.actorID, tt.action, tt.ticket))
		})
	}
}
