package domain

import "time"

// TicketState enumerates lifecycle states. Values are part of the wire contract.
type TicketState string

const (
	TicketStateAbierto    TicketState = "abierto"
	TicketStateEnProgreso TicketState = "en_progreso"
	TicketStateResuelto   TicketState = "resuelto"
	TicketStateCerrado    TicketState = "cerrado"
)

// Valid reports whether the state is one of the four known values.
func (s TicketState) Valid() bool {
	switch s {
	case TicketStateAbierto, TicketStateEnProgreso, TicketStateResuelto, TicketStateCerrado:
		return true
	}
	return false
}

// TicketPriority enumerates urgency levels. Values are part of the wire contract.
type TicketPriority string

const (
	TicketPriorityBaja  TicketPriority = "baja"
	TicketPriorityMedia TicketPriority = "media"
	TicketPriorityAlta  TicketPriority = "alta"
)

// Valid reports whether the priority is one of the three known values.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityBaja, TicketPriorityMedia, TicketPriorityAlta:
		return true
	}
	return false
}

// Field length limits enforced on ticket input.
const (
	SubjectMinLen     = 5
	SubjectMaxLen     = 100
	DescriptionMinLen = 10
	DescriptionMaxLen = 1000
	CommentMaxLen     = 500
)

// Comment is an append-only entry in a ticket's conversation thread.
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"autor"`
	Content   string    `json:"contenido"`
	CreatedAt time.Time `json:"fecha"`
}

// StateChange is an append-only audit record of a state transition.
type StateChange struct {
	State     TicketState `json:"estado"`
	ActorID   string      `json:"cambiadoPor"`
	CreatedAt time.Time   `json:"fecha"`
}

// Ticket is the aggregate for support requests. Comments and History are
// embedded and persisted together with the ticket in a single row, so each
// mutation is one atomic write.
type Ticket struct {
	ID          string
	Subject     string
	Description string
	Priority    TicketPriority
	State       TicketState
	CreatorID   string
	AssigneeID  *string
	Comments    []Comment
	History     []StateChange
	ClosedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
