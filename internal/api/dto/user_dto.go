package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateUserRequest payload for admin account creation.
type CreateUserRequest struct {
	Nombre   string      `json:"nombre"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Rol      domain.Role `json:"rol"`
}

// UpdateUserRequest payload; nil fields are left untouched. The password is
// not updatable through this path.
type UpdateUserRequest struct {
	Nombre *string      `json:"nombre"`
	Email  *string      `json:"email"`
	Rol    *domain.Role `json:"rol"`
	Activo *bool        `json:"activo"`
}

// UserResponse is the account representation. The password credential never
// appears in any response payload.
type UserResponse struct {
	ID           string      `json:"id"`
	Nombre       string      `json:"nombre"`
	Email        string      `json:"email"`
	Rol          domain.Role `json:"rol"`
	Activo       bool        `json:"activo"`
	UltimoAcceso *time.Time  `json:"ultimoAcceso"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// NewUserResponse maps a domain user to its wire form.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Nombre:       user.Name,
		Email:        user.Email,
		Rol:          user.Role,
		Activo:       user.Active,
		UltimoAcceso: user.LastAccessAt,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// NewUserResponses maps a slice of users.
func NewUserResponses(users []domain.User) []UserResponse {
	items := make([]UserResponse, 0, len(users))
	for i := range users {
		items = append(items, NewUserResponse(&users[i]))
	}
	return items
}
