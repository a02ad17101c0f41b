package dto

// RegisterRequest payload. Any role field a caller sneaks in is ignored.
type RegisterRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest payload; empty fields are left untouched.
type UpdateProfileRequest struct {
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
}

// ChangePasswordRequest payload for authenticated password changes.
type ChangePasswordRequest struct {
	PasswordActual string `json:"passwordActual"`
	PasswordNuevo  string `json:"passwordNuevo"`
}
