package dto

// RegisterRequest is the payload for account registration
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the payload for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned after successful registration or login
type AuthResponse struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}
