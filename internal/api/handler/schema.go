package handler

import "github.com/fmcg-app/catalog-api/internal/core/domain"

// messageResponse is the envelope for errors and for plain confirmations.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// --- Users ---

type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1"`
	Role     *string `json:"role"     validate:"omitempty,oneof=admin user"`
}

// --- Products ---

// productRequest is used for both create and full update. Price is a pointer
// so that a missing price is told apart from a price of 0.
type productRequest struct {
	Name     string   `json:"name"     validate:"required"`
	Category string   `json:"category" validate:"required"`
	Price    *float64 `json:"price"    validate:"required,gte=0"`
}
