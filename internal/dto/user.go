package dto

import "time"

type CreateUserRequest struct {
	ID         string `json:"id" binding:"omitempty,max=64"` // optional; server assigns a UUID when empty
	Name       string `json:"name" binding:"required,min=1,max=120"`
	Email      string `json:"email" binding:"required,email,max=254"`
	Age        int    `json:"age" binding:"required"`
	Occupation string `json:"occupation" binding:"required,min=1,max=120"`
}

// UpdateUserRequest carries a partial update: nil = leave unchanged.
type UpdateUserRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=120"`
	Email      *string `json:"email" binding:"omitempty,email,max=254"`
	Age        *int    `json:"age"`
	Occupation *string `json:"occupation" binding:"omitempty,min=1,max=120"`
}

type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Age        int       `json:"age"`
	Occupation string    `json:"occupation"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
