// Package api defines the HTTP request/response types shared by the transport layer.
package api

import "time"

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

// FieldError describes one failed field-level constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// TokenResponse is returned by registration and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "bearer"

// UserResponse is the public projection of a user.
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskResponse is the JSON form of a task.
type TaskResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     uint      `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskListResponse is one page of tasks.
// Total is the number of tasks in Data.
type TaskListResponse struct {
	Data  []TaskResponse `json:"data"`
	Limit int            `json:"limit"`
	Page  int            `json:"page"`
	Total int            `json:"total"`
}

// ListTodosParams are the query parameters of GET /todos.
type ListTodosParams struct {
	Limit  *int    `form:"limit,omitempty" json:"limit,omitempty"`
	Page   *int    `form:"page,omitempty" json:"page,omitempty"`
	Search *string `form:"search,omitempty" json:"search,omitempty"`
}
