// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq represents the request body for POST /users/register.
// It uses Gin's binding tags for validation (email format, length limits).
type RegisterReq struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Email    string  `json:"email" binding:"required,email,max=255"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
}
