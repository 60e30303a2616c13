// Package entity defines the domain entities for the todos feature.
package entity

import "time"

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          uint
	Title       string
	Description string
	// OwnerID is always the acting user's id; clients never supply it.
	OwnerID   uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether the task belongs to the given user.
func (t *Task) OwnedBy(userID uint) bool {
	return t.OwnerID == userID
}
