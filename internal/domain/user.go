package domain

import "time"

// User is the domain model for account holders. A user owns at most one
// driving license.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
