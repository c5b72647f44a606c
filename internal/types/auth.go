//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// User represents a user profile for API responses (avoids import cycle with db package).
type User struct {
	ID        int64     `json:"id"`
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertUserResponse is returned after the authenticated identity is stored.
type UpsertUserResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}
