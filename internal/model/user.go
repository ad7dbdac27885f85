package model

import "time"

// User is an account that can make bookings.  Only the bcrypt hash of
// the password is ever stored.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email (unique)
	PasswordHash string    // users.password_hash
	FullName     string    // users.full_name
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
