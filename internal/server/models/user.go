package models

import "time"

// User is an account that owns photos. Usernames are unique and immutable;
// the password hash is bcrypt. Accounts are never updated or deleted.
type User struct {
	ID           int64
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}
