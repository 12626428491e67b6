package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           int64
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
