package models

import "time"

// User is a registered account. Email is the login key and is unique.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}
