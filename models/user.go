package models

import "time"

// User is an account record. Usernames are stored lowercased and are unique
// case-insensitively at the storage layer.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	SignupIP     string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
