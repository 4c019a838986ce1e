package models

import "time"

// Counselor is static reference data seeded at startup and read-only afterwards.
type Counselor struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Specialty   string    `json:"specialty"`
	Bio         string    `json:"bio"`
	AvatarColor string    `json:"avatar_color"`
	CreatedAt   time.Time `json:"created_at"`
}
