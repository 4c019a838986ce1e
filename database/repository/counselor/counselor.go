package counselorRepo

import (
	"context"
	"errors"

	"counselbook/models"
)

// ErrNotFound is returned when no counselor matches the given ID.
var ErrNotFound = errors.New("counselor not found")

// CounselorRepository defines read access to the counselor roster.
// Counselors are reference data: seeded once, never written by the app.
type CounselorRepository interface {
	// GetAll retrieves all counselors ordered by name.
	GetAll(ctx context.Context) ([]models.Counselor, error)
	// GetByID retrieves a counselor by its ID.
	GetByID(ctx context.Context, id int64) (*models.Counselor, error)
}
