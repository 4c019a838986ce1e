package bookingRepo

import (
	"context"
	"errors"

	"counselbook/models"
)

var (
	// ErrSlotTaken is returned when the (counselor, date, time slot) triple
	// is already occupied.
	ErrSlotTaken = errors.New("time slot already booked")
	// ErrNotFound is returned when a booking does not exist or is not owned
	// by the given user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("booking not found")
)

// BookingRepository is the slot registry: it persists bookings and answers
// availability queries. Claim is atomic against concurrent claims for the
// same slot.
type BookingRepository interface {
	// Claim attempts to create the booking and fills in its ID. The storage
	// layer's uniqueness constraint is the final arbiter of conflicts.
	Claim(ctx context.Context, booking *models.Booking) error
	// Release deletes a booking by ID, but only when owned by userID.
	Release(ctx context.Context, bookingID, userID int64) error
	// ListByCounselor returns all occupied slots for a counselor.
	ListByCounselor(ctx context.Context, counselorID int64) ([]models.BookedSlot, error)
	// ListByUser returns a user's bookings with counselor display fields,
	// ordered by date then time slot.
	ListByUser(ctx context.Context, userID int64) ([]models.UserBooking, error)
}
