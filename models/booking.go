package models

import "time"

// Booking occupies one slot: the (counselor, date, time slot) triple is unique
// across all bookings, enforced by the storage layer.
type Booking struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	CounselorID int64     `json:"counselor_id"`
	Date        string    `json:"booking_date"`
	TimeSlot    string    `json:"time_slot"`
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookingInput is the request body for creating a booking.
type BookingInput struct {
	CounselorID int64  `json:"counselorId"`
	Date        string `json:"date"`
	TimeSlot    string `json:"timeSlot"`
	Reason      string `json:"reason"`
}

// UserBooking is a booking joined with its counselor's display fields,
// as returned by the "my bookings" listing.
type UserBooking struct {
	ID             int64     `json:"id"`
	Date           string    `json:"booking_date"`
	TimeSlot       string    `json:"time_slot"`
	Reason         string    `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	CounselorName  string    `json:"counselor_name"`
	CounselorTitle string    `json:"counselor_title"`
	AvatarColor    string    `json:"avatar_color"`
}

// BookedSlot is one occupied (date, time) pair in a counselor's calendar.
type BookedSlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}
