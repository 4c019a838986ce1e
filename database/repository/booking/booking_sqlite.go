package bookingRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"counselbook/models"
)

// SQLiteBookingRepo implements BookingRepository over a sqlite database.
type SQLiteBookingRepo struct {
	db *sql.DB
}

// NewSQLiteBookingRepo creates a new instance of BookingRepository using sqlite.
func NewSQLiteBookingRepo(db *sql.DB) *SQLiteBookingRepo {
	return &SQLiteBookingRepo{db: db}
}

// Claim inserts the booking. An advisory existence check gives the common
// case a fast answer, but the UNIQUE(counselor_id, booking_date, time_slot)
// constraint is what actually decides races between concurrent claims.
func (r *SQLiteBookingRepo) Claim(ctx context.Context, booking *models.Booking) error {
	var existing int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM bookings WHERE counselor_id = ? AND booking_date = ? AND time_slot = ?`,
		booking.CounselorID, booking.Date, booking.TimeSlot,
	).Scan(&existing)
	if err == nil {
		return ErrSlotTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check slot: %w", err)
	}

	var reason any
	if booking.Reason != "" {
		reason = booking.Reason
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (user_id, counselor_id, booking_date, time_slot, reason)
		 VALUES (?, ?, ?, ?, ?)`,
		booking.UserID, booking.CounselorID, booking.Date, booking.TimeSlot, reason,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrSlotTaken
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted booking id: %w", err)
	}
	booking.ID = id
	return nil
}

// Release deletes in a single statement filtered by both booking id and
// owner, so "not found" and "not yours" are indistinguishable.
func (r *SQLiteBookingRepo) Release(ctx context.Context, bookingID, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM bookings WHERE id = ? AND user_id = ?`,
		bookingID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteBookingRepo) ListByCounselor(ctx context.Context, counselorID int64) ([]models.BookedSlot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT booking_date, time_slot FROM bookings WHERE counselor_id = ?`,
		counselorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list booked slots: %w", err)
	}
	defer rows.Close()

	slots := []models.BookedSlot{}
	for rows.Next() {
		var s models.BookedSlot
		if err := rows.Scan(&s.Date, &s.Time); err != nil {
			return nil, fmt.Errorf("failed to scan booked slot: %w", err)
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *SQLiteBookingRepo) ListByUser(ctx context.Context, userID int64) ([]models.UserBooking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT b.id, b.booking_date, b.time_slot, b.reason, b.created_at,
		        c.name, c.title, c.avatar_color
		 FROM bookings b
		 JOIN counselors c ON b.counselor_id = c.id
		 WHERE b.user_id = ?
		 ORDER BY b.booking_date ASC, b.time_slot ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.UserBooking{}
	for rows.Next() {
		var b models.UserBooking
		var reason sql.NullString
		if err := rows.Scan(&b.ID, &b.Date, &b.TimeSlot, &reason, &b.CreatedAt,
			&b.CounselorName, &b.CounselorTitle, &b.AvatarColor); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		b.Reason = reason.String
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
