package booking

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	bookingRepo "counselbook/database/repository/booking"
	counselorRepo "counselbook/database/repository/counselor"
	"counselbook/models"
)

var (
	// ErrCounselorNotFound is returned when the referenced counselor does
	// not exist.
	ErrCounselorNotFound = errors.New("counselor not found")
	// ErrSlotTaken is returned when the requested slot is already occupied.
	ErrSlotTaken = errors.New("time slot already booked")
	// ErrBookingNotFound is returned when a cancellation matches no booking
	// owned by the caller.
	ErrBookingNotFound = errors.New("booking not found")
)

// ValidationError carries the user-facing description of a rejected input.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

const maxReasonLen = 4000

var dateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// BookingService orchestrates slot claims: request shape validation,
// counselor existence, reason sanitization, then delegation to the slot
// registry.
type BookingService interface {
	// Book claims a slot for the user.
	Book(ctx context.Context, userID int64, input models.BookingInput) (*models.Booking, error)
	// Cancel releases a booking owned by the user.
	Cancel(ctx context.Context, bookingID, userID int64) error
	// Availability lists a counselor's occupied slots.
	Availability(ctx context.Context, counselorID int64) ([]models.BookedSlot, error)
	// UserBookings lists the user's bookings ordered by date then time slot.
	UserBookings(ctx context.Context, userID int64) ([]models.UserBooking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings   bookingRepo.BookingRepository
	Counselors counselorRepo.CounselorRepository
	Logger     *zap.Logger

	sanitizer *bluemonday.Policy
}

// NewDefaultBookingService wires the service with a strict sanitizer that
// strips every tag and attribute from booking reasons.
func NewDefaultBookingService(bookings bookingRepo.BookingRepository, counselors counselorRepo.CounselorRepository, logger *zap.Logger) *DefaultBookingService {
	return &DefaultBookingService{
		Bookings:   bookings,
		Counselors: counselors,
		Logger:     logger,
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

func (s *DefaultBookingService) Book(ctx context.Context, userID int64, input models.BookingInput) (*models.Booking, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.Counselors.GetByID(ctx, input.CounselorID); err != nil {
		if errors.Is(err, counselorRepo.ErrNotFound) {
			return nil, ErrCounselorNotFound
		}
		s.Logger.Error("Book: counselor lookup failed", zap.Error(err))
		return nil, fmt.Errorf("booking failed: %w", err)
	}

	b := &models.Booking{
		UserID:      userID,
		CounselorID: input.CounselorID,
		Date:        input.Date,
		TimeSlot:    input.TimeSlot,
		Reason:      s.sanitizeReason(input.Reason),
	}

	if err := s.Bookings.Claim(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		s.Logger.Error("Book: claim failed", zap.Error(err))
		return nil, fmt.Errorf("booking failed: %w", err)
	}
	return b, nil
}

func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID, userID int64) error {
	err := s.Bookings.Release(ctx, bookingID, userID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return ErrBookingNotFound
	}
	if err != nil {
		s.Logger.Error("Cancel: release failed", zap.Error(err))
		return fmt.Errorf("cancellation failed: %w", err)
	}
	return nil
}

func (s *DefaultBookingService) Availability(ctx context.Context, counselorID int64) ([]models.BookedSlot, error) {
	if _, err := s.Counselors.GetByID(ctx, counselorID); err != nil {
		if errors.Is(err, counselorRepo.ErrNotFound) {
			return nil, ErrCounselorNotFound
		}
		s.Logger.Error("Availability: counselor lookup failed", zap.Error(err))
		return nil, fmt.Errorf("availability lookup failed: %w", err)
	}
	return s.Bookings.ListByCounselor(ctx, counselorID)
}

func (s *DefaultBookingService) UserBookings(ctx context.Context, userID int64) ([]models.UserBooking, error) {
	return s.Bookings.ListByUser(ctx, userID)
}

func validateInput(input models.BookingInput) error {
	if input.CounselorID <= 0 {
		return ValidationError{Message: "Invalid counselor ID"}
	}
	if !dateFormat.MatchString(input.Date) {
		return ValidationError{Message: "Invalid date format"}
	}
	if input.TimeSlot == "" {
		return ValidationError{Message: "Invalid time slot"}
	}
	if len(input.Reason) > maxReasonLen {
		return ValidationError{Message: "Reason must be 4000 characters or less"}
	}
	return nil
}

func (s *DefaultBookingService) sanitizeReason(reason string) string {
	return s.sanitizer.Sanitize(strings.TrimSpace(reason))
}
