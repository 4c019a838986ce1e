package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"counselbook/middleware"
	"counselbook/models"
	"counselbook/services/booking"
	"counselbook/utils"
)

// BookingHandler serves booking creation, listing and cancellation.
type BookingHandler struct {
	bookings booking.BookingService
	logger   *zap.Logger
}

// NewBookingHandler wires the booking endpoints.
func NewBookingHandler(bookings booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{bookings: bookings, logger: logger}
}

// Create claims a slot for the authenticated user.
func (h *BookingHandler) Create(c *gin.Context) {
	sess, _ := middleware.SessionFrom(c)

	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	b, err := h.bookings.Book(c.Request.Context(), sess.UserID, input)
	if err != nil {
		var vErr booking.ValidationError
		switch {
		case errors.As(err, &vErr):
			utils.JSONError(c, http.StatusBadRequest, vErr.Message)
		case errors.Is(err, booking.ErrCounselorNotFound):
			utils.JSONError(c, http.StatusNotFound, "Counselor not found")
		case errors.Is(err, booking.ErrSlotTaken):
			utils.JSONError(c, http.StatusConflict, "This time slot is already booked. Please select another time.")
		default:
			h.logger.Error("Booking failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to create booking")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Booking created successfully",
		"bookingId": b.ID,
	})
}

// List returns the authenticated user's bookings.
func (h *BookingHandler) List(c *gin.Context) {
	sess, _ := middleware.SessionFrom(c)

	bookings, err := h.bookings.UserBookings(c.Request.Context(), sess.UserID)
	if err != nil {
		h.logger.Error("Failed to fetch bookings", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// Delete cancels one of the authenticated user's bookings. A booking owned
// by someone else looks exactly like a missing one.
func (h *BookingHandler) Delete(c *gin.Context) {
	sess, _ := middleware.SessionFrom(c)

	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	if err := h.bookings.Cancel(c.Request.Context(), bookingID, sess.UserID); err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Booking not found or not authorized")
			return
		}
		h.logger.Error("Failed to cancel booking", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to cancel booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking cancelled successfully"})
}
