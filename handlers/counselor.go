package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	counselorRepo "counselbook/database/repository/counselor"
	"counselbook/services/booking"
	"counselbook/utils"
)

// CounselorHandler serves the counselor roster and per-counselor availability.
type CounselorHandler struct {
	counselors counselorRepo.CounselorRepository
	bookings   booking.BookingService
	logger     *zap.Logger
}

// NewCounselorHandler wires the counselor endpoints.
func NewCounselorHandler(counselors counselorRepo.CounselorRepository, bookings booking.BookingService, logger *zap.Logger) *CounselorHandler {
	return &CounselorHandler{counselors: counselors, bookings: bookings, logger: logger}
}

// List returns every counselor. Public endpoint.
func (h *CounselorHandler) List(c *gin.Context) {
	counselors, err := h.counselors.GetAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to fetch counselors", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch counselors")
		return
	}
	c.JSON(http.StatusOK, counselors)
}

// Availability returns the booked slots for one counselor.
func (h *CounselorHandler) Availability(c *gin.Context) {
	counselorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid counselor ID")
		return
	}

	slots, err := h.bookings.Availability(c.Request.Context(), counselorID)
	if err != nil {
		if errors.Is(err, booking.ErrCounselorNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Counselor not found")
			return
		}
		h.logger.Error("Failed to fetch availability", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch availability")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookedSlots": slots})
}
