package handlers

// HandlerBundle groups the HTTP handlers for route registration.
type HandlerBundle struct {
	Auth       *AuthHandler
	Counselors *CounselorHandler
	Bookings   *BookingHandler
}
