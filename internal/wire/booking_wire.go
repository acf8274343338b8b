package wire

import (
	"barber-booking/internal/adaptor"
	"barber-booking/pkg/middleware"
	"barber-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	availabilityHandler *adaptor.AvailabilityHandler,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/availability - Slot grid for a barber/chair pair on one day
	r.Get("/api/availability", availabilityHandler.CheckAvailability)

	// POST /api/bookings - Create booking (conflict-checked)
	r.Post("/api/bookings", bookingHandler.CreateBooking)

	// GET /api/bookings/{reference} - Look up a booking by its reference
	r.Get("/api/bookings/{reference}", bookingHandler.GetBookingByReference)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.AdminToken(config.Admin.TokenHash, log))

		r.Get("/", bookingHandler.ListBookings)
		r.Get("/{id}", bookingHandler.GetBookingByID)
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
		r.Put("/{id}/paid", bookingHandler.MarkPaid)
	})
}
