package adaptor

import (
	"net/http"

	"barber-booking/internal/dto/request"
	"barber-booking/internal/dto/response"
	"barber-booking/internal/usecase"
	"barber-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created", booking)
}

// GetBookingByReference handles GET /api/bookings/{reference}
func (h *BookingHandler) GetBookingByReference(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.GetBookingByReference(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		handleServiceError(w, h.log, err, "get booking by reference")
		return
	}

	utils.ResponseSuccess(w, "success", h.present(r, booking))
}

// present hides the customer's phone number from non-admin callers.
func (h *BookingHandler) present(r *http.Request, booking *response.BookingResponse) response.BookingResponse {
	if utils.IsAdmin(r.Context()) {
		return *booking
	}
	return booking.MaskPhone()
}

// ==================== ADMIN METHODS ====================

// ListBookings handles GET /api/admin/bookings (admin only)
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.ListBookingsRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		Status: query.Get("status"),
		From:   query.Get("from"),
		To:     query.Get("to"),
	}

	var err error
	if req.BarberID, err = utils.ParseOptionalID(query.Get("barberId")); err != nil {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"barberId": "Must be a positive integer"})
		return
	}
	if req.ChairID, err = utils.ParseOptionalID(query.Get("chairId")); err != nil {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"chairId": "Must be a positive integer"})
		return
	}

	bookings, err := h.service.ListBookings(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBookingByID handles GET /api/admin/bookings/{id} (admin only)
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	booking, err := h.service.GetBookingByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking by ID")
		return
	}

	utils.ResponseSuccess(w, "success", h.present(r, booking))
}

// CancelBooking handles PUT /api/admin/bookings/{id}/cancel (admin only)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	booking, err := h.service.CancelBooking(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	h.audit(r, "cancel", id)
	utils.ResponseSuccess(w, "Booking cancelled", booking)
}

// MarkPaid handles PUT /api/admin/bookings/{id}/paid (admin only)
func (h *BookingHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	booking, err := h.service.MarkPaid(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "mark booking paid")
		return
	}

	h.audit(r, "mark_paid", id)
	utils.ResponseSuccess(w, "Payment recorded", booking)
}

func (h *BookingHandler) bookingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Booking ID must be a positive integer", nil)
		return 0, false
	}
	return id, true
}

func (h *BookingHandler) audit(r *http.Request, action string, id int64) {
	role, _ := utils.GetRoleFromContext(r.Context())
	h.log.Info("Admin action",
		zap.String("action", action),
		zap.Int64("booking_id", id),
		zap.String("role", role),
		zap.String("ip", r.RemoteAddr),
	)
}
