package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"barber-booking/internal/data/entity"
	"barber-booking/internal/data/repository"
	"barber-booking/internal/dto/request"
	"barber-booking/internal/dto/response"
	"barber-booking/internal/slot"
	"barber-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookingByReference(ctx context.Context, reference string) (*response.BookingResponse, error)

	// Admin
	ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, id int64) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, id int64) (*response.BookingResponse, error)
	MarkPaid(ctx context.Context, id int64) (*response.BookingResponse, error)

	// ExpireHolds releases UPI bookings whose payment window has passed.
	ExpireHolds(ctx context.Context) (int64, error)
}

type bookingService struct {
	repo  *repository.Repository
	rules Rules
	log   *zap.Logger
}

func NewBookingService(repo *repository.Repository, rules Rules, log *zap.Logger) BookingService {
	return &bookingService{
		repo:  repo,
		rules: rules,
		log:   log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Message: "Validation failed", Fields: errs}
	}

	name := strings.TrimSpace(req.CustomerName)
	phone := strings.TrimSpace(req.PhoneNumber)
	if name == "" {
		return nil, invalid("customerName", "This field is required")
	}
	if phone == "" {
		return nil, invalid("phoneNumber", "This field is required")
	}

	grid := s.rules.Grid
	now := s.rules.now()

	start, err := time.Parse(time.RFC3339, req.BookingDate)
	if err != nil {
		return nil, invalid("bookingDate", "Must be an ISO 8601 timestamp")
	}
	start = start.In(grid.Location)
	if !start.After(now) {
		return nil, invalid("bookingDate", "Must be in the future")
	}
	if err := grid.CheckDay(start, now); err != nil {
		return nil, invalid("bookingDate", dayMessage(err, grid))
	}

	if err := requireResources(ctx, s.repo, req.BarberID, req.ChairID); err != nil {
		return nil, err
	}

	items, total, minutes, err := s.priceItems(ctx, req.Services)
	if err != nil {
		return nil, err
	}
	if !req.TotalAmount.Equal(total) {
		return nil, invalid("totalAmount", fmt.Sprintf("Must equal the sum of the services (%s)", total.StringFixed(2)))
	}

	end := start.Add(time.Duration(minutes) * time.Minute)
	if err := grid.CheckHours(slot.Interval{Start: start, End: end}); err != nil {
		day := grid.Day(start)
		return nil, invalid("bookingDate", fmt.Sprintf("Booking must fit between %s and %s",
			grid.Opening(day).Format(slot.TimeLayout), grid.Closing(day).Format(slot.TimeLayout)))
	}

	method := entity.PaymentMethod(req.PaymentMethod)
	booking := &entity.Booking{
		Reference:       uuid.New(),
		BarberID:        req.BarberID,
		ChairID:         req.ChairID,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: minutes,
		CustomerName:    name,
		PhoneNumber:     phone,
		TotalAmount:     total,
		PaymentMethod:   method,
		PaymentStatus:   entity.PaymentStatusPending,
		Status:          entity.BookingStatusConfirmed,
	}
	if method == entity.PaymentMethodUPI {
		hold := now.Add(s.rules.UPIHold)
		booking.Status = entity.BookingStatusAwaitingPayment
		booking.HoldExpiresAt = &hold
	}

	conflict, err := s.repo.Booking.CreateWithItems(ctx, booking, items, s.rules.Exclusivity, now)
	if err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if conflict != nil {
		return nil, s.conflictError(booking, conflict)
	}

	s.log.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.String("reference", booking.Reference.String()),
		zap.Int64("barber_id", booking.BarberID),
		zap.Int64("chair_id", booking.ChairID),
		zap.Time("start_time", booking.StartTime),
		zap.Int("duration_minutes", minutes),
		zap.String("total_amount", total.StringFixed(2)),
		zap.String("status", string(booking.Status)),
	)

	resp := response.BookingToResponse(booking, items)
	return &resp, nil
}

// priceItems checks the requested lines against the catalog and returns the
// lines priced from it, their total and the chair time they need.
func (s *bookingService) priceItems(ctx context.Context, lines []request.BookingServiceItem) ([]*entity.BookingItem, decimal.Decimal, int, error) {
	ids := make([]int64, 0, len(lines))
	seen := make(map[int64]bool, len(lines))
	for _, line := range lines {
		if seen[line.ServiceID] {
			return nil, decimal.Zero, 0, invalid("services", fmt.Sprintf("Service %d is listed more than once", line.ServiceID))
		}
		seen[line.ServiceID] = true
		ids = append(ids, line.ServiceID)
	}

	services, err := s.repo.Service.FindByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, 0, fmt.Errorf("load services: %w", err)
	}
	catalog := make(map[int64]*entity.Service, len(services))
	for _, svc := range services {
		catalog[svc.ID] = svc
	}

	items := make([]*entity.BookingItem, 0, len(lines))
	total := decimal.Zero
	minutes := 0
	for i, line := range lines {
		svc, ok := catalog[line.ServiceID]
		if !ok || !svc.IsActive {
			return nil, decimal.Zero, 0, invalid(fmt.Sprintf("services[%d].serviceId", i), "Unknown service")
		}
		if !line.Price.Equal(svc.Price) {
			return nil, decimal.Zero, 0, invalid(fmt.Sprintf("services[%d].price", i),
				fmt.Sprintf("Price of %s is %s", svc.Name, svc.Price.StringFixed(2)))
		}

		qty := line.Quantity
		if qty == 0 {
			qty = 1
		}

		item := &entity.BookingItem{ServiceID: svc.ID, Quantity: qty, Price: svc.Price}
		items = append(items, item)
		total = total.Add(item.Subtotal())
		minutes += svc.DurationMinutes * qty
	}

	return items, total, minutes, nil
}

func (s *bookingService) conflictError(requested, existing *entity.Booking) *ConflictError {
	err := &ConflictError{
		BookingID: existing.ID,
		Start:     existing.StartTime.In(s.rules.Grid.Location),
		End:       existing.EndTime.In(s.rules.Grid.Location),
	}

	switch {
	case s.rules.Exclusivity == entity.ExclusivePair:
		err.Resource, err.ResourceID = "barber_chair", requested.ChairID
	case s.rules.Exclusivity != entity.ExclusiveChair && existing.BarberID == requested.BarberID:
		err.Resource, err.ResourceID = "barber", requested.BarberID
	default:
		err.Resource, err.ResourceID = "chair", requested.ChairID
	}

	s.log.Info("Booking conflict",
		zap.String("resource", err.Resource),
		zap.Int64("resource_id", err.ResourceID),
		zap.Int64("existing_booking_id", existing.ID),
		zap.Time("requested_start", requested.StartTime),
	)

	return err
}

func (s *bookingService) GetBookingByReference(ctx context.Context, reference string) (*response.BookingResponse, error) {
	ref, err := uuid.Parse(reference)
	if err != nil {
		return nil, invalid("reference", "Must be a valid UUID")
	}

	booking, err := s.repo.Booking.FindByReference(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, notFound("booking %s", reference)
	}

	return s.withItems(ctx, booking)
}

func (s *bookingService) GetBookingByID(ctx context.Context, id int64) (*response.BookingResponse, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, booking)
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Message: "Validation failed", Fields: errs}
	}

	filter := repository.BookingFilter{BarberID: req.BarberID, ChairID: req.ChairID}
	if req.Status != "" {
		status := entity.BookingStatus(req.Status)
		filter.Status = &status
	}
	if req.From != "" {
		from, err := s.rules.Grid.ParseDay(req.From)
		if err != nil {
			return nil, invalid("from", err.Error())
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := s.rules.Grid.ParseDay(req.To)
		if err != nil {
			return nil, invalid("to", err.Error())
		}
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}

	bookings, err := s.repo.Booking.List(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	ids := make([]int64, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}
	items, err := s.repo.BookingItem.FindByBookingIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list booking items: %w", err)
	}

	out := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = response.BookingToResponse(b, items[b.ID])
	}

	return response.NewPaginatedResponse(out, req.Page, req.Limit(), total), nil
}

func (s *bookingService) CancelBooking(ctx context.Context, id int64) (*response.BookingResponse, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == entity.BookingStatusCancelled {
		return nil, fmt.Errorf("%w: booking %d is already cancelled", ErrInvalidTransition, id)
	}

	to := repository.BookingState{Status: entity.BookingStatusCancelled, PaymentStatus: entity.PaymentStatusVoid}
	if booking.PaymentStatus == entity.PaymentStatusPaid {
		// refunds are handled at the counter
		to.PaymentStatus = entity.PaymentStatusPaid
	}

	return s.transition(ctx, booking, to)
}

func (s *bookingService) MarkPaid(ctx context.Context, id int64) (*response.BookingResponse, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case booking.Status == entity.BookingStatusAwaitingPayment && !booking.Active(s.rules.now()):
		return nil, fmt.Errorf("%w: payment hold of booking %d has expired", ErrInvalidTransition, id)
	case booking.Status == entity.BookingStatusAwaitingPayment,
		booking.Status == entity.BookingStatusConfirmed && booking.PaymentStatus == entity.PaymentStatusPending:
	default:
		return nil, fmt.Errorf("%w: booking %d is %s with payment %s",
			ErrInvalidTransition, id, booking.Status, booking.PaymentStatus)
	}

	return s.transition(ctx, booking, repository.BookingState{
		Status:        entity.BookingStatusConfirmed,
		PaymentStatus: entity.PaymentStatusPaid,
	})
}

func (s *bookingService) transition(ctx context.Context, booking *entity.Booking, to repository.BookingState) (*response.BookingResponse, error) {
	from := repository.BookingState{Status: booking.Status, PaymentStatus: booking.PaymentStatus}

	updated, err := s.repo.Booking.Transition(ctx, booking.ID, from, to, s.rules.now())
	if err != nil {
		return nil, fmt.Errorf("update booking %d: %w", booking.ID, err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: booking %d changed concurrently, reload and retry", ErrInvalidTransition, booking.ID)
	}

	s.log.Info("Booking transitioned",
		zap.Int64("booking_id", booking.ID),
		zap.String("from_status", string(from.Status)),
		zap.String("to_status", string(to.Status)),
		zap.String("payment_status", string(to.PaymentStatus)),
	)

	return s.withItems(ctx, updated)
}

func (s *bookingService) ExpireHolds(ctx context.Context) (int64, error) {
	n, err := s.repo.Booking.ExpireHolds(ctx, s.rules.now())
	if err != nil {
		return 0, fmt.Errorf("expire holds: %w", err)
	}
	if n > 0 {
		s.log.Info("Expired unpaid UPI holds", zap.Int64("count", n))
	}
	return n, nil
}

func (s *bookingService) find(ctx context.Context, id int64) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, notFound("booking %d", id)
	}
	return booking, nil
}

func (s *bookingService) withItems(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	items, err := s.repo.BookingItem.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("get booking items: %w", err)
	}

	resp := response.BookingToResponse(booking, items)
	return &resp, nil
}
