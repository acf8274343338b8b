package usecase

import (
	"context"
	"errors"
	"fmt"

	"barber-booking/internal/data/repository"
	"barber-booking/internal/dto/request"
	"barber-booking/internal/dto/response"
	"barber-booking/internal/slot"
	"barber-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityService interface {
	CheckAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error)
}

type availabilityService struct {
	repo  *repository.Repository
	rules Rules
	log   *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, rules Rules, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:  repo,
		rules: rules,
		log:   log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) CheckAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Message: "Validation failed", Fields: errs}
	}

	grid := s.rules.Grid
	now := s.rules.now()

	day, err := grid.ParseDay(req.Date)
	if err != nil {
		return nil, invalid("date", err.Error())
	}
	if err := grid.CheckDay(day, now); err != nil {
		return nil, invalid("date", dayMessage(err, grid))
	}

	if err := requireResources(ctx, s.repo, req.BarberID, req.ChairID); err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindActiveBetween(ctx, req.BarberID, req.ChairID, s.rules.Exclusivity,
		day, day.AddDate(0, 0, 1), now)
	if err != nil {
		s.log.Error("Failed to load bookings for availability",
			zap.Error(err),
			zap.Int64("barber_id", req.BarberID),
			zap.Int64("chair_id", req.ChairID),
			zap.String("date", req.Date),
		)
		return nil, fmt.Errorf("check availability: %w", err)
	}

	busy := make([]slot.Interval, len(bookings))
	for i, b := range bookings {
		busy[i] = slot.Interval{Start: b.StartTime, End: b.EndTime}
	}

	slots := grid.Slots(day, req.DurationMinutes, busy, now)

	resp := &response.AvailabilityResponse{
		Date:            day.Format(slot.DateLayout),
		BarberID:        req.BarberID,
		ChairID:         req.ChairID,
		DurationMinutes: req.DurationMinutes,
		Slots:           response.SlotsToResponse(slots),
	}
	if resp.DurationMinutes == 0 {
		resp.DurationMinutes = grid.SlotMinutes
	}
	resp.Available = len(resp.FreeTimes()) > 0

	s.log.Debug("Availability computed",
		zap.String("date", resp.Date),
		zap.Int64("barber_id", req.BarberID),
		zap.Int64("chair_id", req.ChairID),
		zap.Int("busy", len(busy)),
	)

	return resp, nil
}

// requireResources checks that both barber and chair exist and take bookings.
func requireResources(ctx context.Context, repo *repository.Repository, barberID, chairID int64) error {
	barber, err := repo.Barber.FindByID(ctx, barberID)
	if err != nil {
		return fmt.Errorf("load barber: %w", err)
	}
	if barber == nil || !barber.IsActive {
		return notFound("barber %d", barberID)
	}

	chair, err := repo.Chair.FindByID(ctx, chairID)
	if err != nil {
		return fmt.Errorf("load chair: %w", err)
	}
	if chair == nil || !chair.IsActive {
		return notFound("chair %d", chairID)
	}

	return nil
}

func dayMessage(err error, grid slot.Grid) string {
	switch {
	case errors.Is(err, slot.ErrPastDate):
		return "Date is in the past"
	case errors.Is(err, slot.ErrBeyondHorizon):
		return fmt.Sprintf("Bookings open at most %d days ahead", grid.HorizonDays)
	default:
		return err.Error()
	}
}
