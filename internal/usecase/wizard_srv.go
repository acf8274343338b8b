package usecase

import (
	"context"
	"fmt"

	"barber-booking/internal/data/repository"
	"barber-booking/internal/dto/request"
	"barber-booking/internal/dto/response"
	"barber-booking/internal/wizard"
	"barber-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WizardService runs the booking wizard on drafts stored server side.
type WizardService interface {
	Start(ctx context.Context) (*response.WizardResponse, error)
	Get(ctx context.Context, id string) (*response.WizardResponse, error)
	Discard(ctx context.Context, id string) error

	ToggleService(ctx context.Context, id string, serviceID int64) (*response.WizardResponse, error)
	SelectBarber(ctx context.Context, id string, req *request.SelectBarberRequest) (*response.WizardResponse, error)
	SelectChair(ctx context.Context, id string, req *request.SelectChairRequest) (*response.WizardResponse, error)
	SelectDate(ctx context.Context, id string, req *request.SelectDateRequest) (*response.WizardResponse, error)
	SelectTime(ctx context.Context, id string, req *request.SelectTimeRequest) (*response.WizardResponse, error)
	SetContact(ctx context.Context, id string, req *request.ContactRequest) (*response.WizardResponse, error)
	SelectPaymentMethod(ctx context.Context, id string, req *request.PaymentMethodRequest) (*response.WizardResponse, error)

	Next(ctx context.Context, id string) (*response.WizardResponse, error)
	Back(ctx context.Context, id string) (*response.WizardResponse, error)

	// Slots reports availability for the draft's barber, chair, date and duration.
	Slots(ctx context.Context, id string) (*response.AvailabilityResponse, error)
	// Submit books the draft. The draft is kept on any failure and deleted on success.
	Submit(ctx context.Context, id string) (*response.WizardSubmitResponse, error)
}

type wizardService struct {
	repo         *repository.Repository
	availability AvailabilityService
	booking      BookingService
	rules        Rules
	log          *zap.Logger
}

func NewWizardService(repo *repository.Repository, availability AvailabilityService, booking BookingService, rules Rules, log *zap.Logger) WizardService {
	return &wizardService{
		repo:         repo,
		availability: availability,
		booking:      booking,
		rules:        rules,
		log:          log.With(zap.String("service", "wizard")),
	}
}

func toWizardResponse(id string, d wizard.Draft) *response.WizardResponse {
	return &response.WizardResponse{ID: id, Step: d.Step, Draft: d}
}

func (s *wizardService) Start(ctx context.Context) (*response.WizardResponse, error) {
	id := uuid.NewString()
	draft := wizard.New()

	if err := s.repo.Draft.Save(ctx, id, draft, s.rules.WizardTTL); err != nil {
		return nil, fmt.Errorf("start wizard: %w", err)
	}

	s.log.Debug("Wizard started", zap.String("draft_id", id))
	return toWizardResponse(id, draft), nil
}

func (s *wizardService) load(ctx context.Context, id string) (wizard.Draft, error) {
	draft, err := s.repo.Draft.Find(ctx, id)
	if err != nil {
		return wizard.Draft{}, fmt.Errorf("load wizard: %w", err)
	}
	if draft == nil {
		return wizard.Draft{}, notFound("wizard session %s not found or expired", id)
	}
	return *draft, nil
}

// apply loads the draft, runs step on it and stores the result. A failing
// step leaves the stored draft untouched.
func (s *wizardService) apply(ctx context.Context, id string, step func(wizard.Draft) (wizard.Draft, error)) (*response.WizardResponse, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := step(draft)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Draft.Save(ctx, id, next, s.rules.WizardTTL); err != nil {
		return nil, fmt.Errorf("save wizard: %w", err)
	}

	return toWizardResponse(id, next), nil
}

func (s *wizardService) Get(ctx context.Context, id string) (*response.WizardResponse, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toWizardResponse(id, draft), nil
}

func (s *wizardService) Discard(ctx context.Context, id string) error {
	if err := s.repo.Draft.Delete(ctx, id); err != nil {
		return fmt.Errorf("discard wizard: %w", err)
	}
	return nil
}

func (s *wizardService) ToggleService(ctx context.Context, id string, serviceID int64) (*response.WizardResponse, error) {
	svc, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("load service: %w", err)
	}
	if svc == nil || !svc.IsActive {
		return nil, notFound("service %d", serviceID)
	}

	return s.apply(ctx, id, func(d wizard.Draft) (wizard.Draft, error) {
		return wizard.ToggleService(d, wizard.Service{
			ID:              svc.ID,
			Name:            svc.Name,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
		})
	})
}

func (s *wizardService) SelectBarber(ctx context.Context, id string, req *request.SelectBarberRequest) (*response.WizardResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Message: "Validation failed", Fields: errs}
	}

	barber, err := s.repo.Barber.FindByID(ctx, req.BarberID)
	if err != nil {
		return nil, fmt.Errorf("load barber: %w", err)
	}
	if barber == nil || !barber.IsActive {
		return nil, notFound("barber %d", req.BarberID)
	}

	return s.apply(ctx, id, func(d wizard.Draft) (wizard.Draft, error) {
		return wizard.SelectBarber(d, req.BarberID)
	})
}

func (s *wizardService) SelectChair(ctx context.Context, id string, req *request.SelectChairRequest) (*response.WizardResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Message: "Validation failed", Fields: errs}
	}

	chair, err := s.repo.Chair.FindByID(ctx, req.ChairID)
	if err != nil {
		return nil, fmt.Errorf("load chair: %w", err)
	}
	if chair == nil || !chair.IsActive {
		return nil, notFound("chair %d", req.ChairID)
	}

	return s.apply(ctx, id, func(d wizard.Draft) (wizard.Draft, error) {
		return wizard.SelectChair(d, req.ChairID)
	})
}

func (s *wizardService) SelectDate(ctx context.Context, id string, req *request.SelectDateRequest) (*response.WizardResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Message: "Validation failed", Fields: errs}
	}

	grid := s.rules.Grid
	day, err := grid.ParseDay(req.Date)
	if err != nil {
		return nil, &wizard.StepError{Step: wizard.StepDateTime, Message: "Please select a valid date"}
	}
	if err := grid.CheckDay(day, s.rules.now()); err != nil {
		return nil, &wizard.StepError{Step: wizard.StepDateTime, Message: dayMessage(err, grid)}
	}

	return s.apply(ctx, id, func(d wizard.Draft) (wizard.Draft, error) {
		return wizard.SelectDate(d, req.Date)
	})
}

func (s *wizardService) SelectTime(ctx context.Context, id string, req *request.SelectTimeRequest) (*response.WizardResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Message: "Validation failed", Fields: errs}
	}

	return s.apply(ctx, id, func(d wizard.Draft) (wizard.Draft, error) {
		if d.Step != wizard.StepDateTime || d.Date == "" {
			// let the state machine report the precise problem
			return wizard.SelectTime(d, req.Time, nil)
		}

		avail, err := s.slotsFor(ctx, d)
		if err != nil {
			return d, err
		}
		return wizard.SelectTime(d, req.Time, avail.FreeTimes())
	})
}

func (s *wizardService) SetContact(ctx context.Context, id string, req *request.ContactRequest) (*response.WizardResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Message: "Validation failed", Fields: errs}
	}

	return s.apply(ctx, id, func(d wizard.Draft) (wizard.Draft, error) {
		return wizard.SetContact(d, req.CustomerName, req.PhoneNumber)
	})
}

func (s *wizardService) SelectPaymentMethod(ctx context.Context, id string, req *request.PaymentMethodRequest) (*response.WizardResponse, error) {
	return s.apply(ctx, id, func(d wizard.Draft) (wizard.Draft, error) {
		return wizard.SelectPaymentMethod(d, req.PaymentMethod)
	})
}

func (s *wizardService) Next(ctx context.Context, id string) (*response.WizardResponse, error) {
	return s.apply(ctx, id, wizard.Next)
}

func (s *wizardService) Back(ctx context.Context, id string) (*response.WizardResponse, error) {
	return s.apply(ctx, id, func(d wizard.Draft) (wizard.Draft, error) {
		return wizard.Back(d), nil
	})
}

func (s *wizardService) Slots(ctx context.Context, id string) (*response.AvailabilityResponse, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.slotsFor(ctx, draft)
}

func (s *wizardService) slotsFor(ctx context.Context, d wizard.Draft) (*response.AvailabilityResponse, error) {
	if d.BarberID == 0 || d.ChairID == 0 || d.Date == "" {
		return nil, &wizard.StepError{Step: wizard.StepDateTime, Message: "Please select a barber, a chair and a date first"}
	}

	return s.availability.CheckAvailability(ctx, &request.AvailabilityRequest{
		BarberID:        d.BarberID,
		ChairID:         d.ChairID,
		Date:            d.Date,
		DurationMinutes: d.DurationMinutes(),
	})
}

func (s *wizardService) Submit(ctx context.Context, id string) (*response.WizardSubmitResponse, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := wizard.BuildRequest(draft, s.rules.Grid)
	if err != nil {
		return nil, err
	}

	booking, err := s.booking.CreateBooking(ctx, payload)
	if err != nil {
		s.log.Info("Wizard submit failed, draft kept",
			zap.String("draft_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.repo.Draft.Delete(ctx, id); err != nil {
		// the booking exists, the stale draft will expire on its own
		s.log.Warn("Failed to delete submitted draft", zap.String("draft_id", id), zap.Error(err))
	}

	return &response.WizardSubmitResponse{ID: id, Booking: *booking}, nil
}
