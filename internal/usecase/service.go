package usecase

import (
	"barber-booking/internal/data/repository"

	"go.uber.org/zap"
)

type Service struct {
	Catalog      CatalogService
	Availability AvailabilityService
	Booking      BookingService
	Wizard       WizardService
}

func NewService(repo *repository.Repository, rules Rules, log *zap.Logger) *Service {
	availability := NewAvailabilityService(repo, rules, log)
	booking := NewBookingService(repo, rules, log)

	return &Service{
		Catalog:      NewCatalogService(repo, log),
		Availability: availability,
		Booking:      booking,
		Wizard:       NewWizardService(repo, availability, booking, rules, log),
	}
}
