package adaptor

import (
	"barber-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Catalog      *CatalogHandler
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Wizard       *WizardHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Catalog:      NewCatalogHandler(service.Catalog, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Wizard:       NewWizardHandler(service.Wizard, log),
	}
}
