package adaptor

import (
	"net/http"
	"strconv"

	"barber-booking/internal/dto/request"
	"barber-booking/internal/usecase"
	"barber-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// CheckAvailability handles GET /api/availability?barberId&chairId&date[&durationMinutes]
func (h *AvailabilityHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	errs := map[string]string{}

	barberID, err := utils.ParseID(query.Get("barberId"))
	if err != nil {
		errs["barberId"] = "Must be a positive integer"
	}
	chairID, err := utils.ParseID(query.Get("chairId"))
	if err != nil {
		errs["chairId"] = "Must be a positive integer"
	}

	duration := 0
	if raw := query.Get("durationMinutes"); raw != "" {
		if duration, err = strconv.Atoi(raw); err != nil {
			errs["durationMinutes"] = "Must be an integer"
		}
	}

	if len(errs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	resp, err := h.service.CheckAvailability(r.Context(), &request.AvailabilityRequest{
		BarberID:        barberID,
		ChairID:         chairID,
		Date:            query.Get("date"),
		DurationMinutes: duration,
	})
	if err != nil {
		handleServiceError(w, h.log, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}
