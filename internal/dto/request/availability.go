package request

type AvailabilityRequest struct {
	BarberID        int64  `json:"barberId" validate:"required,gt=0"`
	ChairID         int64  `json:"chairId" validate:"required,gt=0"`
	Date            string `json:"date" validate:"required"`
	DurationMinutes int    `json:"durationMinutes" validate:"omitempty,min=1,max=720"`
}
