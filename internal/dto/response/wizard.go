package response

import (
	"barber-booking/internal/wizard"
)

type WizardResponse struct {
	ID    string       `json:"id"`
	Step  wizard.Step  `json:"step"`
	Draft wizard.Draft `json:"draft"`
}

// WizardSubmitResponse is returned once the draft became a booking.
type WizardSubmitResponse struct {
	ID      string          `json:"id"`
	Booking BookingResponse `json:"booking"`
}
