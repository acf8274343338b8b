package response

import (
	"time"

	"barber-booking/internal/slot"
)

type SlotResponse struct {
	Time      string    `json:"time"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Available bool      `json:"available"`
}

type AvailabilityResponse struct {
	Date            string         `json:"date"`
	BarberID        int64          `json:"barberId"`
	ChairID         int64          `json:"chairId"`
	DurationMinutes int            `json:"durationMinutes"`
	Available       bool           `json:"available"`
	Slots           []SlotResponse `json:"slots"`
}

// FreeTimes lists the labels of the available slots.
func (a *AvailabilityResponse) FreeTimes() []string {
	var out []string
	for _, s := range a.Slots {
		if s.Available {
			out = append(out, s.Time)
		}
	}
	return out
}

func SlotsToResponse(slots []slot.Slot) []SlotResponse {
	out := make([]SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = SlotResponse{Time: s.Time, StartTime: s.Start, EndTime: s.End, Available: s.Available}
	}
	return out
}
