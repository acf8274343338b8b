package response

import (
	"time"

	"barber-booking/internal/data/entity"
)

type BookingItemResponse struct {
	ServiceID int64  `json:"serviceId"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

type BookingResponse struct {
	ID              int64                 `json:"id"`
	Reference       string                `json:"reference"`
	BarberID        int64                 `json:"barberId"`
	ChairID         int64                 `json:"chairId"`
	StartTime       time.Time             `json:"startTime"`
	EndTime         time.Time             `json:"endTime"`
	DurationMinutes int                   `json:"durationMinutes"`
	CustomerName    string                `json:"customerName"`
	PhoneNumber     string                `json:"phoneNumber"`
	TotalAmount     string                `json:"totalAmount"`
	PaymentMethod   entity.PaymentMethod  `json:"paymentMethod"`
	PaymentStatus   entity.PaymentStatus  `json:"paymentStatus"`
	Status          entity.BookingStatus  `json:"status"`
	HoldExpiresAt   *time.Time            `json:"holdExpiresAt,omitempty"`
	PaymentNote     string                `json:"paymentNote,omitempty"`
	Services        []BookingItemResponse `json:"services,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// ConflictDetail names the booking that holds the requested interval.
type ConflictDetail struct {
	Resource   string    `json:"resource"`
	ResourceID int64     `json:"resourceId"`
	BookingID  int64     `json:"bookingId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
}

func BookingToResponse(b *entity.Booking, items []*entity.BookingItem) BookingResponse {
	resp := BookingResponse{
		ID:              b.ID,
		Reference:       b.Reference.String(),
		BarberID:        b.BarberID,
		ChairID:         b.ChairID,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: b.DurationMinutes,
		CustomerName:    b.CustomerName,
		PhoneNumber:     b.PhoneNumber,
		TotalAmount:     b.TotalAmount.StringFixed(2),
		PaymentMethod:   b.PaymentMethod,
		PaymentStatus:   b.PaymentStatus,
		Status:          b.Status,
		HoldExpiresAt:   b.HoldExpiresAt,
		PaymentNote:     paymentNote(b),
		CreatedAt:       b.CreatedAt,
	}

	for _, it := range items {
		resp.Services = append(resp.Services, BookingItemResponse{
			ServiceID: it.ServiceID,
			Quantity:  it.Quantity,
			Price:     it.Price.StringFixed(2),
		})
	}

	return resp
}

func paymentNote(b *entity.Booking) string {
	switch {
	case b.Status == entity.BookingStatusCancelled:
		return ""
	case b.PaymentStatus == entity.PaymentStatusPaid:
		return "Payment received"
	case b.PaymentMethod == entity.PaymentMethodCash:
		return "Pay at the shop after your service"
	case b.PaymentMethod == entity.PaymentMethodUPI:
		return "Complete the UPI payment to confirm your booking"
	default:
		return ""
	}
}

// MaskPhone keeps only the last four digits.
func (r BookingResponse) MaskPhone() BookingResponse {
	runes := []rune(r.PhoneNumber)
	if n := len(runes); n > 4 {
		for i := range runes[:n-4] {
			runes[i] = '*'
		}
		r.PhoneNumber = string(runes)
	}
	return r
}
