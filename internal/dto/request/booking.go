package request

import (
	"github.com/shopspring/decimal"
)

// CreateBookingRequest is the finalize payload sent by the wizard.
// Amounts accept both JSON strings ("60.00") and numbers.
type CreateBookingRequest struct {
	BarberID      int64                `json:"barberId" validate:"required,gt=0"`
	ChairID       int64                `json:"chairId" validate:"required,gt=0"`
	BookingDate   string               `json:"bookingDate" validate:"required"`
	PhoneNumber   string               `json:"phoneNumber" validate:"required,max=20"`
	CustomerName  string               `json:"customerName" validate:"required,max=100"`
	TotalAmount   decimal.Decimal      `json:"totalAmount"`
	PaymentMethod string               `json:"paymentMethod" validate:"required,oneof=cash upi"`
	PaymentStatus string               `json:"paymentStatus,omitempty" validate:"omitempty,oneof=pending"`
	Services      []BookingServiceItem `json:"services" validate:"required,min=1,dive"`
}

type BookingServiceItem struct {
	ServiceID int64           `json:"serviceId" validate:"required,gt=0"`
	Quantity  int             `json:"quantity" validate:"omitempty,min=1,max=10"`
	Price     decimal.Decimal `json:"price"`
}

// ListBookingsRequest filters the admin booking list. From/To are YYYY-MM-DD
// in shop time, To inclusive.
type ListBookingsRequest struct {
	PaginatedRequest
	Status   string `json:"status" validate:"omitempty,oneof=confirmed awaiting_payment cancelled"`
	BarberID *int64 `json:"barberId"`
	ChairID  *int64 `json:"chairId"`
	From     string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To       string `json:"to" validate:"omitempty,datetime=2006-01-02"`
}
