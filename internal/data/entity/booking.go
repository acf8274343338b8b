package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusConfirmed       BookingStatus = "confirmed"
	BookingStatusAwaitingPayment BookingStatus = "awaiting_payment"
	BookingStatusCancelled       BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusVoid    PaymentStatus = "void"
)

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodUPI  PaymentMethod = "upi"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodUPI
}

type Booking struct {
	Base
	Reference       uuid.UUID       `db:"reference"`
	BarberID        int64           `db:"barber_id"`
	ChairID         int64           `db:"chair_id"`
	StartTime       time.Time       `db:"start_time"`
	EndTime         time.Time       `db:"end_time"`
	DurationMinutes int             `db:"duration_minutes"`
	CustomerName    string          `db:"customer_name"`
	PhoneNumber     string          `db:"phone_number"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	PaymentMethod   PaymentMethod   `db:"payment_method"`
	PaymentStatus   PaymentStatus   `db:"payment_status"`
	Status          BookingStatus   `db:"status"`
	HoldExpiresAt   *time.Time      `db:"hold_expires_at"`
}

// Active reports whether the booking still occupies its interval at now.
func (b *Booking) Active(now time.Time) bool {
	switch b.Status {
	case BookingStatusConfirmed:
		return true
	case BookingStatusAwaitingPayment:
		return b.HoldExpiresAt != nil && b.HoldExpiresAt.After(now)
	default:
		return false
	}
}

// BookingItem is one service line of a booking, priced at booking time.
type BookingItem struct {
	ID        int64           `db:"id"`
	BookingID int64           `db:"booking_id"`
	ServiceID int64           `db:"service_id"`
	Quantity  int             `db:"quantity"`
	Price     decimal.Decimal `db:"price"`
}

func (i BookingItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Exclusivity declares which resources a booking holds exclusively.
type Exclusivity string

const (
	// ExclusiveEither: barber and chair are each exclusive.
	ExclusiveEither Exclusivity = "either"
	ExclusiveBarber Exclusivity = "barber"
	ExclusiveChair  Exclusivity = "chair"
	// ExclusivePair: only the same (barber, chair) combination collides.
	ExclusivePair Exclusivity = "pair"
)

func ParseExclusivity(value string) (Exclusivity, error) {
	switch e := Exclusivity(value); e {
	case ExclusiveEither, ExclusiveBarber, ExclusiveChair, ExclusivePair:
		return e, nil
	case "":
		return ExclusiveEither, nil
	default:
		return "", fmt.Errorf("unknown exclusivity %q", value)
	}
}

// LockKeys returns the advisory lock keys guarding barberID/chairID, sorted.
func (e Exclusivity) LockKeys(barberID, chairID int64) []string {
	barber := fmt.Sprintf("barber:%d", barberID)
	chair := fmt.Sprintf("chair:%d", chairID)
	switch e {
	case ExclusiveBarber:
		return []string{barber}
	case ExclusiveChair:
		return []string{chair}
	case ExclusivePair:
		return []string{fmt.Sprintf("pair:%d:%d", barberID, chairID)}
	default:
		return []string{barber, chair}
	}
}
