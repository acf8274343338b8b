package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_Active(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	later := now.Add(time.Minute)
	earlier := now.Add(-time.Minute)

	assert.True(t, (&Booking{Status: BookingStatusConfirmed}).Active(now))
	assert.True(t, (&Booking{Status: BookingStatusAwaitingPayment, HoldExpiresAt: &later}).Active(now))
	assert.False(t, (&Booking{Status: BookingStatusAwaitingPayment, HoldExpiresAt: &earlier}).Active(now))
	assert.False(t, (&Booking{Status: BookingStatusAwaitingPayment}).Active(now))
	assert.False(t, (&Booking{Status: BookingStatusCancelled}).Active(now))
}

func TestParseExclusivity(t *testing.T) {
	e, err := ParseExclusivity("")
	require.NoError(t, err)
	assert.Equal(t, ExclusiveEither, e)

	e, err = ParseExclusivity("pair")
	require.NoError(t, err)
	assert.Equal(t, ExclusivePair, e)

	_, err = ParseExclusivity("room")
	assert.Error(t, err)
}

func TestExclusivity_LockKeys(t *testing.T) {
	assert.Equal(t, []string{"barber:3", "chair:1"}, ExclusiveEither.LockKeys(3, 1))
	assert.Equal(t, []string{"barber:3"}, ExclusiveBarber.LockKeys(3, 1))
	assert.Equal(t, []string{"chair:1"}, ExclusiveChair.LockKeys(3, 1))
	assert.Equal(t, []string{"pair:3:1"}, ExclusivePair.LockKeys(3, 1))
}

func TestBookingItem_Subtotal(t *testing.T) {
	item := BookingItem{Quantity: 2, Price: decimal.RequireFromString("49.50")}
	assert.Equal(t, "99.00", item.Subtotal().StringFixed(2))
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, PaymentMethodCash.Valid())
	assert.True(t, PaymentMethodUPI.Valid())
	assert.False(t, PaymentMethod("card").Valid())
}
