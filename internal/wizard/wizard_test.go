package wizard

import (
	"math/rand/v2"
	"testing"
	"time"

	"barber-booking/internal/slot"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	beard   = Service{ID: 1, Name: "Beard", Price: decimal.NewFromInt(40), DurationMinutes: 20}
	haircut = Service{ID: 2, Name: "Hair Cut with trimmer", Price: decimal.NewFromInt(60), DurationMinutes: 30}
	combo   = Service{ID: 5, Name: "Combo", Price: decimal.NewFromInt(120), DurationMinutes: 90}
)

func testGrid() slot.Grid {
	return slot.Grid{
		Location:     time.FixedZone("IST", 5*3600+30*60),
		OpenHour:     7,
		LastSlotHour: 20,
		SlotMinutes:  60,
		HorizonDays:  30,
	}
}

// completeDraft walks a draft through every step up to payment.
func completeDraft(t *testing.T) Draft {
	t.Helper()

	d, err := ToggleService(New(), haircut)
	require.NoError(t, err)
	d, err = ToggleService(d, beard)
	require.NoError(t, err)
	d, err = Next(d)
	require.NoError(t, err)

	d, err = SelectBarber(d, 1)
	require.NoError(t, err)
	d, err = Next(d)
	require.NoError(t, err)

	d, err = SelectChair(d, 2)
	require.NoError(t, err)
	d, err = Next(d)
	require.NoError(t, err)

	d, err = SelectDate(d, "2026-03-10")
	require.NoError(t, err)
	d, err = SelectTime(d, "10:00", []string{"09:00", "10:00"})
	require.NoError(t, err)
	d, err = Next(d)
	require.NoError(t, err)

	d, err = SetContact(d, "  Ravi ", " 9876543210 ")
	require.NoError(t, err)
	d, err = Next(d)
	require.NoError(t, err)

	d, err = SelectPaymentMethod(d, "cash")
	require.NoError(t, err)
	require.Equal(t, StepPayment, d.Step)
	return d
}

func TestNew(t *testing.T) {
	d := New()

	assert.Equal(t, StepServices, d.Step)
	assert.Empty(t, d.Services)
	assert.True(t, d.TotalAmount.IsZero())
}

func TestToggleService_TotalTracksSelection(t *testing.T) {
	d, err := ToggleService(New(), haircut)
	require.NoError(t, err)
	d, err = ToggleService(d, beard)
	require.NoError(t, err)

	assert.True(t, d.TotalAmount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 50, d.DurationMinutes())

	d, err = ToggleService(d, haircut)
	require.NoError(t, err)

	assert.False(t, d.Has(haircut.ID))
	assert.True(t, d.TotalAmount.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, 20, d.DurationMinutes())
}

func TestToggleService_DoesNotModifyInput(t *testing.T) {
	first, err := ToggleService(New(), haircut)
	require.NoError(t, err)

	second, err := ToggleService(first, beard)
	require.NoError(t, err)

	assert.Len(t, first.Services, 1)
	assert.Len(t, second.Services, 2)
}

func TestToggleService_ClearsTime(t *testing.T) {
	d := New()
	d.Time = "10:00"

	d, err := ToggleService(d, combo)
	require.NoError(t, err)

	assert.Empty(t, d.Time)
}

func TestInputRejectedAtWrongStep(t *testing.T) {
	d := New()

	_, err := SelectBarber(d, 1)
	assert.ErrorIs(t, err, ErrWrongStep)

	_, err = SelectPaymentMethod(d, "cash")
	assert.ErrorIs(t, err, ErrWrongStep)

	d.Step = StepBarber
	_, err = ToggleService(d, beard)
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestNext_BlockedUntilStepValid(t *testing.T) {
	tests := []struct {
		step    Step
		message string
	}{
		{StepServices, "Please choose at least one service"},
		{StepBarber, "Please select a barber"},
		{StepChair, "Please select a chair"},
		{StepDateTime, "Please select date and time"},
		{StepContact, "Please enter your name and phone number"},
	}

	for _, tt := range tests {
		t.Run(string(tt.step), func(t *testing.T) {
			d := New()
			d.Step = tt.step

			got, err := Next(d)

			var stepErr *StepError
			require.ErrorAs(t, err, &stepErr)
			assert.Equal(t, tt.step, stepErr.Step)
			assert.Equal(t, tt.message, stepErr.Message)
			assert.Equal(t, tt.step, got.Step)
		})
	}
}

func TestNext_AtPayment(t *testing.T) {
	d := completeDraft(t)

	_, err := Next(d)
	assert.ErrorIs(t, err, ErrLastStep)
}

func TestBack(t *testing.T) {
	assert.Equal(t, StepServices, Back(New()).Step)

	d := New()
	d.Step = StepChair
	assert.Equal(t, StepBarber, Back(d).Step)
}

func TestSelectBarber_ChangeClearsTime(t *testing.T) {
	d := New()
	d.Step = StepBarber
	d.BarberID = 1
	d.Time = "10:00"

	same, err := SelectBarber(d, 1)
	require.NoError(t, err)
	assert.Equal(t, "10:00", same.Time)

	changed, err := SelectBarber(d, 2)
	require.NoError(t, err)
	assert.Empty(t, changed.Time)
	assert.Equal(t, int64(2), changed.BarberID)
}

func TestSelectDate_Invalid(t *testing.T) {
	d := New()
	d.Step = StepDateTime

	_, err := SelectDate(d, "10-03-2026")

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepDateTime, stepErr.Step)
}

func TestSelectTime(t *testing.T) {
	d := New()
	d.Step = StepDateTime

	_, err := SelectTime(d, "10:00", []string{"10:00"})
	assert.Error(t, err, "date must come first")

	d, err = SelectDate(d, "2026-03-10")
	require.NoError(t, err)

	_, err = SelectTime(d, "11:00", []string{"10:00"})
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Contains(t, stepErr.Message, "11:00")

	d, err = SelectTime(d, "10:00", []string{"10:00"})
	require.NoError(t, err)
	assert.Equal(t, "10:00", d.Time)
}

func TestSetContact_Trims(t *testing.T) {
	d := New()
	d.Step = StepContact

	d, err := SetContact(d, "  Ravi ", " 98765 ")
	require.NoError(t, err)

	assert.Equal(t, "Ravi", d.CustomerName)
	assert.Equal(t, "98765", d.PhoneNumber)

	blank, err := SetContact(d, "   ", "98765")
	require.NoError(t, err)
	_, err = Next(blank)
	assert.Error(t, err)
}

func TestSelectPaymentMethod(t *testing.T) {
	d := New()
	d.Step = StepPayment

	_, err := SelectPaymentMethod(d, "card")
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "Please select a payment method", stepErr.Message)

	d, err = SelectPaymentMethod(d, "upi")
	require.NoError(t, err)
	assert.Equal(t, "upi", d.PaymentMethod)
}

func TestBuildRequest(t *testing.T) {
	d := completeDraft(t)

	req, err := BuildRequest(d, testGrid())
	require.NoError(t, err)

	assert.Equal(t, int64(1), req.BarberID)
	assert.Equal(t, int64(2), req.ChairID)
	// 10:00 IST
	assert.Equal(t, "2026-03-10T04:30:00Z", req.BookingDate)
	assert.Equal(t, "Ravi", req.CustomerName)
	assert.Equal(t, "9876543210", req.PhoneNumber)
	assert.Equal(t, "cash", req.PaymentMethod)
	assert.Equal(t, "pending", req.PaymentStatus)
	assert.True(t, req.TotalAmount.Equal(decimal.NewFromInt(100)))
	require.Len(t, req.Services, 2)
	assert.Equal(t, haircut.ID, req.Services[0].ServiceID)
	assert.Equal(t, 1, req.Services[0].Quantity)
}

func TestBuildRequest_RequiresPaymentMethod(t *testing.T) {
	d := completeDraft(t)
	d.PaymentMethod = ""

	req, err := BuildRequest(d, testGrid())

	assert.Nil(t, req)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepPayment, stepErr.Step)
}

func TestBuildRequest_BeforePaymentStep(t *testing.T) {
	_, err := BuildRequest(New(), testGrid())
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestBuildRequest_RevalidatesEarlierSteps(t *testing.T) {
	d := completeDraft(t)
	d.Services = nil

	_, err := BuildRequest(d, testGrid())

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepServices, stepErr.Step)
}

// Random input sequences never break the draft's invariants.
func TestRandomSequences(t *testing.T) {
	catalog := []Service{beard, haircut, combo}
	rng := rand.New(rand.NewPCG(1, 2))

	for run := 0; run < 200; run++ {
		d := New()
		for op := 0; op < 40; op++ {
			before := d
			var (
				next Draft
				err  error
			)

			switch rng.IntN(9) {
			case 0:
				next, err = ToggleService(d, catalog[rng.IntN(len(catalog))])
			case 1:
				next, err = SelectBarber(d, rng.Int64N(3))
			case 2:
				next, err = SelectChair(d, rng.Int64N(4))
			case 3:
				next, err = SelectDate(d, "2026-03-10")
			case 4:
				next, err = SelectTime(d, "10:00", []string{"09:00", "10:00"})
			case 5:
				next, err = SetContact(d, "Ravi", "98765")
			case 6:
				next, err = SelectPaymentMethod(d, []string{"cash", "upi", "card"}[rng.IntN(3)])
			case 7:
				next, err = Next(d)
			default:
				next = Back(d)
			}

			if err != nil {
				assert.Equal(t, before, next, "failed input must leave the draft unchanged")
				continue
			}
			d = next

			require.Contains(t, Steps, d.Step)
			assert.True(t, d.TotalAmount.Equal(d.Total()))

			// reaching a step implies every earlier step validates
			for _, s := range Steps[:d.Step.index()] {
				assert.NoError(t, Validate(d, s))
			}
		}
	}
}
