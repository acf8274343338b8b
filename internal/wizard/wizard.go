// Package wizard is the booking wizard as a pure state machine. Every
// operation takes a Draft plus the user's input and returns a new Draft;
// the input draft is never modified. On error the returned draft is the
// unchanged input.
package wizard

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"barber-booking/internal/data/entity"
	"barber-booking/internal/dto/request"
	"barber-booking/internal/slot"

	"github.com/shopspring/decimal"
)

type Step string

const (
	StepServices Step = "services"
	StepBarber   Step = "barber"
	StepChair    Step = "chair"
	StepDateTime Step = "datetime"
	StepContact  Step = "contact"
	StepPayment  Step = "payment"
)

// Steps in wizard order.
var Steps = []Step{StepServices, StepBarber, StepChair, StepDateTime, StepContact, StepPayment}

func (s Step) index() int {
	return slices.Index(Steps, s)
}

var (
	ErrWrongStep = errors.New("input is not accepted at this step")
	ErrLastStep  = errors.New("payment is the last step, submit the booking instead")
)

// StepError is a validation failure reported in place; the draft stays where it is.
type StepError struct {
	Step    Step
	Message string
}

func (e *StepError) Error() string {
	return e.Message
}

// Service is the catalog data the wizard needs about a service.
type Service struct {
	ID              int64
	Name            string
	Price           decimal.Decimal
	DurationMinutes int
}

type Item struct {
	ServiceID       int64           `json:"serviceId"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"durationMinutes"`
	Quantity        int             `json:"quantity"`
}

// Draft is the serializable in-progress booking.
type Draft struct {
	Step          Step            `json:"step"`
	Services      []Item          `json:"services"`
	BarberID      int64           `json:"barberId,omitempty"`
	ChairID       int64           `json:"chairId,omitempty"`
	Date          string          `json:"date,omitempty"`
	Time          string          `json:"time,omitempty"`
	CustomerName  string          `json:"customerName,omitempty"`
	PhoneNumber   string          `json:"phoneNumber,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

func New() Draft {
	return Draft{Step: StepServices, Services: []Item{}, TotalAmount: decimal.Zero}
}

func (d Draft) clone() Draft {
	d.Services = slices.Clone(d.Services)
	return d
}

// Total is the sum of price x quantity over the selected services.
func (d Draft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.Services {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// DurationMinutes is the chair time the selected services need.
func (d Draft) DurationMinutes() int {
	minutes := 0
	for _, it := range d.Services {
		minutes += it.DurationMinutes * it.Quantity
	}
	return minutes
}

func (d Draft) Has(serviceID int64) bool {
	return slices.ContainsFunc(d.Services, func(it Item) bool { return it.ServiceID == serviceID })
}

func expect(d Draft, step Step) error {
	if d.Step != step {
		return fmt.Errorf("%w: draft is at %s, not %s", ErrWrongStep, d.Step, step)
	}
	return nil
}

// ToggleService adds svc with quantity 1, or removes it if already selected.
// The total is recomputed and any chosen time is dropped since the duration changed.
func ToggleService(d Draft, svc Service) (Draft, error) {
	if err := expect(d, StepServices); err != nil {
		return d, err
	}

	next := d.clone()
	if i := slices.IndexFunc(next.Services, func(it Item) bool { return it.ServiceID == svc.ID }); i >= 0 {
		next.Services = slices.Delete(next.Services, i, i+1)
	} else {
		next.Services = append(next.Services, Item{
			ServiceID:       svc.ID,
			Name:            svc.Name,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
			Quantity:        1,
		})
	}
	next.TotalAmount = next.Total()
	next.Time = ""
	return next, nil
}

func SelectBarber(d Draft, barberID int64) (Draft, error) {
	if err := expect(d, StepBarber); err != nil {
		return d, err
	}
	if barberID <= 0 {
		return d, &StepError{Step: StepBarber, Message: "Please select a barber"}
	}

	next := d.clone()
	if next.BarberID != barberID {
		next.Time = ""
	}
	next.BarberID = barberID
	return next, nil
}

func SelectChair(d Draft, chairID int64) (Draft, error) {
	if err := expect(d, StepChair); err != nil {
		return d, err
	}
	if chairID <= 0 {
		return d, &StepError{Step: StepChair, Message: "Please select a chair"}
	}

	next := d.clone()
	if next.ChairID != chairID {
		next.Time = ""
	}
	next.ChairID = chairID
	return next, nil
}

// SelectDate sets the day (YYYY-MM-DD) and clears any chosen time.
func SelectDate(d Draft, date string) (Draft, error) {
	if err := expect(d, StepDateTime); err != nil {
		return d, err
	}
	if _, err := time.Parse(slot.DateLayout, date); err != nil {
		return d, &StepError{Step: StepDateTime, Message: "Please select a valid date"}
	}

	next := d.clone()
	next.Date = date
	next.Time = ""
	return next, nil
}

// SelectTime accepts hhmm only if it is among the free slots reported for
// the draft's barber, chair and date.
func SelectTime(d Draft, hhmm string, free []string) (Draft, error) {
	if err := expect(d, StepDateTime); err != nil {
		return d, err
	}
	if d.Date == "" {
		return d, &StepError{Step: StepDateTime, Message: "Please select a date first"}
	}
	if !slices.Contains(free, hhmm) {
		return d, &StepError{Step: StepDateTime, Message: fmt.Sprintf("%s is not available, please pick another time", hhmm)}
	}

	next := d.clone()
	next.Time = hhmm
	return next, nil
}

func SetContact(d Draft, name, phone string) (Draft, error) {
	if err := expect(d, StepContact); err != nil {
		return d, err
	}

	next := d.clone()
	next.CustomerName = strings.TrimSpace(name)
	next.PhoneNumber = strings.TrimSpace(phone)
	return next, nil
}

func SelectPaymentMethod(d Draft, method string) (Draft, error) {
	if err := expect(d, StepPayment); err != nil {
		return d, err
	}
	if !entity.PaymentMethod(method).Valid() {
		return d, &StepError{Step: StepPayment, Message: "Please select a payment method"}
	}

	next := d.clone()
	next.PaymentMethod = method
	return next, nil
}

// Validate checks the fields owned by step.
func Validate(d Draft, step Step) error {
	var msg string
	switch step {
	case StepServices:
		if len(d.Services) == 0 {
			msg = "Please choose at least one service"
		}
	case StepBarber:
		if d.BarberID <= 0 {
			msg = "Please select a barber"
		}
	case StepChair:
		if d.ChairID <= 0 {
			msg = "Please select a chair"
		}
	case StepDateTime:
		if d.Date == "" || d.Time == "" {
			msg = "Please select date and time"
		}
	case StepContact:
		if strings.TrimSpace(d.CustomerName) == "" || strings.TrimSpace(d.PhoneNumber) == "" {
			msg = "Please enter your name and phone number"
		}
	case StepPayment:
		if d.PaymentMethod == "" {
			msg = "Please select a payment method"
		}
	default:
		return fmt.Errorf("unknown step %q", step)
	}

	if msg != "" {
		return &StepError{Step: step, Message: msg}
	}
	return nil
}

// Next advances one step once the current step validates.
func Next(d Draft) (Draft, error) {
	i := d.Step.index()
	if i < 0 {
		return d, fmt.Errorf("unknown step %q", d.Step)
	}
	if i == len(Steps)-1 {
		return d, ErrLastStep
	}
	if err := Validate(d, d.Step); err != nil {
		return d, err
	}

	next := d.clone()
	next.Step = Steps[i+1]
	return next, nil
}

// Back moves one step back; at the first step it is a no-op.
func Back(d Draft) Draft {
	next := d.clone()
	if i := d.Step.index(); i > 0 {
		next.Step = Steps[i-1]
	}
	return next
}

// BuildRequest assembles the finalize payload. Every step is re-validated
// so a draft edited out of band cannot slip through.
func BuildRequest(d Draft, grid slot.Grid) (*request.CreateBookingRequest, error) {
	if err := expect(d, StepPayment); err != nil {
		return nil, err
	}
	for _, step := range Steps {
		if err := Validate(d, step); err != nil {
			return nil, err
		}
	}

	day, err := grid.ParseDay(d.Date)
	if err != nil {
		return nil, &StepError{Step: StepDateTime, Message: "Please select a valid date"}
	}
	start, err := grid.At(day, d.Time)
	if err != nil {
		return nil, &StepError{Step: StepDateTime, Message: "Please select date and time"}
	}

	items := make([]request.BookingServiceItem, len(d.Services))
	for i, it := range d.Services {
		items[i] = request.BookingServiceItem{
			ServiceID: it.ServiceID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
	}

	return &request.CreateBookingRequest{
		BarberID:      d.BarberID,
		ChairID:       d.ChairID,
		BookingDate:   start.UTC().Format(time.RFC3339),
		PhoneNumber:   d.PhoneNumber,
		CustomerName:  d.CustomerName,
		TotalAmount:   d.Total(),
		PaymentMethod: d.PaymentMethod,
		PaymentStatus: "pending",
		Services:      items,
	}, nil
}
