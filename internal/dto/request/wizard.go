package request

type SelectBarberRequest struct {
	BarberID int64 `json:"barberId" validate:"required,gt=0"`
}

type SelectChairRequest struct {
	ChairID int64 `json:"chairId" validate:"required,gt=0"`
}

type SelectDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type SelectTimeRequest struct {
	Time string `json:"time" validate:"required,datetime=15:04"`
}

// ContactRequest may carry blanks; the wizard refuses to advance until both are set.
type ContactRequest struct {
	CustomerName string `json:"customerName" validate:"max=100"`
	PhoneNumber  string `json:"phoneNumber" validate:"max=20"`
}

// PaymentMethodRequest is checked by the wizard itself so a bad value gets the step message.
type PaymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}
