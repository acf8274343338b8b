package adaptor

import (
	"context"

	"barber-booking/internal/dto/request"
	"barber-booking/internal/dto/response"

	"github.com/stretchr/testify/mock"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) GetBookingByReference(ctx context.Context, reference string) (*response.BookingResponse, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaginatedResponse[response.BookingResponse]), args.Error(1)
}

func (m *MockBookingService) GetBookingByID(ctx context.Context, id int64) (*response.BookingResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) CancelBooking(ctx context.Context, id int64) (*response.BookingResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) MarkPaid(ctx context.Context, id int64) (*response.BookingResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) ExpireHolds(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) CheckAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.AvailabilityResponse), args.Error(1)
}

type MockWizardService struct {
	mock.Mock
}

func (m *MockWizardService) wizard(args mock.Arguments) (*response.WizardResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.WizardResponse), args.Error(1)
}

func (m *MockWizardService) Start(ctx context.Context) (*response.WizardResponse, error) {
	return m.wizard(m.Called(ctx))
}

func (m *MockWizardService) Get(ctx context.Context, id string) (*response.WizardResponse, error) {
	return m.wizard(m.Called(ctx, id))
}

func (m *MockWizardService) Discard(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockWizardService) ToggleService(ctx context.Context, id string, serviceID int64) (*response.WizardResponse, error) {
	return m.wizard(m.Called(ctx, id, serviceID))
}

func (m *MockWizardService) SelectBarber(ctx context.Context, id string, req *request.SelectBarberRequest) (*response.WizardResponse, error) {
	return m.wizard(m.Called(ctx, id, req))
}

func (m *MockWizardService) SelectChair(ctx context.Context, id string, req *request.SelectChairRequest) (*response.WizardResponse, error) {
	return m.wizard(m.Called(ctx, id, req))
}

func (m *MockWizardService) SelectDate(ctx context.Context, id string, req *request.SelectDateRequest) (*response.WizardResponse, error) {
	return m.wizard(m.Called(ctx, id, req))
}

func (m *MockWizardService) SelectTime(ctx context.Context, id string, req *request.SelectTimeRequest) (*response.WizardResponse, error) {
	return m.wizard(m.Called(ctx, id, req))
}

func (m *MockWizardService) SetContact(ctx context.Context, id string, req *request.ContactRequest) (*response.WizardResponse, error) {
	return m.wizard(m.Called(ctx, id, req))
}

func (m *MockWizardService) SelectPaymentMethod(ctx context.Context, id string, req *request.PaymentMethodRequest) (*response.WizardResponse, error) {
	return m.wizard(m.Called(ctx, id, req))
}

func (m *MockWizardService) Next(ctx context.Context, id string) (*response.WizardResponse, error) {
	return m.wizard(m.Called(ctx, id))
}

func (m *MockWizardService) Back(ctx context.Context, id string) (*response.WizardResponse, error) {
	return m.wizard(m.Called(ctx, id))
}

func (m *MockWizardService) Slots(ctx context.Context, id string) (*response.AvailabilityResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.AvailabilityResponse), args.Error(1)
}

func (m *MockWizardService) Submit(ctx context.Context, id string) (*response.WizardSubmitResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.WizardSubmitResponse), args.Error(1)
}
