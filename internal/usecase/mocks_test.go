package usecase

import (
	"context"
	"time"

	"barber-booking/internal/data/entity"
	"barber-booking/internal/data/repository"
	"barber-booking/internal/dto/request"
	"barber-booking/internal/dto/response"
	"barber-booking/internal/slot"
	"barber-booking/internal/wizard"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Mock repositories
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) FindAllActive(ctx context.Context) ([]*entity.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Service), args.Error(1)
}

func (m *MockServiceRepository) FindByID(ctx context.Context, id int64) (*entity.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Service), args.Error(1)
}

func (m *MockServiceRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Service, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Service), args.Error(1)
}

type MockBarberRepository struct {
	mock.Mock
}

func (m *MockBarberRepository) FindAllActive(ctx context.Context) ([]*entity.Barber, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Barber), args.Error(1)
}

func (m *MockBarberRepository) FindByID(ctx context.Context, id int64) (*entity.Barber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Barber), args.Error(1)
}

type MockChairRepository struct {
	mock.Mock
}

func (m *MockChairRepository) FindAllActive(ctx context.Context) ([]*entity.Chair, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Chair), args.Error(1)
}

func (m *MockChairRepository) FindByID(ctx context.Context, id int64) (*entity.Chair, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Chair), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateWithItems(ctx context.Context, booking *entity.Booking, items []*entity.BookingItem, policy entity.Exclusivity, now time.Time) (*entity.Booking, error) {
	args := m.Called(ctx, booking, items, policy, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByReference(ctx context.Context, reference uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindActiveBetween(ctx context.Context, barberID, chairID int64, policy entity.Exclusivity, from, to, now time.Time) ([]*entity.Booking, error) {
	args := m.Called(ctx, barberID, chairID, policy, from, to, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, filter repository.BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) Count(ctx context.Context, filter repository.BookingFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) Transition(ctx context.Context, id int64, from, to repository.BookingState, now time.Time) (*entity.Booking, error) {
	args := m.Called(ctx, id, from, to, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) ExpireHolds(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockBookingItemRepository struct {
	mock.Mock
}

func (m *MockBookingItemRepository) FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.BookingItem, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BookingItem), args.Error(1)
}

func (m *MockBookingItemRepository) FindByBookingIDs(ctx context.Context, bookingIDs []int64) (map[int64][]*entity.BookingItem, error) {
	args := m.Called(ctx, bookingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]*entity.BookingItem), args.Error(1)
}

// MockDraftRepository keeps drafts in memory; calls are still recorded.
type MockDraftRepository struct {
	mock.Mock
	drafts map[string]wizard.Draft
}

func (m *MockDraftRepository) Save(ctx context.Context, id string, draft wizard.Draft, ttl time.Duration) error {
	args := m.Called(ctx, id, draft, ttl)
	if args.Error(0) == nil {
		m.drafts[id] = draft
	}
	return args.Error(0)
}

func (m *MockDraftRepository) Find(ctx context.Context, id string) (*wizard.Draft, error) {
	m.Called(ctx, id)
	d, ok := m.drafts[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *MockDraftRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	delete(m.drafts, id)
	return args.Error(0)
}

// Mock services used by the wizard
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

type mocks struct {
	services *MockServiceRepository
	barbers  *MockBarberRepository
	chairs   *MockChairRepository
	bookings *MockBookingRepository
	items    *MockBookingItemRepository
	drafts   *MockDraftRepository
}

func newMocks() (*mocks, *repository.Repository) {
	m := &mocks{
		services: new(MockServiceRepository),
		barbers:  new(MockBarberRepository),
		chairs:   new(MockChairRepository),
		bookings: new(MockBookingRepository),
		items:    new(MockBookingItemRepository),
		drafts:   &MockDraftRepository{drafts: map[string]wizard.Draft{}},
	}
	m.drafts.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.drafts.On("Find", mock.Anything, mock.Anything).Return()
	m.drafts.On("Delete", mock.Anything, mock.Anything).Return(nil)

	return m, &repository.Repository{
		Service:     m.services,
		Barber:      m.barbers,
		Chair:       m.chairs,
		Booking:     m.bookings,
		BookingItem: m.items,
		Draft:       m.drafts,
	}
}

var ist = time.FixedZone("IST", 5*3600+30*60)

// testNow is 08:00 shop time on 10 March 2026.
var testNow = time.Date(2026, 3, 10, 8, 0, 0, 0, ist)

func testRules() Rules {
	return Rules{
		Grid: slot.Grid{
			Location:     ist,
			OpenHour:     7,
			LastSlotHour: 20,
			SlotMinutes:  60,
			HorizonDays:  30,
		},
		Exclusivity: entity.ExclusiveEither,
		UPIHold:     30 * time.Minute,
		WizardTTL:   time.Hour,
		Now:         func() time.Time { return testNow },
	}
}

func activeBarber(id int64) *entity.Barber {
	return &entity.Barber{Base: entity.Base{ID: id}, Name: "Barber", IsActive: true}
}

func activeChair(id int64) *entity.Chair {
	return &entity.Chair{Base: entity.Base{ID: id}, Name: "Chair", IsActive: true}
}

var testLogger = zap.NewNop()
