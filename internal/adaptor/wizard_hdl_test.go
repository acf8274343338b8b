package adaptor

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"barber-booking/internal/dto/request"
	"barber-booking/internal/dto/response"
	"barber-booking/internal/usecase"
	"barber-booking/internal/wizard"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func wizardRouter(svc usecase.WizardService) *chi.Mux {
	h := NewWizardHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/wizard", h.Start)
	r.Route("/api/wizard/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Discard)
		r.Post("/services/{serviceId}", h.ToggleService)
		r.Put("/barber", h.SelectBarber)
		r.Put("/time", h.SelectTime)
		r.Put("/payment", h.SelectPaymentMethod)
		r.Get("/slots", h.Slots)
		r.Post("/next", h.Next)
		r.Post("/back", h.Back)
		r.Post("/submit", h.Submit)
	})
	return r
}

func TestWizardHandler_Start(t *testing.T) {
	svc := new(MockWizardService)
	svc.On("Start", mock.Anything).Return(&response.WizardResponse{ID: "w1", Step: wizard.StepServices, Draft: wizard.New()}, nil)

	w := httptest.NewRecorder()
	wizardRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/wizard", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, string(decodeEnvelope(t, w).Data), `"step":"services"`)
}

func TestWizardHandler_ToggleService(t *testing.T) {
	svc := new(MockWizardService)
	svc.On("ToggleService", mock.Anything, "w1", int64(3)).Return(&response.WizardResponse{ID: "w1", Step: wizard.StepServices}, nil)

	router := wizardRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/wizard/w1/services/3", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/wizard/w1/services/x", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWizardHandler_Next_StepError(t *testing.T) {
	svc := new(MockWizardService)
	svc.On("Next", mock.Anything, "w1").
		Return(nil, &wizard.StepError{Step: wizard.StepServices, Message: "Please choose at least one service"})

	w := httptest.NewRecorder()
	wizardRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/wizard/w1/next", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Please choose at least one service", env.Message)
	assert.JSONEq(t, `{"step":"services"}`, string(env.Errors))
}

func TestWizardHandler_WrongStep(t *testing.T) {
	svc := new(MockWizardService)
	svc.On("SelectBarber", mock.Anything, "w1", &request.SelectBarberRequest{BarberID: 1}).
		Return(nil, fmt.Errorf("%w: draft is at services, not barber", wizard.ErrWrongStep))

	w := httptest.NewRecorder()
	wizardRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/wizard/w1/barber", strings.NewReader(`{"barberId":1}`)))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWizardHandler_Expired(t *testing.T) {
	svc := new(MockWizardService)
	svc.On("Get", mock.Anything, "old").Return(nil, fmt.Errorf("%w: wizard session old not found or expired", usecase.ErrNotFound))

	w := httptest.NewRecorder()
	wizardRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/wizard/old", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWizardHandler_SelectTime_BadBody(t *testing.T) {
	svc := new(MockWizardService)

	w := httptest.NewRecorder()
	wizardRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/wizard/w1/time", strings.NewReader(`"10:00"`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "SelectTime", mock.Anything, mock.Anything, mock.Anything)
}

func TestWizardHandler_Submit(t *testing.T) {
	svc := new(MockWizardService)
	svc.On("Submit", mock.Anything, "w1").Return(&response.WizardSubmitResponse{ID: "w1", Booking: response.BookingResponse{ID: 42}}, nil)
	svc.On("Submit", mock.Anything, "w2").Return(nil, &usecase.ConflictError{Resource: "chair", ResourceID: 2, BookingID: 8})

	router := wizardRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/wizard/w1/submit", nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/wizard/w2/submit", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, string(decodeEnvelope(t, w).Errors), `"resource":"chair"`)
}

func TestWizardHandler_Discard(t *testing.T) {
	svc := new(MockWizardService)
	svc.On("Discard", mock.Anything, "w1").Return(nil)

	w := httptest.NewRecorder()
	wizardRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/wizard/w1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
