package adaptor

import (
	"net/http"

	"barber-booking/internal/dto/request"
	"barber-booking/internal/dto/response"
	"barber-booking/internal/usecase"
	"barber-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WizardHandler struct {
	service usecase.WizardService
	log     *zap.Logger
}

func NewWizardHandler(service usecase.WizardService, log *zap.Logger) *WizardHandler {
	return &WizardHandler{
		service: service,
		log:     log.With(zap.String("handler", "wizard")),
	}
}

func wizardID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

func (h *WizardHandler) respond(w http.ResponseWriter, resp *response.WizardResponse, err error, operation string) {
	if err != nil {
		handleServiceError(w, h.log, err, operation)
		return
	}
	utils.ResponseSuccess(w, "success", resp)
}

// Start handles POST /api/wizard
func (h *WizardHandler) Start(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Start(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "start wizard")
		return
	}
	utils.ResponseCreated(w, "success", resp)
}

// Get handles GET /api/wizard/{id}
func (h *WizardHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Get(r.Context(), wizardID(r))
	h.respond(w, resp, err, "get wizard")
}

// Discard handles DELETE /api/wizard/{id}
func (h *WizardHandler) Discard(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Discard(r.Context(), wizardID(r)); err != nil {
		handleServiceError(w, h.log, err, "discard wizard")
		return
	}
	utils.ResponseSuccess(w, "Draft discarded", nil)
}

// ToggleService handles POST /api/wizard/{id}/services/{serviceId}
func (h *WizardHandler) ToggleService(w http.ResponseWriter, r *http.Request) {
	serviceID, err := utils.ParseID(chi.URLParam(r, "serviceId"))
	if err != nil {
		utils.ResponseBadRequest(w, "Service ID must be a positive integer", nil)
		return
	}

	resp, err := h.service.ToggleService(r.Context(), wizardID(r), serviceID)
	h.respond(w, resp, err, "toggle service")
}

// SelectBarber handles PUT /api/wizard/{id}/barber
func (h *WizardHandler) SelectBarber(w http.ResponseWriter, r *http.Request) {
	var req request.SelectBarberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.SelectBarber(r.Context(), wizardID(r), &req)
	h.respond(w, resp, err, "select barber")
}

// SelectChair handles PUT /api/wizard/{id}/chair
func (h *WizardHandler) SelectChair(w http.ResponseWriter, r *http.Request) {
	var req request.SelectChairRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.SelectChair(r.Context(), wizardID(r), &req)
	h.respond(w, resp, err, "select chair")
}

// SelectDate handles PUT /api/wizard/{id}/date
func (h *WizardHandler) SelectDate(w http.ResponseWriter, r *http.Request) {
	var req request.SelectDateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.SelectDate(r.Context(), wizardID(r), &req)
	h.respond(w, resp, err, "select date")
}

// SelectTime handles PUT /api/wizard/{id}/time
func (h *WizardHandler) SelectTime(w http.ResponseWriter, r *http.Request) {
	var req request.SelectTimeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.SelectTime(r.Context(), wizardID(r), &req)
	h.respond(w, resp, err, "select time")
}

// SetContact handles PUT /api/wizard/{id}/contact
func (h *WizardHandler) SetContact(w http.ResponseWriter, r *http.Request) {
	var req request.ContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.SetContact(r.Context(), wizardID(r), &req)
	h.respond(w, resp, err, "set contact")
}

// SelectPaymentMethod handles PUT /api/wizard/{id}/payment
func (h *WizardHandler) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentMethodRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.SelectPaymentMethod(r.Context(), wizardID(r), &req)
	h.respond(w, resp, err, "select payment method")
}

// Next handles POST /api/wizard/{id}/next
func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Next(r.Context(), wizardID(r))
	h.respond(w, resp, err, "wizard next")
}

// Back handles POST /api/wizard/{id}/back
func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Back(r.Context(), wizardID(r))
	h.respond(w, resp, err, "wizard back")
}

// Slots handles GET /api/wizard/{id}/slots
func (h *WizardHandler) Slots(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Slots(r.Context(), wizardID(r))
	if err != nil {
		handleServiceError(w, h.log, err, "wizard slots")
		return
	}
	utils.ResponseSuccess(w, "success", resp)
}

// Submit handles POST /api/wizard/{id}/submit
func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Submit(r.Context(), wizardID(r))
	if err != nil {
		handleServiceError(w, h.log, err, "submit wizard")
		return
	}
	utils.ResponseCreated(w, "Booking created", resp)
}
