package adaptor

import (
	"net/http"

	"barber-booking/internal/usecase"
	"barber-booking/pkg/utils"

	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListServices handles GET /api/services
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.ListServices(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// ListBarbers handles GET /api/barbers
func (h *CatalogHandler) ListBarbers(w http.ResponseWriter, r *http.Request) {
	barbers, err := h.service.ListBarbers(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list barbers")
		return
	}

	utils.ResponseSuccess(w, "success", barbers)
}

// ListChairs handles GET /api/chairs
func (h *CatalogHandler) ListChairs(w http.ResponseWriter, r *http.Request) {
	chairs, err := h.service.ListChairs(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list chairs")
		return
	}

	utils.ResponseSuccess(w, "success", chairs)
}
