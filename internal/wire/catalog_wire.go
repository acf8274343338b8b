package wire

import (
	"barber-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	r.Get("/api/services", catalogHandler.ListServices)
	r.Get("/api/barbers", catalogHandler.ListBarbers)
	r.Get("/api/chairs", catalogHandler.ListChairs)
}
