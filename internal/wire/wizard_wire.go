package wire

import (
	"barber-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireWizard(r chi.Router, wizardHandler *adaptor.WizardHandler) {
	r.Route("/api/wizard", func(r chi.Router) {
		r.Post("/", wizardHandler.Start)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", wizardHandler.Get)
			r.Delete("/", wizardHandler.Discard)

			r.Post("/services/{serviceId}", wizardHandler.ToggleService)
			r.Put("/barber", wizardHandler.SelectBarber)
			r.Put("/chair", wizardHandler.SelectChair)
			r.Put("/date", wizardHandler.SelectDate)
			r.Put("/time", wizardHandler.SelectTime)
			r.Put("/contact", wizardHandler.SetContact)
			r.Put("/payment", wizardHandler.SelectPaymentMethod)

			r.Get("/slots", wizardHandler.Slots)
			r.Post("/next", wizardHandler.Next)
			r.Post("/back", wizardHandler.Back)
			r.Post("/submit", wizardHandler.Submit)
		})
	})
}
