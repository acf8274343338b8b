package wire

import (
	"fmt"
	"net/http"

	"barber-booking/internal/adaptor"
	"barber-booking/internal/data/repository"
	"barber-booking/internal/scheduler"
	"barber-booking/internal/usecase"
	"barber-booking/pkg/middleware"
	"barber-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the HTTP router and background jobs.
type App struct {
	Router  *chi.Mux
	Sweeper *scheduler.Sweeper
}

// Wiring builds services, handlers and routes from the repositories.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) (*App, error) {
	rules, err := usecase.NewRules(config.Shop)
	if err != nil {
		return nil, fmt.Errorf("shop rules: %w", err)
	}

	service := usecase.NewService(repo, rules, logger)
	handler := adaptor.NewHandler(service, logger)

	sweeper, err := scheduler.NewSweeper(config.Scheduler.SweepSchedule, service.Booking, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		Router:  setupRouter(handler, config, logger),
		Sweeper: sweeper,
	}, nil
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))
	if config.App.RequestTimeout > 0 {
		r.Use(chimw.Timeout(config.App.RequestTimeout))
	}

	wireCatalog(r, handler.Catalog)
	wireBooking(r, handler.Availability, handler.Booking, config, logger)
	wireWizard(r, handler.Wizard)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
