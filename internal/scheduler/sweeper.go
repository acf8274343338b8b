package scheduler

import (
	"context"
	"fmt"
	"time"

	"barber-booking/internal/usecase"

	cron "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper periodically cancels UPI bookings whose payment hold lapsed,
// freeing their slots.
type Sweeper struct {
	cron     *cron.Cron
	bookings usecase.BookingService
	timeout  time.Duration
	log      *zap.Logger
}

// NewSweeper registers the sweep on schedule (standard cron spec or
// descriptors such as "@every 1m").
func NewSweeper(schedule string, bookings usecase.BookingService, log *zap.Logger) (*Sweeper, error) {
	s := &Sweeper{
		cron:     cron.New(),
		bookings: bookings,
		timeout:  30 * time.Second,
		log:      log.With(zap.String("job", "hold_sweeper")),
	}

	if _, err := s.cron.AddFunc(schedule, s.Sweep); err != nil {
		return nil, fmt.Errorf("schedule hold sweeper %q: %w", schedule, err)
	}

	return s, nil
}

func (s *Sweeper) Start() {
	s.cron.Start()
	s.log.Info("Hold sweeper started")
}

// Stop waits for a running sweep to finish or ctx to end.
func (s *Sweeper) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
	s.log.Info("Hold sweeper stopped")
}

// Sweep runs one pass.
func (s *Sweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.bookings.ExpireHolds(ctx)
	if err != nil {
		s.log.Error("Hold sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("Hold sweep released bookings", zap.Int64("released", n))
	}
}
