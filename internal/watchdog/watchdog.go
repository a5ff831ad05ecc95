package watchdog

//go:generate go run go.uber.org/mock/mockgen -source=./watchdog.go -destination=./mocks/watchdog_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sync"
	"time"
	"trailguard/config"
	"trailguard/infras/otel"
	alertModel "trailguard/internal/domains/alert/model"
	visitModel "trailguard/internal/domains/visit/model"
	"trailguard/shared/constant"
	"trailguard/shared/timezone"

	"github.com/rs/zerolog/log"
)

// VisitSweeper is the slice of the visit service the watchdog drives.
type VisitSweeper interface {
	OpenVisits(ctx context.Context) ([]visitModel.LocationVisit, error)
	MarkOverdue(ctx context.Context, visit *visitModel.LocationVisit) error
	MarkAlertSent(ctx context.Context, visit *visitModel.LocationVisit) error
}

// AlertRaiser raises the single alert for an overdue visit.
type AlertRaiser interface {
	CreateOverdue(ctx context.Context, visit visitModel.LocationVisit) (alertModel.SafetyAlert, error)
}

// Watchdog is the one authoritative sweep job for the whole deployment. It
// runs server-side only, so no two sweeps race over the same visit set.
type Watchdog struct {
	visits   VisitSweeper
	alerts   AlertRaiser
	cfg      *config.Config
	otel     otel.Otel
	done     chan struct{}
	stopOnce sync.Once
}

func New(visits VisitSweeper, alerts AlertRaiser, cfg *config.Config, otel otel.Otel) *Watchdog {
	return &Watchdog{
		visits: visits,
		alerts: alerts,
		cfg:    cfg,
		otel:   otel,
		done:   make(chan struct{}),
	}
}

// Start sweeps once immediately, then on every tick until Stop is called or
// the context is done.
func (w *Watchdog) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *Watchdog) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
	})
}

func (w *Watchdog) run(ctx context.Context) {
	interval := w.Interval()

	log.Info().Dur("interval", interval).Msg("overdue watchdog started")

	if err := w.Sweep(ctx); err != nil {
		log.Error().Err(err).Msg("overdue sweep failed")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("overdue watchdog stopped")

			return
		case <-w.done:
			log.Info().Msg("overdue watchdog stopped")

			return
		case <-ticker.C:
			// A failed pass logs and waits for the next tick.
			if err := w.Sweep(ctx); err != nil {
				log.Error().Err(err).Msg("overdue sweep failed")
			}
		}
	}
}

// Interval is the configured sweep cadence, defaulting to five minutes.
func (w *Watchdog) Interval() time.Duration {
	minutes := w.cfg.Tracking.SweepIntervalMinutes
	if minutes <= 0 {
		minutes = constant.DefaultSweepIntervalMinutes
	}

	return time.Duration(minutes) * time.Minute
}

// Sweep scans every open visit and walks each overdue one through
// overdue -> alert raised -> alert-sent. A failure on one visit never stops
// the pass; the alert-sent status gate keeps a retried visit from alerting
// twice.
func (w *Watchdog) Sweep(ctx context.Context) (err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelWatchdogScopeName, constant.OtelWatchdogScopeName+".Sweep")
	defer scope.End()
	defer scope.TraceIfError(err)

	visits, err := w.visits.OpenVisits(ctx)
	if err != nil {
		return fmt.Errorf("failed to list open visits: %w", err)
	}

	now := timezone.Now()

	for i := range visits {
		visit := &visits[i]

		if !visit.Overdue(now) {
			continue
		}

		if err := w.sweepVisit(ctx, visit); err != nil {
			log.Error().Err(err).Str("visitID", visit.ID).Msg("failed to process overdue visit")
		}
	}

	return nil
}

func (w *Watchdog) sweepVisit(ctx context.Context, visit *visitModel.LocationVisit) error {
	if err := w.visits.MarkOverdue(ctx, visit); err != nil {
		return fmt.Errorf("failed to mark visit overdue: %w", err)
	}

	alert, err := w.alerts.CreateOverdue(ctx, *visit)
	if err != nil {
		return fmt.Errorf("failed to raise alert: %w", err)
	}

	if err := w.visits.MarkAlertSent(ctx, visit); err != nil {
		return fmt.Errorf("failed to mark alert sent: %w", err)
	}

	log.Info().
		Str("visitID", visit.ID).
		Str("alertID", alert.ID).
		Str("location", visit.LocationName).
		Msg("raised overdue alert")

	return nil
}
