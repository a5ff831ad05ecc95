package watchdog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"trailguard/config"
	"trailguard/infras/otel/mocks"
	alertModel "trailguard/internal/domains/alert/model"
	visitModel "trailguard/internal/domains/visit/model"
	"trailguard/internal/watchdog"
	watchdogMocks "trailguard/internal/watchdog/mocks"
	"trailguard/shared/timezone"
)

func newWatchdog(t *testing.T, interval int) (*watchdog.Watchdog, *watchdogMocks.MockVisitSweeper, *watchdogMocks.MockAlertRaiser) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockVisits := watchdogMocks.NewMockVisitSweeper(ctrl)
	mockAlerts := watchdogMocks.NewMockAlertRaiser(ctrl)

	cfg := &config.Config{}
	cfg.Tracking.SweepIntervalMinutes = interval

	return watchdog.New(mockVisits, mockAlerts, cfg, mocks.NewOtel()), mockVisits, mockAlerts
}

// visitAgo builds an open visit checked in the given duration before now.
func visitAgo(id string, ago time.Duration, durationMinutes int) visitModel.LocationVisit {
	return visitModel.LocationVisit{
		ID:                      id,
		TouristName:             "Budi Santoso",
		TouristPhone:            "+628123456789",
		LocationID:              "loc-1",
		LocationName:            "Sekumpul Waterfall",
		CheckInTime:             timezone.Now().Add(-ago),
		ExpectedDurationMinutes: durationMinutes,
		Status:                  visitModel.StatusCheckedIn,
	}
}

func TestWatchdog_Interval(t *testing.T) {
	wd, _, _ := newWatchdog(t, 10)
	assert.Equal(t, 10*time.Minute, wd.Interval())

	wd, _, _ = newWatchdog(t, 0)
	assert.Equal(t, 5*time.Minute, wd.Interval())
}

func TestWatchdog_Sweep(t *testing.T) {
	t.Run("raises an alert for an overdue visit", func(t *testing.T) {
		wd, mockVisits, mockAlerts := newWatchdog(t, 5)

		// Expected back an hour ago, well past the grace window.
		overdue := visitAgo("visit-1", 2*time.Hour, 60)

		mockVisits.EXPECT().
			OpenVisits(gomock.Any()).
			Return([]visitModel.LocationVisit{overdue}, nil)

		mockVisits.EXPECT().
			MarkOverdue(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, visit *visitModel.LocationVisit) error {
				return visit.MarkOverdue()
			})

		mockAlerts.EXPECT().
			CreateOverdue(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, visit visitModel.LocationVisit) (alertModel.SafetyAlert, error) {
				assert.Equal(t, "visit-1", visit.ID)
				assert.Equal(t, visitModel.StatusOverdue, visit.Status)

				return alertModel.SafetyAlert{ID: "alert-1", VisitID: visit.ID}, nil
			})

		mockVisits.EXPECT().
			MarkAlertSent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, visit *visitModel.LocationVisit) error {
				return visit.MarkAlertSent()
			})

		assert.NoError(t, wd.Sweep(context.Background()))
	})

	t.Run("leaves visits inside the grace window alone", func(t *testing.T) {
		wd, mockVisits, _ := newWatchdog(t, 5)

		// Ten minutes past the deadline, inside the fifteen minute grace.
		inGrace := visitAgo("visit-1", 70*time.Minute, 60)

		mockVisits.EXPECT().
			OpenVisits(gomock.Any()).
			Return([]visitModel.LocationVisit{inGrace}, nil)

		assert.NoError(t, wd.Sweep(context.Background()))
	})

	t.Run("one failing visit does not stop the pass", func(t *testing.T) {
		wd, mockVisits, mockAlerts := newWatchdog(t, 5)

		first := visitAgo("visit-1", 3*time.Hour, 60)
		second := visitAgo("visit-2", 3*time.Hour, 60)

		mockVisits.EXPECT().
			OpenVisits(gomock.Any()).
			Return([]visitModel.LocationVisit{first, second}, nil)

		gomock.InOrder(
			mockVisits.EXPECT().
				MarkOverdue(gomock.Any(), gomock.Any()).
				Return(errors.New("database error")),
			mockVisits.EXPECT().
				MarkOverdue(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, visit *visitModel.LocationVisit) error {
					assert.Equal(t, "visit-2", visit.ID)

					return visit.MarkOverdue()
				}),
		)

		mockAlerts.EXPECT().
			CreateOverdue(gomock.Any(), gomock.Any()).
			Return(alertModel.SafetyAlert{ID: "alert-2"}, nil)

		mockVisits.EXPECT().
			MarkAlertSent(gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, wd.Sweep(context.Background()))
	})

	t.Run("listing failure aborts the pass", func(t *testing.T) {
		wd, mockVisits, _ := newWatchdog(t, 5)

		mockVisits.EXPECT().
			OpenVisits(gomock.Any()).
			Return(nil, errors.New("database error"))

		assert.Error(t, wd.Sweep(context.Background()))
	})

	t.Run("skips visits already swept", func(t *testing.T) {
		wd, mockVisits, _ := newWatchdog(t, 5)

		alerted := visitAgo("visit-1", 3*time.Hour, 60)
		alerted.Status = visitModel.StatusAlertSent

		mockVisits.EXPECT().
			OpenVisits(gomock.Any()).
			Return([]visitModel.LocationVisit{alerted}, nil)

		assert.NoError(t, wd.Sweep(context.Background()))
	})
}

func TestWatchdog_StopIsIdempotent(t *testing.T) {
	wd, mockVisits, _ := newWatchdog(t, 5)

	mockVisits.EXPECT().
		OpenVisits(gomock.Any()).
		Return([]visitModel.LocationVisit{}, nil).
		AnyTimes()

	wd.Start(context.Background())

	wd.Stop()
	wd.Stop()
}
