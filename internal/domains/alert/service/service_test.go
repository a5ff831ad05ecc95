package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"trailguard/config"
	kafkaMocks "trailguard/infras/kafka/mocks"
	"trailguard/infras/otel/mocks"
	alertMocks "trailguard/internal/domains/alert/mocks"
	"trailguard/internal/domains/alert/model"
	"trailguard/internal/domains/alert/model/dto"
	"trailguard/internal/domains/alert/service"
	visitModel "trailguard/internal/domains/visit/model"
	cacheMocks "trailguard/shared/cache/mocks"
	pubsubMocks "trailguard/shared/pubsub/mocks"
	"trailguard/shared/timezone"
)

type alertServiceMocks struct {
	repo   *alertMocks.MockAlert
	cache  *cacheMocks.MockRedisCache
	kafka  *kafkaMocks.MockClient
	broker *pubsubMocks.MockBroker
}

func newService(t *testing.T) (service.Alert, alertServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := alertServiceMocks{
		repo:   alertMocks.NewMockAlert(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
		kafka:  kafkaMocks.NewMockClient(ctrl),
		broker: pubsubMocks.NewMockBroker(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topics.SafetyAlerts = "safety-alerts"

	// Cache writes and invalidations run on background goroutines.
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(m.repo, cfg, m.cache, m.kafka, m.broker, mocks.NewOtel()), m
}

func overdueVisit() visitModel.LocationVisit {
	return visitModel.LocationVisit{
		ID:                      "visit-1",
		TouristName:             "Budi Santoso",
		TouristPhone:            "+628123456789",
		LocationID:              "loc-1",
		LocationName:            "Sekumpul Waterfall",
		CheckInTime:             timezone.Now().Add(-3 * time.Hour),
		ExpectedDurationMinutes: 60,
		Status:                  visitModel.StatusOverdue,
	}
}

func TestAlertService_CreateOverdue(t *testing.T) {
	t.Run("persists and fans out", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, alert model.SafetyAlert) error {
				assert.Equal(t, "visit-1", alert.VisitID)
				assert.Equal(t, model.AlertTypeOverdue, alert.AlertType)
				assert.False(t, alert.Resolved)

				return nil
			})

		m.kafka.EXPECT().
			SendMessages(gomock.Any(), "safety-alerts", gomock.Any()).
			Return(nil)

		m.broker.EXPECT().
			Publish(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		alert, err := svc.CreateOverdue(context.Background(), overdueVisit())

		assert.NoError(t, err)
		assert.NotEmpty(t, alert.ID)
		assert.Equal(t, "Budi Santoso", alert.TouristName)
	})

	t.Run("kafka failure does not fail the alert", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		m.kafka.EXPECT().
			SendMessages(gomock.Any(), "safety-alerts", gomock.Any()).
			Return(errors.New("broker unreachable"))

		m.broker.EXPECT().
			Publish(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := svc.CreateOverdue(context.Background(), overdueVisit())

		assert.NoError(t, err)
	})

	t.Run("repository error", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		_, err := svc.CreateOverdue(context.Background(), overdueVisit())

		assert.Error(t, err)
	})
}

func TestAlertService_Resolve(t *testing.T) {
	storedAlert := model.SafetyAlert{
		ID:           "alert-1",
		VisitID:      "visit-1",
		TouristName:  "Budi Santoso",
		LocationName: "Sekumpul Waterfall",
		AlertTime:    timezone.Now().Add(-time.Hour),
		AlertType:    model.AlertTypeOverdue,
	}

	t.Run("successful resolve", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(storedAlert, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ any) error {
				assert.Equal(t, true, update[model.FieldResolved])
				assert.Equal(t, "found at the warung", update[model.FieldNotes])

				return nil
			})

		m.broker.EXPECT().
			Publish(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Resolve(context.Background(), "alert-1", dto.ResolveAlertRequest{Notes: "found at the warung"})

		assert.NoError(t, err)
	})

	t.Run("alert not found", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.SafetyAlert{}, nil)

		err := svc.Resolve(context.Background(), "missing-id", dto.ResolveAlertRequest{})

		assert.ErrorContains(t, err, "alert not found")
	})

	t.Run("already resolved", func(t *testing.T) {
		svc, m := newService(t)

		resolved := storedAlert
		resolved.Resolved = true

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(resolved, nil)

		err := svc.Resolve(context.Background(), "alert-1", dto.ResolveAlertRequest{})

		assert.ErrorContains(t, err, "alert is already resolved")
	})
}

func TestAlertService_Unresolved(t *testing.T) {
	svc, m := newService(t)

	m.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.SafetyAlert{
			{
				ID:        "alert-2",
				AlertTime: timezone.Now(),
				AlertType: model.AlertTypeOverdue,
			},
			{
				ID:        "alert-1",
				AlertTime: timezone.Now().Add(-time.Hour),
				AlertType: model.AlertTypeOverdue,
			},
		}, nil)

	res, err := svc.Unresolved(context.Background())

	assert.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, "alert-2", res[0].ID)
}

func TestAlertService_Subscribe(t *testing.T) {
	svc, m := newService(t)

	signals := make(chan string, 1)
	cancelled := false

	m.broker.EXPECT().
		Subscribe(gomock.Any(), gomock.Any()).
		Return((<-chan string)(signals), func() { cancelled = true })

	// One snapshot on subscribe, one per signal.
	m.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.SafetyAlert{{ID: "alert-1", AlertTime: timezone.Now()}}, nil).
		Times(2)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	feed, stop := svc.Subscribe(ctx)

	first, ok := <-feed
	assert.True(t, ok)
	assert.Len(t, first, 1)

	signals <- "alert-1"

	second, ok := <-feed
	assert.True(t, ok)
	assert.Equal(t, "alert-1", second[0].ID)

	close(signals)

	_, ok = <-feed
	assert.False(t, ok, "feed closes when the broker subscription ends")

	stop()
	assert.True(t, cancelled)
}

func TestAlertService_SubscribeInitialSnapshotFailure(t *testing.T) {
	svc, m := newService(t)

	signals := make(chan string, 1)

	m.broker.EXPECT().
		Subscribe(gomock.Any(), gomock.Any()).
		Return((<-chan string)(signals), func() {})

	// The snapshot on subscribe fails; the refresh on the next signal recovers.
	gomock.InOrder(
		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error")),
		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.SafetyAlert{{ID: "alert-1", AlertTime: timezone.Now()}}, nil),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	feed, stop := svc.Subscribe(ctx)
	defer stop()

	signals <- "alert-1"

	snapshot, ok := <-feed
	assert.True(t, ok, "feed stays open after a failed initial snapshot")
	assert.Equal(t, "alert-1", snapshot[0].ID)
}
