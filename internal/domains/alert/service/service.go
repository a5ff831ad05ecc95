package service

import (
	"context"
	"fmt"
	"trailguard/config"
	"trailguard/infras/kafka"
	"trailguard/infras/otel"
	"trailguard/internal/domains/alert/model"
	"trailguard/internal/domains/alert/model/dto"
	"trailguard/internal/domains/alert/repository"
	visitModel "trailguard/internal/domains/visit/model"
	"trailguard/shared"
	"trailguard/shared/cache"
	"trailguard/shared/constant"
	gDto "trailguard/shared/dto"
	"trailguard/shared/failure"
	"trailguard/shared/pubsub"
	"trailguard/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAlert    = "alert:get"
	cacheGetAllAlert = "alert:gets"
	cacheCountAlert  = "alert:count"

	// feedChannel carries change signals for the unresolved alert feed.
	// Subscribers re-read their snapshot on every signal.
	feedChannel = "alerts:feed"
)

type Alert interface {
	CreateOverdue(ctx context.Context, visit visitModel.LocationVisit) (model.SafetyAlert, error)
	Unresolved(ctx context.Context) ([]dto.AlertResponse, error)
	Resolve(ctx context.Context, id string, req dto.ResolveAlertRequest) error
	Subscribe(ctx context.Context) (<-chan []dto.AlertResponse, func())
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAlertsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.AlertResponse, error)
}

type serviceImpl struct {
	repo   repository.Alert
	cfg    *config.Config
	cache  cache.RedisCache
	kafka  kafka.Client
	broker pubsub.Broker
	otel   otel.Otel
}

func New(repo repository.Alert, cfg *config.Config, cache cache.RedisCache, kafkaClient kafka.Client, broker pubsub.Broker, otel otel.Otel) Alert {
	return &serviceImpl{
		repo:   repo,
		cfg:    cfg,
		cache:  cache,
		kafka:  kafkaClient,
		broker: broker,
		otel:   otel,
	}
}

// CreateOverdue persists the alert for an overdue visit and fans it out to
// the Kafka topic and the live feed. Fan-out failures are logged but never
// fail the operation; the persisted alert is the source of truth.
func (s *serviceImpl) CreateOverdue(ctx context.Context, visit visitModel.LocationVisit) (alert model.SafetyAlert, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateOverdue")
	defer scope.End()
	defer scope.TraceIfError(err)

	alert = model.NewOverdueAlert(visit, timezone.Now())

	if err = s.repo.Insert(ctx, alert); err != nil {
		log.Error().Err(err).Str("visitID", visit.ID).Msg("failed to create alert")

		return alert, fmt.Errorf("failed to create alert: %w", err)
	}

	var res dto.AlertResponse
	res.FromModel(alert)

	if err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.SafetyAlerts, kafka.Message{
		Key:   alert.ID,
		Value: res,
	}); err != nil {
		log.Error().Err(err).Str("alertID", alert.ID).Msg("failed to publish alert to kafka")
	}

	s.signalFeed(ctx, alert.ID)
	s.invalidateAlert(ctx, alert.ID)

	return alert, nil
}

func (s *serviceImpl) Unresolved(ctx context.Context) (res []dto.AlertResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Unresolved")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldResolved,
				Value:    false,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	// Always read through to the store; this list backs the live feed.
	alerts, err := s.repo.GetAll(ctx, gDto.QueryParams{
		SortBy:  model.FieldAlertTime,
		SortDir: gDto.SortDirDesc,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get unresolved alerts")

		return res, fmt.Errorf("failed to get unresolved alerts: %w", err)
	}

	res = make([]dto.AlertResponse, len(alerts))
	for i, alert := range alerts {
		res[i].FromModel(alert)
	}

	return res, nil
}

func (s *serviceImpl) Resolve(ctx context.Context, id string, req dto.ResolveAlertRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	alert, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get alert")

		return fmt.Errorf("failed to get alert: %w", err)
	}

	if alert.ID == constant.Empty {
		return failure.NotFound("alert not found") // nolint:wrapcheck
	}

	if alert.Resolved {
		return failure.Conflict("alert is already resolved") // nolint:wrapcheck
	}

	alert.Resolve(timezone.Now(), req.Notes)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	update := map[string]any{
		model.FieldResolved:      alert.Resolved,
		model.FieldResolvedTime:  alert.ResolvedTime,
		model.FieldNotes:         alert.Notes,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, update, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to resolve alert")

		return fmt.Errorf("failed to resolve alert: %w", err)
	}

	s.signalFeed(ctx, id)
	s.invalidateAlert(ctx, id)

	return nil
}

// Subscribe delivers the current unresolved snapshot immediately, then a
// fresh snapshot on every feed signal, until cancel is called or the context
// is done.
func (s *serviceImpl) Subscribe(ctx context.Context) (<-chan []dto.AlertResponse, func()) {
	signals, cancel := s.broker.Subscribe(ctx, feedChannel)
	out := make(chan []dto.AlertResponse, 1)

	go func() {
		defer close(out)

		snapshot, err := s.Unresolved(ctx)
		if err != nil {
			log.Error().Err(err).Msg("failed to load initial alert feed snapshot")
		} else {
			select {
			case out <- snapshot:
			case <-ctx.Done():
				return
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-signals:
				if !ok {
					return
				}

				snapshot, err := s.Unresolved(ctx)
				if err != nil {
					log.Error().Err(err).Msg("failed to refresh alert feed snapshot")

					continue
				}

				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, cancel
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAlertsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAlert, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for alerts")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count alerts")

		return res, fmt.Errorf("failed to count alerts: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get alerts")

		return res, fmt.Errorf("failed to get alerts: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save alerts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountAlert, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for alert count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count alerts")

		return res, fmt.Errorf("failed to count alerts: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save alert count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AlertResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAlert, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for alert")

		return res, nil
	}

	alert, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get alert")

		return res, fmt.Errorf("failed to get alert: %w", err)
	}

	if alert.ID == constant.Empty {
		return res, failure.NotFound("alert not found") // nolint:wrapcheck
	}

	res.FromModel(alert)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save alert to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) signalFeed(ctx context.Context, alertID string) {
	if err := s.broker.Publish(ctx, feedChannel, alertID); err != nil {
		log.Error().Err(err).Str("alertID", alertID).Msg("failed to signal alert feed")
	}
}

func (s *serviceImpl) invalidateAlert(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAlert, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete alert from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAlert)
		shared.InvalidateCaches(c, s.cache, cacheCountAlert)
	}()
}
