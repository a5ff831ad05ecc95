package service

import (
	"context"
	"errors"
	"fmt"
	"trailguard/config"
	"trailguard/infras/otel"
	locationModel "trailguard/internal/domains/location/model"
	"trailguard/internal/domains/visit/model"
	"trailguard/internal/domains/visit/model/dto"
	"trailguard/internal/domains/visit/repository"
	"trailguard/shared"
	"trailguard/shared/cache"
	"trailguard/shared/constant"
	gDto "trailguard/shared/dto"
	"trailguard/shared/failure"
	"trailguard/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetVisit    = "visit:get"
	cacheGetAllVisit = "visit:gets"
	cacheCountVisit  = "visit:count"
)

type Visit interface {
	CheckIn(ctx context.Context, req dto.CheckInRequest) (dto.CheckInResponse, error)
	CheckOut(ctx context.Context, req dto.CheckOutRequest) error
	ActiveCheckIns(ctx context.Context, touristPhone string) ([]dto.VisitResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetVisitsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.VisitResponse, error)
	OpenVisits(ctx context.Context) ([]model.LocationVisit, error)
	MarkOverdue(ctx context.Context, visit *model.LocationVisit) error
	MarkAlertSent(ctx context.Context, visit *model.LocationVisit) error
}

type serviceImpl struct {
	repo  repository.Visit
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Visit, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Visit {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) CheckIn(ctx context.Context, req dto.CheckInRequest) (res dto.CheckInResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	payload, err := locationModel.ParseQRPayload(req.QRCode)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse QR payload")

		return res, failure.BadRequestFromString("invalid QR code") // nolint:wrapcheck
	}

	if payload.Type != locationModel.QRTypeCheckIn {
		return res, failure.BadRequestFromString("QR code is not a check-in code") // nolint:wrapcheck
	}

	// Reject a second open visit for the same tourist and location up front.
	// The partial unique index on the table backs this up under concurrency.
	open, err := s.repo.Exist(ctx, openVisitFilter(req.TouristPhone, payload.LocationID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check for open visit")

		return res, fmt.Errorf("failed to check for open visit: %w", err)
	}

	if open {
		return res, failure.Conflict("an open check-in already exists for this location") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	visit := req.ToModel(payload, user)

	if err = s.repo.Insert(ctx, visit); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return res, failure.Conflict("an open check-in already exists for this location") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create visit")

		return res, fmt.Errorf("failed to create visit: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllVisit)
		shared.InvalidateCaches(c, s.cache, cacheCountVisit)
	}()

	res.ID = visit.ID

	return res, nil
}

func (s *serviceImpl) CheckOut(ctx context.Context, req dto.CheckOutRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	payload, err := locationModel.ParseQRPayload(req.QRCode)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse QR payload")

		return failure.BadRequestFromString("invalid QR code") // nolint:wrapcheck
	}

	if payload.Type != locationModel.QRTypeCheckOut {
		return failure.BadRequestFromString("QR code is not a check-out code") // nolint:wrapcheck
	}

	// The most recent open visit is the one being closed.
	visits, err := s.repo.GetAll(ctx, gDto.QueryParams{
		Page:    1,
		Limit:   1,
		SortBy:  model.FieldCheckInTime,
		SortDir: gDto.SortDirDesc,
	}, openVisitFilter(req.TouristPhone, payload.LocationID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get open visit")

		return fmt.Errorf("failed to get open visit: %w", err)
	}

	if len(visits) == 0 {
		return failure.NotFound("no active check-in found for this location") // nolint:wrapcheck
	}

	visit := visits[0]
	if err = visit.CheckOut(timezone.Now()); err != nil {
		return failure.Conflict(err.Error()) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	update := map[string]any{
		model.FieldStatus:        visit.Status,
		model.FieldCheckOutTime:  visit.CheckOutTime,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, update, shared.FilterByID(visit.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to close visit")

		return fmt.Errorf("failed to close visit: %w", err)
	}

	s.invalidateVisit(ctx, visit.ID)

	return nil
}

func (s *serviceImpl) ActiveCheckIns(ctx context.Context, touristPhone string) (res []dto.VisitResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ActiveCheckIns")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTouristPhone,
				Value:    touristPhone,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusCheckedIn,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	// Served straight from the store so a tourist always sees their current
	// open visits, even right after a check-out.
	visits, err := s.repo.GetAll(ctx, gDto.QueryParams{
		SortBy:  model.FieldCheckInTime,
		SortDir: gDto.SortDirDesc,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get active check-ins")

		return res, fmt.Errorf("failed to get active check-ins: %w", err)
	}

	res = make([]dto.VisitResponse, len(visits))
	for i, visit := range visits {
		res[i].FromModel(visit)
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetVisitsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllVisit, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for visits")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count visits")

		return res, fmt.Errorf("failed to count visits: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get visits")

		return res, fmt.Errorf("failed to get visits: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save visits to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountVisit, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for visit count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count visits")

		return res, fmt.Errorf("failed to count visits: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save visit count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.VisitResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetVisit, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for visit")

		return res, nil
	}

	visit, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get visit")

		return res, fmt.Errorf("failed to get visit: %w", err)
	}

	if visit.ID == constant.Empty {
		return res, failure.NotFound("visit not found") // nolint:wrapcheck
	}

	res.FromModel(visit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save visit to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) OpenVisits(ctx context.Context) (res []model.LocationVisit, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".OpenVisits")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusCheckedIn,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	res, err = s.repo.GetAll(ctx, gDto.QueryParams{
		SortBy:  model.FieldCheckInTime,
		SortDir: gDto.SortDirAsc,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get open visits")

		return res, fmt.Errorf("failed to get open visits: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) MarkOverdue(ctx context.Context, visit *model.LocationVisit) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkOverdue")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = visit.MarkOverdue(); err != nil {
		return fmt.Errorf("failed to mark visit overdue: %w", err)
	}

	return s.writeStatus(ctx, visit)
}

func (s *serviceImpl) MarkAlertSent(ctx context.Context, visit *model.LocationVisit) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkAlertSent")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = visit.MarkAlertSent(); err != nil {
		return fmt.Errorf("failed to mark alert sent: %w", err)
	}

	return s.writeStatus(ctx, visit)
}

func (s *serviceImpl) writeStatus(ctx context.Context, visit *model.LocationVisit) error {
	update := map[string]any{
		model.FieldStatus:        visit.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: constant.ContextSystem,
	}

	if err := s.repo.Update(ctx, update, shared.FilterByID(visit.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("visitID", visit.ID).Msg("failed to update visit status")

		return fmt.Errorf("failed to update visit status: %w", err)
	}

	s.invalidateVisit(ctx, visit.ID)

	return nil
}

func (s *serviceImpl) invalidateVisit(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetVisit, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete visit from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllVisit)
		shared.InvalidateCaches(c, s.cache, cacheCountVisit)
	}()
}

func openVisitFilter(touristPhone, locationID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTouristPhone,
				Value:    touristPhone,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldLocationID,
				Value:    locationID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusCheckedIn,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}
