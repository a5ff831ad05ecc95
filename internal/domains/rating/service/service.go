package service

import (
	"context"
	"errors"
	"fmt"
	"trailguard/config"
	"trailguard/infras/otel"
	locationModel "trailguard/internal/domains/location/model"
	locationRepository "trailguard/internal/domains/location/repository"
	"trailguard/internal/domains/rating/model"
	"trailguard/internal/domains/rating/model/dto"
	"trailguard/internal/domains/rating/repository"
	"trailguard/shared"
	"trailguard/shared/cache"
	"trailguard/shared/constant"
	gDto "trailguard/shared/dto"
	"trailguard/shared/failure"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const cacheGetAllRating = "rating:gets"

type Rating interface {
	Submit(ctx context.Context, req dto.SubmitRatingRequest) (dto.SubmitRatingResponse, error)
	ForLocation(ctx context.Context, locationID string) (dto.GetRatingsResponse, error)
}

type serviceImpl struct {
	repo      repository.Rating
	locations locationRepository.Location
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Rating, locations locationRepository.Location, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Rating {
	return &serviceImpl{
		repo:      repo,
		locations: locations,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Submit(ctx context.Context, req dto.SubmitRatingRequest) (res dto.SubmitRatingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.locations.Exist(ctx, shared.FilterByID(req.LocationID, locationModel.FieldID, locationModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if location exists")

		return res, fmt.Errorf("failed to check if location exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("location not found") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	rating := req.ToModel(user)

	if err = s.repo.Insert(ctx, rating); err != nil {
		// The location can disappear between the existence check and the
		// insert; the foreign key reports that as a missing location.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeFkViolation {
			return res, failure.NotFound("location not found") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to submit rating")

		return res, fmt.Errorf("failed to submit rating: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRating)
	}()

	res.ID = rating.ID

	return res, nil
}

// ForLocation returns every review of a location, newest first, with the
// average computed over the full set rather than a page of it.
func (s *serviceImpl) ForLocation(ctx context.Context, locationID string) (res dto.GetRatingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ForLocation")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllRating, locationID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for ratings")

		return res, nil
	}

	filter := shared.FilterByID(locationID, model.FieldLocationID, model.TableName)

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get ratings")

		return res, fmt.Errorf("failed to get ratings: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save ratings to cache")
		}
	}()

	return res, nil
}
