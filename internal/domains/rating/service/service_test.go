package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"trailguard/config"
	"trailguard/infras/otel/mocks"
	locationMocks "trailguard/internal/domains/location/mocks"
	ratingMocks "trailguard/internal/domains/rating/mocks"
	"trailguard/internal/domains/rating/model"
	ratingDto "trailguard/internal/domains/rating/model/dto"
	"trailguard/internal/domains/rating/service"
	cacheMocks "trailguard/shared/cache/mocks"
	"trailguard/shared/constant"
	gDto "trailguard/shared/dto"
	gModel "trailguard/shared/model"
	"trailguard/shared/timezone"
)

type ratingServiceMocks struct {
	repo      *ratingMocks.MockRating
	locations *locationMocks.MockLocation
	cache     *cacheMocks.MockRedisCache
}

func newService(t *testing.T) (service.Rating, ratingServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := ratingServiceMocks{
		repo:      ratingMocks.NewMockRating(ctrl),
		locations: locationMocks.NewMockLocation(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache writes and invalidations run on background goroutines, so they
	// may or may not land before the test finishes.
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(m.repo, m.locations, cfg, m.cache, mocks.NewOtel()), m
}

func TestRatingService_Submit(t *testing.T) {
	validReq := ratingDto.SubmitRatingRequest{
		LocationID:   "loc-1",
		TouristPhone: "+628123456789",
		Rating:       5,
		Comment:      "clear trail markers and a great guide",
		Category:     model.CategorySafety,
	}

	tests := []struct {
		name      string
		req       ratingDto.SubmitRatingRequest
		setupMock func(m ratingServiceMocks)
		wantErr   string
	}{
		{
			name: "successful submit",
			req:  validReq,
			setupMock: func(m ratingServiceMocks) {
				m.locations.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, rating model.Rating) error {
						assert.NotEmpty(t, rating.ID)
						assert.Equal(t, "loc-1", rating.LocationID)
						assert.Equal(t, 5, rating.Rating)
						assert.Equal(t, model.CategorySafety, rating.Category)
						assert.Zero(t, rating.HelpfulCount)

						return nil
					})
			},
		},
		{
			name: "unknown location",
			req:  validReq,
			setupMock: func(m ratingServiceMocks) {
				m.locations.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: "location not found",
		},
		{
			name: "location deleted between check and insert",
			req:  validReq,
			setupMock: func(m ratingServiceMocks) {
				m.locations.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeFkViolation)})
			},
			wantErr: "location not found",
		},
		{
			name: "repository error",
			req:  validReq,
			setupMock: func(m ratingServiceMocks) {
				m.locations.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: "failed to submit rating",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc, m := newService(t)
			test.setupMock(m)

			res, err := svc.Submit(context.Background(), test.req)

			if test.wantErr != "" {
				assert.ErrorContains(t, err, test.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestRatingService_ForLocation(t *testing.T) {
	t.Run("aggregates over every review", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Rating, error) {
				assert.Equal(t, constant.FieldCreatedAt, params.SortBy)
				assert.Equal(t, gDto.SortDirDesc, params.SortDir)

				return []model.Rating{
					{
						ID:       "rating-2",
						Rating:   5,
						Category: model.CategoryGeneral,
						Metadata: gModel.Metadata{CreatedAt: timezone.Now()},
					},
					{
						ID:       "rating-1",
						Rating:   4,
						Category: model.CategorySafety,
						Metadata: gModel.Metadata{CreatedAt: timezone.Now().Add(-time.Hour)},
					},
				}, nil
			})

		res, err := svc.ForLocation(context.Background(), "loc-1")

		assert.NoError(t, err)
		assert.Len(t, res.Ratings, 2)
		assert.Equal(t, "rating-2", res.Ratings[0].ID)
		assert.Equal(t, 2, res.TotalReviews)
		assert.InDelta(t, 4.5, res.AverageRating, 0.001)
	})

	t.Run("no reviews yet", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Rating{}, nil)

		res, err := svc.ForLocation(context.Background(), "loc-1")

		assert.NoError(t, err)
		assert.Empty(t, res.Ratings)
		assert.Zero(t, res.TotalReviews)
		assert.Zero(t, res.AverageRating)
	})

	t.Run("repository error", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := svc.ForLocation(context.Background(), "loc-1")

		assert.ErrorContains(t, err, "failed to get ratings")
	})
}
