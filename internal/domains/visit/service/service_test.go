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
	visitMocks "trailguard/internal/domains/visit/mocks"
	"trailguard/internal/domains/visit/model"
	"trailguard/internal/domains/visit/model/dto"
	"trailguard/internal/domains/visit/service"
	cacheMocks "trailguard/shared/cache/mocks"
	"trailguard/shared/constant"
	gDto "trailguard/shared/dto"
	"trailguard/shared/timezone"
)

const (
	checkInQR  = `{"locationId":"loc-1","locationName":"Sekumpul Waterfall","timestamp":1748767200000,"type":"check-in"}`
	checkOutQR = `{"locationId":"loc-1","locationName":"Sekumpul Waterfall","timestamp":1748767200000,"type":"check-out"}`
)

func newService(t *testing.T) (service.Visit, *visitMocks.MockVisit, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := visitMocks.NewMockVisit(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache writes and invalidations run on background goroutines, so they
	// may or may not land before the test finishes.
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mockOtel), mockRepo, mockCache
}

func TestVisitService_CheckIn(t *testing.T) {
	tests := []struct {
		name       string
		req        dto.CheckInRequest
		setupMock  func(mockRepo *visitMocks.MockVisit)
		wantErr    string
		wantErrAny bool
	}{
		{
			name: "successful check-in",
			req: dto.CheckInRequest{
				TouristName:      "Budi Santoso",
				TouristPhone:     "+628123456789",
				QRCode:           checkInQR,
				ExpectedDuration: 120,
			},
			setupMock: func(mockRepo *visitMocks.MockVisit) {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "malformed QR code",
			req: dto.CheckInRequest{
				TouristName:      "Budi Santoso",
				TouristPhone:     "+628123456789",
				QRCode:           "not-a-qr-payload",
				ExpectedDuration: 120,
			},
			setupMock: func(mockRepo *visitMocks.MockVisit) {},
			wantErr:   "invalid QR code",
		},
		{
			name: "check-out code scanned at check-in",
			req: dto.CheckInRequest{
				TouristName:      "Budi Santoso",
				TouristPhone:     "+628123456789",
				QRCode:           checkOutQR,
				ExpectedDuration: 120,
			},
			setupMock: func(mockRepo *visitMocks.MockVisit) {},
			wantErr:   "QR code is not a check-in code",
		},
		{
			name: "open visit already exists",
			req: dto.CheckInRequest{
				TouristName:      "Budi Santoso",
				TouristPhone:     "+628123456789",
				QRCode:           checkInQR,
				ExpectedDuration: 120,
			},
			setupMock: func(mockRepo *visitMocks.MockVisit) {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: "an open check-in already exists for this location",
		},
		{
			name: "unique index trips under concurrency",
			req: dto.CheckInRequest{
				TouristName:      "Budi Santoso",
				TouristPhone:     "+628123456789",
				QRCode:           checkInQR,
				ExpectedDuration: 120,
			},
			setupMock: func(mockRepo *visitMocks.MockVisit) {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})
			},
			wantErr: "an open check-in already exists for this location",
		},
		{
			name: "repository error",
			req: dto.CheckInRequest{
				TouristName:      "Budi Santoso",
				TouristPhone:     "+628123456789",
				QRCode:           checkInQR,
				ExpectedDuration: 120,
			},
			setupMock: func(mockRepo *visitMocks.MockVisit) {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErrAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newService(t)
			tt.setupMock(mockRepo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.CheckIn(ctx, tt.req)

			switch {
			case tt.wantErr != "":
				assert.ErrorContains(t, err, tt.wantErr)
			case tt.wantErrAny:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
			}
		})
	}
}

func TestVisitService_CheckOut(t *testing.T) {
	openVisit := model.LocationVisit{
		ID:                      "visit-1",
		TouristName:             "Budi Santoso",
		TouristPhone:            "+628123456789",
		LocationID:              "loc-1",
		LocationName:            "Sekumpul Waterfall",
		CheckInTime:             timezone.Now().Add(-time.Hour),
		ExpectedDurationMinutes: 120,
		Status:                  model.StatusCheckedIn,
	}

	tests := []struct {
		name       string
		req        dto.CheckOutRequest
		setupMock  func(mockRepo *visitMocks.MockVisit)
		wantErr    string
		wantErrAny bool
	}{
		{
			name: "successful check-out",
			req: dto.CheckOutRequest{
				TouristPhone: "+628123456789",
				QRCode:       checkOutQR,
			},
			setupMock: func(mockRepo *visitMocks.MockVisit) {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.LocationVisit{openVisit}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, update map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusCheckedOut, update[model.FieldStatus])
						assert.Contains(t, update, model.FieldCheckOutTime)

						return nil
					})
			},
		},
		{
			name: "malformed QR code",
			req: dto.CheckOutRequest{
				TouristPhone: "+628123456789",
				QRCode:       "{broken",
			},
			setupMock: func(mockRepo *visitMocks.MockVisit) {},
			wantErr:   "invalid QR code",
		},
		{
			name: "check-in code scanned at check-out",
			req: dto.CheckOutRequest{
				TouristPhone: "+628123456789",
				QRCode:       checkInQR,
			},
			setupMock: func(mockRepo *visitMocks.MockVisit) {},
			wantErr:   "QR code is not a check-out code",
		},
		{
			name: "no active check-in",
			req: dto.CheckOutRequest{
				TouristPhone: "+628123456789",
				QRCode:       checkOutQR,
			},
			setupMock: func(mockRepo *visitMocks.MockVisit) {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.LocationVisit{}, nil)
			},
			wantErr: "no active check-in found for this location",
		},
		{
			name: "repository error",
			req: dto.CheckOutRequest{
				TouristPhone: "+628123456789",
				QRCode:       checkOutQR,
			},
			setupMock: func(mockRepo *visitMocks.MockVisit) {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErrAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newService(t)
			tt.setupMock(mockRepo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.CheckOut(ctx, tt.req)

			switch {
			case tt.wantErr != "":
				assert.ErrorContains(t, err, tt.wantErr)
			case tt.wantErrAny:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestVisitService_ActiveCheckIns(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	visits := []model.LocationVisit{
		{
			ID:                      "visit-2",
			TouristPhone:            "+628123456789",
			LocationID:              "loc-2",
			CheckInTime:             timezone.Now().Add(-10 * time.Minute),
			ExpectedDurationMinutes: 60,
			Status:                  model.StatusCheckedIn,
		},
		{
			ID:                      "visit-1",
			TouristPhone:            "+628123456789",
			LocationID:              "loc-1",
			CheckInTime:             timezone.Now().Add(-time.Hour),
			ExpectedDurationMinutes: 120,
			Status:                  model.StatusCheckedIn,
		},
	}

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.LocationVisit, error) {
			assert.Equal(t, model.FieldCheckInTime, params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return visits, nil
		})

	res, err := svc.ActiveCheckIns(context.Background(), "+628123456789")

	assert.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, "visit-2", res[0].ID)
}

func TestVisitService_MarkOverdue(t *testing.T) {
	t.Run("updates an open visit", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		visit := model.LocationVisit{
			ID:     "visit-1",
			Status: model.StatusCheckedIn,
		}

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusOverdue, update[model.FieldStatus])

				return nil
			})

		assert.NoError(t, svc.MarkOverdue(context.Background(), &visit))
		assert.Equal(t, model.StatusOverdue, visit.Status)
	})

	t.Run("rejects a closed visit without touching the store", func(t *testing.T) {
		svc, _, _ := newService(t)

		visit := model.LocationVisit{
			ID:     "visit-1",
			Status: model.StatusCheckedOut,
		}

		assert.ErrorIs(t, svc.MarkOverdue(context.Background(), &visit), model.ErrIllegalTransition)
	})
}

func TestVisitService_MarkAlertSent(t *testing.T) {
	t.Run("updates an overdue visit", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		visit := model.LocationVisit{
			ID:     "visit-1",
			Status: model.StatusOverdue,
		}

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusAlertSent, update[model.FieldStatus])

				return nil
			})

		assert.NoError(t, svc.MarkAlertSent(context.Background(), &visit))
	})

	t.Run("never re-alerts", func(t *testing.T) {
		svc, _, _ := newService(t)

		visit := model.LocationVisit{
			ID:     "visit-1",
			Status: model.StatusAlertSent,
		}

		assert.ErrorIs(t, svc.MarkAlertSent(context.Background(), &visit), model.ErrIllegalTransition)
	})
}

func TestVisitService_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.LocationVisit{}, nil)

		_, err := svc.Get(context.Background(), "missing-id")

		assert.ErrorContains(t, err, "visit not found")
	})

	t.Run("found", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.LocationVisit{
				ID:     "visit-1",
				Status: model.StatusCheckedIn,
			}, nil)

		res, err := svc.Get(context.Background(), "visit-1")

		assert.NoError(t, err)
		assert.Equal(t, "visit-1", res.ID)
	})
}
