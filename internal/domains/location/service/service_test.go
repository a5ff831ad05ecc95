package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"trailguard/config"
	"trailguard/infras/otel/mocks"
	s3Mocks "trailguard/infras/s3/mocks"
	locationMocks "trailguard/internal/domains/location/mocks"
	"trailguard/internal/domains/location/model"
	"trailguard/internal/domains/location/model/dto"
	"trailguard/internal/domains/location/service"
	cacheMocks "trailguard/shared/cache/mocks"
	"trailguard/shared/constant"
)

func newService(t *testing.T) (service.Location, *locationMocks.MockLocation, *s3Mocks.MockS3, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := locationMocks.NewMockLocation(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache writes and invalidations run on background goroutines.
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mockS3, mockOtel), mockRepo, mockS3, mockCache
}

func TestLocationService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateLocationRequest
		setupMock func(mockRepo *locationMocks.MockLocation)
		wantErr   bool
	}{
		{
			name: "successful creation",
			req: dto.CreateLocationRequest{
				Name:      "Sekumpul Waterfall",
				Category:  "waterfall",
				Latitude:  -8.1722,
				Longitude: 115.1867,
			},
			setupMock: func(mockRepo *locationMocks.MockLocation) {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "repository error",
			req: dto.CreateLocationRequest{
				Name: "Sekumpul Waterfall",
			},
			setupMock: func(mockRepo *locationMocks.MockLocation) {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, _ := newService(t)
			tt.setupMock(mockRepo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocationService_GenerateQR(t *testing.T) {
	storedLocation := model.Location{
		ID:   "loc-1",
		Name: "Sekumpul Waterfall",
	}

	t.Run("successful generation", func(t *testing.T) {
		svc, mockRepo, mockS3, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(storedLocation, nil)

		mockS3.EXPECT().
			UploadFileBytes(gomock.Any(), gomock.Any(), "qr", "loc-1-check-in.png", constant.ContentTypePNG, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, _, _ string, data []byte) (string, error) {
				assert.NotEmpty(t, data, "a rendered PNG must be uploaded")

				return "https://cdn.example.com/qr/loc-1-check-in.png", nil
			})

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ any) error {
				assert.Equal(t, "https://cdn.example.com/qr/loc-1-check-in.png", update[model.FieldQRImageURL])

				return nil
			})

		res, err := svc.GenerateQR(context.Background(), "loc-1", model.QRTypeCheckIn)

		assert.NoError(t, err)
		assert.Equal(t, "loc-1", res.LocationID)
		assert.Equal(t, model.QRTypeCheckIn, res.Type)
		assert.Equal(t, "https://cdn.example.com/qr/loc-1-check-in.png", res.ImageURL)

		// The payload embedded in the image must scan back cleanly.
		payload, err := model.ParseQRPayload(res.Payload)
		assert.NoError(t, err)
		assert.Equal(t, "loc-1", payload.LocationID)
		assert.Equal(t, model.QRTypeCheckIn, payload.Type)
	})

	t.Run("invalid type", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.GenerateQR(context.Background(), "loc-1", "poster")

		assert.ErrorContains(t, err, "QR type must be check-in or check-out")
	})

	t.Run("location not found", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Location{}, nil)

		_, err := svc.GenerateQR(context.Background(), "missing-id", model.QRTypeCheckOut)

		assert.ErrorContains(t, err, "location not found")
	})

	t.Run("upload failure", func(t *testing.T) {
		svc, mockRepo, mockS3, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(storedLocation, nil)

		mockS3.EXPECT().
			UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("bucket unreachable"))

		_, err := svc.GenerateQR(context.Background(), "loc-1", model.QRTypeCheckIn)

		assert.Error(t, err)
	})
}
