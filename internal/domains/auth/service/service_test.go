package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"trailguard/config"
	"trailguard/infras/jwt"
	jwtMocks "trailguard/infras/jwt/mocks"
	"trailguard/infras/otel/mocks"
	"trailguard/internal/domains/auth/model/dto"
	"trailguard/internal/domains/auth/service"
	userMocks "trailguard/internal/domains/user/mocks"
	userModel "trailguard/internal/domains/user/model"
	"trailguard/shared/constant"
	gModel "trailguard/shared/model"
	"trailguard/shared/timezone"
)

func stringPtr(s string) *string {
	return &s
}

func newService(t *testing.T) (service.Auth, *userMocks.MockUser, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}

	return service.New(mockUserRepo, cfg, mocks.NewOtel(), mockJWT), mockUserRepo, mockJWT
}

func validUser() userModel.User {
	return userModel.User{
		ID:       "user-id-123",
		Email:    "officer@example.com",
		Password: "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi", // "password" hashed
		FullName: stringPtr("Test Officer"),
		Role:     constant.RoleOfficer,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(mockUserRepo *userMocks.MockUser, mockJWT *jwtMocks.MockJWT)
		wantErr   bool
	}{
		{
			name: "successful login",
			req: dto.LoginRequest{
				Email:    "officer@example.com",
				Password: "password",
			},
			setupMock: func(mockUserRepo *userMocks.MockUser, mockJWT *jwtMocks.MockJWT) {
				user := validUser()

				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(user, nil)

				mockJWT.EXPECT().
					GenerateTokenPair(user.ID, user.Email, user.Role).
					Return(&jwt.TokenPair{
						AccessToken:  "access-token",
						RefreshToken: "refresh-token",
					}, nil)

				mockUserRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "user not found",
			req: dto.LoginRequest{
				Email:    "nonexistent@example.com",
				Password: "password",
			},
			setupMock: func(mockUserRepo *userMocks.MockUser, mockJWT *jwtMocks.MockJWT) {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
		{
			name: "wrong password",
			req: dto.LoginRequest{
				Email:    "officer@example.com",
				Password: "wrongpassword",
			},
			setupMock: func(mockUserRepo *userMocks.MockUser, mockJWT *jwtMocks.MockJWT) {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validUser(), nil)
			},
			wantErr: true,
		},
		{
			name: "inactive user",
			req: dto.LoginRequest{
				Email:    "officer@example.com",
				Password: "password",
			},
			setupMock: func(mockUserRepo *userMocks.MockUser, mockJWT *jwtMocks.MockJWT) {
				inactiveUser := validUser()
				inactiveUser.Active = false

				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(inactiveUser, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			req: dto.LoginRequest{
				Email:    "officer@example.com",
				Password: "password",
			},
			setupMock: func(mockUserRepo *userMocks.MockUser, mockJWT *jwtMocks.MockJWT) {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockUserRepo, mockJWT := newService(t)
			tt.setupMock(mockUserRepo, mockJWT)

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "access-token", res.AccessToken)
				assert.Equal(t, "refresh-token", res.RefreshToken)
			}
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.RegisterRequest
		setupMock func(mockUserRepo *userMocks.MockUser)
		wantErr   bool
	}{
		{
			name: "successful registration",
			req: dto.RegisterRequest{
				Email:    "new-officer@example.com",
				Password: "password123",
				FullName: stringPtr("New Officer"),
			},
			setupMock: func(mockUserRepo *userMocks.MockUser) {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockUserRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, constant.RoleOfficer, user.Role)
						assert.True(t, user.Active)
						assert.NotEqual(t, "password123", user.Password, "password must be stored hashed")

						return nil
					})
			},
		},
		{
			name: "email already registered",
			req: dto.RegisterRequest{
				Email:    "officer@example.com",
				Password: "password123",
				FullName: stringPtr("Duplicate Officer"),
			},
			setupMock: func(mockUserRepo *userMocks.MockUser) {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockUserRepo, _ := newService(t)
			tt.setupMock(mockUserRepo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
			err := svc.Register(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("successful refresh", func(t *testing.T) {
		svc, _, mockJWT := newService(t)

		mockJWT.EXPECT().
			RefreshTokens("valid-refresh-token").
			Return(&jwt.TokenPair{
				AccessToken:  "new-access-token",
				RefreshToken: "new-refresh-token",
			}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "valid-refresh-token"})

		assert.NoError(t, err)
		assert.Equal(t, "new-access-token", res.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		svc, _, mockJWT := newService(t)

		mockJWT.EXPECT().
			RefreshTokens("expired-token").
			Return(nil, jwt.ErrExpiredToken)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "expired-token"})

		assert.Error(t, err)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("successful change", func(t *testing.T) {
		svc, mockUserRepo, _ := newService(t)

		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(validUser(), nil)

		mockUserRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "password",
			NewPassword:     "new-password-123",
		}, "user-id-123")

		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		svc, mockUserRepo, _ := newService(t)

		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(validUser(), nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "wrong-password",
			NewPassword:     "new-password-123",
		}, "user-id-123")

		assert.Error(t, err)
	})

	t.Run("user not found", func(t *testing.T) {
		svc, mockUserRepo, _ := newService(t)

		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "password",
			NewPassword:     "new-password-123",
		}, "missing-id")

		assert.Error(t, err)
	})
}
