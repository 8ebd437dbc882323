package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lagoon/config"
	"lagoon/infras/jwt"
	otelMocks "lagoon/infras/otel/mocks"
	"lagoon/internal/domains/auth/model/dto"
	"lagoon/internal/domains/auth/service"
	userMocks "lagoon/internal/domains/user/mocks"
	userModel "lagoon/internal/domains/user/model"
	"lagoon/shared/constant"
	"lagoon/shared/failure"
	"lagoon/shared/password"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 1440

	return cfg
}

func newService(t *testing.T) (service.Auth, *userMocks.MockUser, jwt.JWT) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := userMocks.NewMockUser(ctrl)
	cfg := testConfig()
	jwtService := jwt.New(cfg)

	svc := service.New(repo, cfg, otelMocks.NewOtel(), jwtService)

	return svc, repo, jwtService
}

func storedUser(t *testing.T, plaintext string) userModel.User {
	t.Helper()

	hash, err := password.Hash(plaintext)
	require.NoError(t, err)

	return userModel.User{
		ID:       "u-1",
		Username: "frontdesk",
		Email:    "frontdesk@example.com",
		Password: hash,
		Role:     constant.RoleAdmin,
		Active:   true,
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("returns token pair and stamps last login", func(t *testing.T) {
		t.Parallel()

		svc, repo, jwtService := newService(t)

		user := storedUser(t, "correct-horse")

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Contains(t, fields, userModel.FieldLastLogin)

				return nil
			})

		res, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "frontdesk@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		require.NotEmpty(t, res.AccessToken)
		require.NotEmpty(t, res.RefreshToken)

		claims, err := jwtService.ValidateToken(context.Background(), res.AccessToken, jwt.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "u-1", claims.UserID)
		assert.Equal(t, constant.RoleAdmin, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser(t, "correct-horse"), nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "frontdesk@example.com",
			Password: "wrong",
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("deactivated account", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := newService(t)

		user := storedUser(t, "correct-horse")
		user.Active = false

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "frontdesk@example.com",
			Password: "correct-horse",
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("issues a new pair from a valid refresh token", func(t *testing.T) {
		t.Parallel()

		svc, _, jwtService := newService(t)

		pair, err := jwtService.GenerateTokenPair("u-1", "frontdesk@example.com", "frontdesk", constant.RoleAdmin)
		require.NoError(t, err)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.NotEmpty(t, res.RefreshToken)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newService(t)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "not-a-token"})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("rejects an access token used as refresh token", func(t *testing.T) {
		t.Parallel()

		svc, _, jwtService := newService(t)

		pair, err := jwtService.GenerateTokenPair("u-1", "frontdesk@example.com", "frontdesk", constant.RoleAdmin)
		require.NoError(t, err)

		_, err = svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: pair.AccessToken})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser(t, "old-password"), nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				hash, ok := fields[userModel.FieldPassword].(string)
				require.True(t, ok)
				assert.NoError(t, password.Verify("new-password-123", hash))

				return nil
			})

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "old-password",
			NewPassword:     "new-password-123",
		}, "u-1")
		require.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser(t, "old-password"), nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "not-it",
			NewPassword:     "new-password-123",
		}, "u-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
