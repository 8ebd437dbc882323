package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lagoon/config"
	otelMocks "lagoon/infras/otel/mocks"
	"lagoon/internal/domains/user/mocks"
	"lagoon/internal/domains/user/model"
	"lagoon/internal/domains/user/model/dto"
	"lagoon/internal/domains/user/service"
	cacheMocks "lagoon/shared/cache/mocks"
	"lagoon/shared/constant"
	"lagoon/shared/failure"
	"lagoon/shared/password"
)

func newService(t *testing.T) (service.User, *mocks.MockUser, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUser(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	svc := service.New(repo, cfg, cache, otelMocks.NewOtel())

	return svc, repo, cache
}

func adminCtx(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func TestUserCreate(t *testing.T) {
	t.Parallel()

	t.Run("hashes password and activates account", func(t *testing.T) {
		t.Parallel()

		svc, repo, cache := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m model.User) error {
				assert.True(t, m.Active)
				assert.Equal(t, constant.RoleAdmin, m.Role)
				assert.NotEqual(t, "str0ng-password", m.Password)
				assert.NoError(t, password.Verify("str0ng-password", m.Password))

				return nil
			})
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Create(adminCtx("root-1"), dto.CreateUserRequest{
			Username: "frontdesk",
			Email:    "frontdesk@example.com",
			Password: "str0ng-password",
			Role:     constant.RoleAdmin,
		})
		require.NoError(t, err)
	})

	t.Run("rejects duplicate username or email", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := svc.Create(adminCtx("root-1"), dto.CreateUserRequest{
			Username: "frontdesk",
			Email:    "frontdesk@example.com",
			Password: "str0ng-password",
			Role:     constant.RoleAdmin,
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestUserUpdate(t *testing.T) {
	t.Parallel()

	t.Run("rejects self-deactivation", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newService(t)

		inactive := false

		err := svc.Update(adminCtx("root-1"), dto.UpdateUserRequest{Active: &inactive}, "root-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("allows deactivating another account", func(t *testing.T) {
		t.Parallel()

		svc, repo, cache := newService(t)

		inactive := false

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, &inactive, fields[model.FieldActive])

				return nil
			})
		cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Update(adminCtx("root-1"), dto.UpdateUserRequest{Active: &inactive}, "other-2")
		require.NoError(t, err)
	})

	t.Run("empty request", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newService(t)

		err := svc.Update(adminCtx("root-1"), dto.UpdateUserRequest{}, "other-2")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestUserDelete(t *testing.T) {
	t.Parallel()

	t.Run("rejects self-deletion", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newService(t)

		err := svc.Delete(adminCtx("root-1"), "root-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("deletes another account", func(t *testing.T) {
		t.Parallel()

		svc, repo, cache := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		require.NoError(t, svc.Delete(adminCtx("root-1"), "other-2"))
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(adminCtx("root-1"), "missing")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
