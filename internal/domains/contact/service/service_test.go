package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lagoon/config"
	otelMocks "lagoon/infras/otel/mocks"
	"lagoon/internal/domains/contact/mocks"
	"lagoon/internal/domains/contact/model"
	"lagoon/internal/domains/contact/model/dto"
	"lagoon/internal/domains/contact/service"
	cacheMocks "lagoon/shared/cache/mocks"
	"lagoon/shared/code"
	"lagoon/shared/constant"
	gDto "lagoon/shared/dto"
	"lagoon/shared/failure"
)

func listParams() gDto.QueryParams {
	return gDto.QueryParams{Page: 1, Limit: 10, SortBy: constant.DefaultValueSortBy, SortDir: constant.DefaultValueSortDir}
}

func listFilter() gDto.FilterGroup {
	return gDto.FilterGroup{}
}

func newService(t *testing.T) (service.Contact, *mocks.MockContact, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockContact(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	svc := service.New(repo, code.New(), cfg, cache, otelMocks.NewOtel())

	return svc, repo, cache
}

func TestContactCreate(t *testing.T) {
	t.Parallel()

	t.Run("defaults priority to medium and status to new", func(t *testing.T) {
		t.Parallel()

		svc, repo, cache := newService(t)

		var inserted model.Contact

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m model.Contact) error {
				inserted = m

				return nil
			})
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.Create(context.Background(), dto.CreateContactRequest{
			Name:    "Sam Guest",
			Email:   "sam@example.com",
			Subject: model.SubjectBooking,
			Message: "do you have availability next weekend?",
		})
		require.NoError(t, err)

		assert.Regexp(t, `^CT\d{6}$`, res.Code)
		assert.Equal(t, model.StatusNew, inserted.Status)
		assert.Equal(t, model.PriorityMedium, inserted.Priority)
	})

	t.Run("keeps explicit priority", func(t *testing.T) {
		t.Parallel()

		svc, repo, cache := newService(t)

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m model.Contact) error {
				assert.Equal(t, model.PriorityUrgent, m.Priority)

				return nil
			})
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		_, err := svc.Create(context.Background(), dto.CreateContactRequest{
			Name:     "Sam Guest",
			Email:    "sam@example.com",
			Subject:  model.SubjectComplaint,
			Message:  "the air conditioning in our cottage is broken",
			Priority: model.PriorityUrgent,
		})
		require.NoError(t, err)
	})
}

func TestContactGet(t *testing.T) {
	t.Parallel()

	t.Run("marks new message as read on first fetch", func(t *testing.T) {
		t.Parallel()

		svc, repo, cache := newService(t)

		contact := model.Contact{
			ID:      "c-1",
			Code:    "CT000001",
			Name:    "Sam Guest",
			Status:  model.StatusNew,
			Subject: model.SubjectGeneral,
		}

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(contact, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusRead, fields[model.FieldStatus])
				assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

				return nil
			})
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.Get(ctx, "c-1")
		require.NoError(t, err)
		assert.Equal(t, model.StatusRead, res.Status)
	})

	t.Run("does not re-transition an already read message", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.Contact{ID: "c-1", Status: model.StatusRead}, nil)

		res, err := svc.Get(context.Background(), "c-1")
		require.NoError(t, err)
		assert.Equal(t, model.StatusRead, res.Status)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Contact{}, nil)

		_, err := svc.Get(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestContactReply(t *testing.T) {
	t.Parallel()

	t.Run("stamps responder and forces replied status", func(t *testing.T) {
		t.Parallel()

		svc, repo, cache := newService(t)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusReplied, fields[model.FieldStatus])
				assert.Equal(t, "admin-1", fields[model.FieldRespondedBy])
				assert.Contains(t, fields, model.FieldRespondedAt)

				return nil
			})
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Reply(ctx, dto.ReplyContactRequest{Response: "thanks for reaching out, we will call you"}, "c-1")
		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Reply(context.Background(), dto.ReplyContactRequest{Response: "thanks for reaching out"}, "missing")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestContactUpdateStatus(t *testing.T) {
	t.Parallel()

	t.Run("empty request", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newService(t)

		err := svc.UpdateStatus(context.Background(), dto.UpdateContactStatusRequest{}, "c-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc, repo, cache := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.UpdateStatus(context.Background(), dto.UpdateContactStatusRequest{Status: model.StatusResolved}, "c-1")
		require.NoError(t, err)
	})
}

func TestContactDelete(t *testing.T) {
	t.Parallel()

	svc, repo, cache := newService(t)

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	require.NoError(t, svc.Delete(context.Background(), "c-1"))
}

func TestContactGetAllPropagatesError(t *testing.T) {
	t.Parallel()

	svc, repo, cache := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))

	_, err := svc.GetAll(context.Background(), listParams(), listFilter())
	require.Error(t, err)
}
