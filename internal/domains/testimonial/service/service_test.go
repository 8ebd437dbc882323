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
	"lagoon/internal/domains/testimonial/mocks"
	"lagoon/internal/domains/testimonial/model"
	"lagoon/internal/domains/testimonial/model/dto"
	"lagoon/internal/domains/testimonial/service"
	cacheMocks "lagoon/shared/cache/mocks"
	"lagoon/shared/code"
	"lagoon/shared/constant"
	gDto "lagoon/shared/dto"
	"lagoon/shared/failure"
)

var errCacheMiss = errors.New("cache miss")

func newService(t *testing.T) (service.Testimonial, *mocks.MockTestimonial, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockTestimonial(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	svc := service.New(repo, code.New(), cfg, cache, otelMocks.NewOtel())

	return svc, repo, cache
}

func TestTestimonialCreate(t *testing.T) {
	t.Parallel()

	svc, repo, cache := newService(t)

	var inserted model.Testimonial

	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m model.Testimonial) error {
			inserted = m

			return nil
		})
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.Create(context.Background(), dto.CreateTestimonialRequest{
		Name:      "Happy Guest",
		Email:     "guest@example.com",
		Rating:    5,
		Message:   "wonderful weekend by the lagoon",
		VisitType: model.VisitTypeOvernight,
	})
	require.NoError(t, err)

	assert.Regexp(t, `^TM\d{6}$`, res.Code)
	assert.Equal(t, model.StatusPending, inserted.Status)
	assert.False(t, inserted.IsPublic)
}

func TestTestimonialModerate(t *testing.T) {
	t.Parallel()

	t.Run("approval flips public flag and stamps approver", func(t *testing.T) {
		t.Parallel()

		svc, repo, cache := newService(t)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.Testimonial{ID: "t-1", Code: "TM000001", Status: model.StatusPending}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusApproved, fields[model.FieldStatus])
				assert.Equal(t, true, fields[model.FieldIsPublic])
				assert.Equal(t, "admin-1", fields[model.FieldApprovedBy])
				assert.Contains(t, fields, model.FieldApprovedAt)

				return nil
			})
		cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Moderate(ctx, dto.ModerateTestimonialRequest{Status: model.StatusApproved}, "t-1")
		require.NoError(t, err)
	})

	t.Run("rejection hides the testimonial", func(t *testing.T) {
		t.Parallel()

		svc, repo, cache := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.Testimonial{ID: "t-1", Code: "TM000001", Status: model.StatusApproved, IsPublic: true}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusRejected, fields[model.FieldStatus])
				assert.Equal(t, false, fields[model.FieldIsPublic])
				assert.NotContains(t, fields, model.FieldApprovedBy)

				return nil
			})
		cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Moderate(context.Background(), dto.ModerateTestimonialRequest{Status: model.StatusRejected}, "t-1")
		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Testimonial{}, nil)

		err := svc.Moderate(context.Background(), dto.ModerateTestimonialRequest{Status: model.StatusApproved}, "missing")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestTestimonialGetAllPublic(t *testing.T) {
	t.Parallel()

	svc, repo, cache := newService(t)

	models := []model.Testimonial{
		{ID: "t-1", Code: "TM000001", Name: "A", Rating: 5, Status: model.StatusApproved, IsPublic: true},
	}

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, model.FieldStatus)
			assert.Contains(t, where, model.FieldIsPublic)
			assert.Equal(t, model.StatusApproved, args[model.FieldStatus])

			return 1, nil
		})
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(models, nil)
	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.GetAllPublic(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: constant.DefaultValueSortBy, SortDir: constant.DefaultValueSortDir})
	require.NoError(t, err)

	require.Len(t, res.Testimonials, 1)
	assert.Equal(t, "TM000001", res.Testimonials[0].Code)
	assert.Equal(t, 1, res.TotalData)
}

func TestTestimonialDelete(t *testing.T) {
	t.Parallel()

	svc, repo, cache := newService(t)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Testimonial{ID: "t-1", Code: "TM000001"}, nil)
	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	require.NoError(t, svc.Delete(context.Background(), "t-1"))
}
