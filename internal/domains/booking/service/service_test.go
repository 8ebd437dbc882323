package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lagoon/config"
	otelMocks "lagoon/infras/otel/mocks"
	"lagoon/internal/domains/booking/mocks"
	"lagoon/internal/domains/booking/model"
	"lagoon/internal/domains/booking/model/dto"
	"lagoon/internal/domains/booking/service"
	cacheMocks "lagoon/shared/cache/mocks"
	"lagoon/shared/code"
	"lagoon/shared/constant"
	gDto "lagoon/shared/dto"
	"lagoon/shared/failure"
)

var errCacheMiss = errors.New("cache miss")

func listParams() gDto.QueryParams {
	return gDto.QueryParams{Page: 1, Limit: 10, SortBy: constant.DefaultValueSortBy, SortDir: constant.DefaultValueSortDir}
}

func newService(t *testing.T) (service.Booking, *mocks.MockBooking, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBooking(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	svc := service.New(repo, code.New(), cfg, cache, otelMocks.NewOtel())

	return svc, repo, cache
}

func validCreateRequest() dto.CreateBookingRequest {
	tomorrow := time.Now().AddDate(0, 0, 1).Format(constant.DateOnlyFormat)
	dayAfter := time.Now().AddDate(0, 0, 2).Format(constant.DateOnlyFormat)

	return dto.CreateBookingRequest{
		GuestName:         "Jane Traveler",
		GuestEmail:        "jane@example.com",
		GuestPhone:        "+6281234567890",
		CheckIn:           tomorrow,
		CheckOut:          dayAfter,
		Guests:            2,
		AccommodationType: model.AccommodationOvernight,
		Addons:            []string{"cottage", "grill"},
		TotalAmount:       350.5,
		SpecialRequests:   "late arrival",
	}
}

func TestBookingCreate(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc, repo, cache := newService(t)

		var inserted model.Booking

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m model.Booking) error {
				inserted = m

				return nil
			})
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		req := validCreateRequest()

		res, err := svc.Create(context.Background(), req)
		require.NoError(t, err)

		assert.Regexp(t, `^BK\d{6}$`, res.Code)
		assert.Equal(t, inserted.Code, res.Code)
		assert.Equal(t, model.StatusPending, inserted.Status)
		assert.Equal(t, model.PaymentStatusUnpaid, inserted.PaymentStatus)
		assert.Equal(t, model.StatusPending, res.Status)
		assert.Equal(t, req.GuestName, res.GuestName)
		assert.NotEmpty(t, inserted.ID)
	})

	t.Run("rejects check-in in the past", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newService(t)

		req := validCreateRequest()
		req.CheckIn = time.Now().AddDate(0, 0, -1).Format(constant.DateOnlyFormat)

		_, err := svc.Create(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("rejects check-out not after check-in", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newService(t)

		req := validCreateRequest()
		req.CheckOut = req.CheckIn

		_, err := svc.Create(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newService(t)

		req := validCreateRequest()
		req.CheckIn = "31-12-2026"

		_, err := svc.Create(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("propagates repository error", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := newService(t)

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := svc.Create(context.Background(), validCreateRequest())
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestBookingGet(t *testing.T) {
	t.Parallel()

	t.Run("returns public projection by code", func(t *testing.T) {
		t.Parallel()

		svc, repo, cache := newService(t)

		booking := model.Booking{
			ID:                "11111111-1111-1111-1111-111111111111",
			Code:              "BK000042",
			GuestName:         "Jane Traveler",
			CheckIn:           time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			Guests:            2,
			AccommodationType: model.AccommodationDay,
			TotalAmount:       120,
			Status:            model.StatusConfirmed,
			PaymentStatus:     model.PaymentStatusPaid,
			AdminNotes:        "VIP guest",
		}

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.Get(context.Background(), "BK000042")
		require.NoError(t, err)

		assert.Equal(t, "BK000042", res.Code)
		assert.Equal(t, model.StatusConfirmed, res.Status)
		assert.Equal(t, "2026-09-10", res.CheckIn)
		assert.Empty(t, res.CheckOut)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		svc, repo, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := svc.Get(context.Background(), "BK999999")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingGetAll(t *testing.T) {
	t.Parallel()

	t.Run("first page carries pagination metadata", func(t *testing.T) {
		t.Parallel()

		svc, repo, cache := newService(t)

		models := []model.Booking{
			{ID: "a", Code: "BK000001", GuestName: "One", CheckIn: time.Now()},
			{ID: "b", Code: "BK000002", GuestName: "Two", CheckIn: time.Now()},
		}

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss).Times(2)
		repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(15, nil)
		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(models, nil)
		cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.GetAll(context.Background(), listParams(), gDto.FilterGroup{})
		require.NoError(t, err)

		assert.Len(t, res.Bookings, 2)
		assert.Equal(t, 15, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
		assert.Equal(t, 1, res.Page)
		assert.True(t, res.HasNext)
		assert.False(t, res.HasPrev)

		payload, err := json.Marshal(res)
		require.NoError(t, err)

		assert.Contains(t, string(payload), `"page":1`)
		assert.Contains(t, string(payload), `"has_next":true`)
		assert.Contains(t, string(payload), `"has_prev":false`)
	})

	t.Run("last page flips the cursors", func(t *testing.T) {
		t.Parallel()

		svc, repo, cache := newService(t)

		params := listParams()
		params.Page = 2

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss).Times(2)
		repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(15, nil)
		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{{ID: "o", Code: "BK000015"}}, nil)
		cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{})
		require.NoError(t, err)

		assert.Equal(t, 2, res.Page)
		assert.Equal(t, 2, res.TotalPage)
		assert.False(t, res.HasNext)
		assert.True(t, res.HasPrev)
	})
}

func TestBookingUpdateStatus(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc, repo, cache := newService(t)

		existing := model.Booking{ID: "abc", Code: "BK000007", Status: model.StatusPending}

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusConfirmed, fields[model.FieldStatus])
				assert.Contains(t, fields, constant.FieldModifiedAt)

				return nil
			})
		cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.UpdateStatus(context.Background(), dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed}, "abc")
		require.NoError(t, err)
	})

	t.Run("empty request", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newService(t)

		err := svc.UpdateStatus(context.Background(), dto.UpdateBookingStatusRequest{}, "abc")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := svc.UpdateStatus(context.Background(), dto.UpdateBookingStatusRequest{Status: model.StatusCancelled}, "missing")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingDelete(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc, repo, cache := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "abc", Code: "BK000007"}, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		require.NoError(t, svc.Delete(context.Background(), "abc"))
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := svc.Delete(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
