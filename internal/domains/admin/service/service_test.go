package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	otelMocks "lagoon/infras/otel/mocks"
	"lagoon/internal/domains/admin/model/dto"
	"lagoon/internal/domains/admin/service"
	bookingMocks "lagoon/internal/domains/booking/mocks"
	bookingModel "lagoon/internal/domains/booking/model"
	contactMocks "lagoon/internal/domains/contact/mocks"
	contactModel "lagoon/internal/domains/contact/model"
	gDto "lagoon/shared/dto"
	"lagoon/shared/model"
	"lagoon/shared/timezone"
)

func newDashboard(t *testing.T) (service.Dashboard, *bookingMocks.MockBooking, *contactMocks.MockContact) {
	t.Helper()

	ctrl := gomock.NewController(t)
	bookings := bookingMocks.NewMockBooking(ctrl)
	contacts := contactMocks.NewMockContact(ctrl)

	return service.NewDashboard(bookings, contacts, otelMocks.NewOtel()), bookings, contacts
}

func newExport(t *testing.T) (service.Export, *bookingMocks.MockBooking, *contactMocks.MockContact) {
	t.Helper()

	ctrl := gomock.NewController(t)
	bookings := bookingMocks.NewMockBooking(ctrl)
	contacts := contactMocks.NewMockContact(ctrl)

	return service.NewExport(bookings, contacts, otelMocks.NewOtel()), bookings, contacts
}

func TestDashboardGet(t *testing.T) {
	t.Parallel()

	t.Run("empty database reports zeros", func(t *testing.T) {
		t.Parallel()

		svc, bookings, contacts := newDashboard(t)

		bookings.EXPECT().CountByStatus(gomock.Any()).Return(nil, nil)
		bookings.EXPECT().CountCreatedSince(gomock.Any(), gomock.Any()).Return(0, nil).Times(2)
		bookings.EXPECT().RevenueStats(gomock.Any()).Return(bookingModel.RevenueStats{}, nil)
		bookings.EXPECT().RevenueSince(gomock.Any(), gomock.Any()).Return(0.0, nil)
		bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		bookings.EXPECT().MonthlyTrend(gomock.Any(), gomock.Any()).Return(nil, nil)
		contacts.EXPECT().CountByStatus(gomock.Any()).Return(nil, nil)
		contacts.EXPECT().CountByPriority(gomock.Any(), contactModel.PriorityUrgent).Return(0, nil)
		contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := svc.Get(context.Background())
		require.NoError(t, err)

		assert.Zero(t, res.Bookings.Total)
		assert.Zero(t, res.Bookings.Revenue.Total)
		assert.Empty(t, res.Bookings.Recent)
		assert.Zero(t, res.Contacts.Total)

		now := timezone.Now()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)

		require.Len(t, res.Trend, 6)
		assert.Equal(t, start.Year(), res.Trend[0].Year)
		assert.Equal(t, int(start.Month()), res.Trend[0].Month)

		for _, point := range res.Trend {
			assert.Zero(t, point.Bookings)
			assert.Zero(t, point.Revenue)
		}
	})

	t.Run("aggregates all figures", func(t *testing.T) {
		t.Parallel()

		svc, bookings, contacts := newDashboard(t)

		bookings.EXPECT().CountByStatus(gomock.Any()).Return([]bookingModel.StatusCount{
			{Status: bookingModel.StatusPending, Count: 3},
			{Status: bookingModel.StatusConfirmed, Count: 5},
			{Status: bookingModel.StatusCompleted, Count: 2},
		}, nil)
		bookings.EXPECT().CountCreatedSince(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, since time.Time) (int, error) {
				assert.Equal(t, 1, since.Day(), "period counters must start on the first of the period")

				return 4, nil
			}).
			Times(2)
		bookings.EXPECT().RevenueStats(gomock.Any()).Return(bookingModel.RevenueStats{Total: 7000, Average: 1000}, nil)
		bookings.EXPECT().RevenueSince(gomock.Any(), gomock.Any()).Return(2500.0, nil)
		bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
				assert.Equal(t, 5, params.Limit)

				return []bookingModel.Booking{{
					Code:        "BK100001",
					GuestName:   "Ana Reyes",
					CheckIn:     timezone.Now(),
					Status:      bookingModel.StatusConfirmed,
					TotalAmount: 1500,
					Metadata:    model.Metadata{CreatedAt: timezone.Now()},
				}}, nil
			})
		now := timezone.Now()
		thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		lastMonth := thisMonth.AddDate(0, -1, 0)

		bookings.EXPECT().MonthlyTrend(gomock.Any(), gomock.Any()).Return([]bookingModel.TrendBucket{
			{Year: lastMonth.Year(), Month: int(lastMonth.Month()), Bookings: 4, Revenue: 3200},
			{Year: thisMonth.Year(), Month: int(thisMonth.Month()), Bookings: 6, Revenue: 3800},
		}, nil)

		contacts.EXPECT().CountByStatus(gomock.Any()).Return([]contactModel.StatusCount{
			{Status: contactModel.StatusNew, Count: 7},
			{Status: contactModel.StatusReplied, Count: 2},
		}, nil)
		contacts.EXPECT().CountByPriority(gomock.Any(), contactModel.PriorityUrgent).Return(1, nil)
		contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]contactModel.Contact{{
			Code:     "CT100001",
			Name:     "Marco Cruz",
			Subject:  contactModel.SubjectBooking,
			Status:   contactModel.StatusNew,
			Priority: contactModel.PriorityUrgent,
			Metadata: model.Metadata{CreatedAt: timezone.Now()},
		}}, nil)

		res, err := svc.Get(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 10, res.Bookings.Total)
		assert.Equal(t, 3, res.Bookings.Pending)
		assert.Equal(t, 5, res.Bookings.Confirmed)
		assert.Equal(t, 2, res.Bookings.Completed)
		assert.Equal(t, 4, res.Bookings.MonthToDate)
		assert.InDelta(t, 7000, res.Bookings.Revenue.Total, 0.001)
		assert.InDelta(t, 2500, res.Bookings.Revenue.MonthToDate, 0.001)
		require.Len(t, res.Bookings.Recent, 1)
		assert.Equal(t, "BK100001", res.Bookings.Recent[0].Code)

		assert.Equal(t, 9, res.Contacts.Total)
		assert.Equal(t, 7, res.Contacts.New)
		assert.Equal(t, 1, res.Contacts.Urgent)
		require.Len(t, res.Contacts.Recent, 1)

		require.Len(t, res.Trend, 6)
		assert.Zero(t, res.Trend[0].Bookings)
		assert.Equal(t, int(lastMonth.Month()), res.Trend[4].Month)
		assert.Equal(t, 4, res.Trend[4].Bookings)
		assert.InDelta(t, 3800, res.Trend[5].Revenue, 0.001)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		t.Parallel()

		svc, bookings, _ := newDashboard(t)

		bookings.EXPECT().CountByStatus(gomock.Any()).Return(nil, errors.New("db down"))

		_, err := svc.Get(context.Background())
		require.Error(t, err)
	})
}

func exportBookings() []bookingModel.Booking {
	return []bookingModel.Booking{{
		Code:              "BK100001",
		GuestName:         "Ana Reyes",
		GuestEmail:        "ana@example.com",
		CheckIn:           timezone.Now(),
		Guests:            2,
		AccommodationType: bookingModel.AccommodationDay,
		Addons:            []string{"cottage", "grill"},
		TotalAmount:       1500,
		Status:            bookingModel.StatusConfirmed,
		PaymentStatus:     bookingModel.PaymentStatusPaid,
		SpecialRequests:   "near the pool, please",
		Metadata:          model.Metadata{CreatedAt: timezone.Now()},
	}}
}

func TestExport(t *testing.T) {
	t.Parallel()

	t.Run("csv quotes free text with commas", func(t *testing.T) {
		t.Parallel()

		svc, bookings, _ := newExport(t)

		bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(exportBookings(), nil)

		res, err := svc.Export(context.Background(), dto.ExportRequest{
			Resource: dto.ResourceBookings,
			Format:   dto.FormatCSV,
		}, gDto.FilterGroup{})
		require.NoError(t, err)

		assert.Regexp(t, `^bookings_export_\d{4}-\d{2}-\d{2}\.csv$`, res.FileName)
		assert.Contains(t, string(res.Data), "booking_code,guest_name")
		assert.Contains(t, string(res.Data), `"near the pool, please"`)
		assert.Contains(t, string(res.Data), `"cottage, grill"`)
	})

	t.Run("csv quotes free text without delimiters", func(t *testing.T) {
		t.Parallel()

		svc, _, contacts := newExport(t)

		contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]contactModel.Contact{{
			Code:     "CT100002",
			Name:     "Lia Santos",
			Subject:  contactModel.SubjectFeedback,
			Message:  "lovely stay",
			Response: "thank you",
			Metadata: model.Metadata{CreatedAt: timezone.Now()},
		}}, nil)

		res, err := svc.Export(context.Background(), dto.ExportRequest{
			Resource: dto.ResourceContacts,
			Format:   dto.FormatCSV,
		}, gDto.FilterGroup{})
		require.NoError(t, err)

		assert.Contains(t, string(res.Data), `"lovely stay"`)
		assert.Contains(t, string(res.Data), `"thank you"`)
		assert.Contains(t, string(res.Data), "CT100002,Lia Santos")
	})

	t.Run("json round trips", func(t *testing.T) {
		t.Parallel()

		svc, _, contacts := newExport(t)

		contacts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]contactModel.Contact{{
			Code:     "CT100001",
			Name:     "Marco Cruz",
			Subject:  contactModel.SubjectComplaint,
			Message:  "the karaoke was too loud",
			Status:   contactModel.StatusNew,
			Priority: contactModel.PriorityHigh,
			Metadata: model.Metadata{CreatedAt: timezone.Now()},
		}}, nil)

		res, err := svc.Export(context.Background(), dto.ExportRequest{
			Resource: dto.ResourceContacts,
			Format:   dto.FormatJSON,
		}, gDto.FilterGroup{})
		require.NoError(t, err)

		var records []map[string]any
		require.NoError(t, json.Unmarshal(res.Data, &records))
		require.Len(t, records, 1)
		assert.Equal(t, "CT100001", records[0]["contact_code"])
		assert.Equal(t, "the karaoke was too loud", records[0]["message"])
	})

	t.Run("xlsx produces a readable workbook", func(t *testing.T) {
		t.Parallel()

		svc, bookings, _ := newExport(t)

		bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(exportBookings(), nil)

		res, err := svc.Export(context.Background(), dto.ExportRequest{
			Resource: dto.ResourceBookings,
			Format:   dto.FormatXLSX,
		}, gDto.FilterGroup{})
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(res.Data))
		require.NoError(t, err)
		defer f.Close()

		header, err := f.GetCellValue("Export", "A1")
		require.NoError(t, err)
		assert.Equal(t, "booking_code", header)

		code, err := f.GetCellValue("Export", "A2")
		require.NoError(t, err)
		assert.Equal(t, "BK100001", code)
	})

	t.Run("repository error", func(t *testing.T) {
		t.Parallel()

		svc, bookings, _ := newExport(t)

		bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := svc.Export(context.Background(), dto.ExportRequest{
			Resource: dto.ResourceBookings,
			Format:   dto.FormatCSV,
		}, gDto.FilterGroup{})
		require.Error(t, err)
	})
}
