package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"lagoon/infras/otel"
	"lagoon/internal/domains/admin/model/dto"
	bookingModel "lagoon/internal/domains/booking/model"
	bookingRepo "lagoon/internal/domains/booking/repository"
	contactModel "lagoon/internal/domains/contact/model"
	contactRepo "lagoon/internal/domains/contact/repository"
	"lagoon/shared/constant"
	gDto "lagoon/shared/dto"
	"lagoon/shared/timezone"
)

const (
	recentLimit     = 5
	trendMonthsBack = 5
)

type Dashboard interface {
	Get(ctx context.Context) (dto.DashboardResponse, error)
}

type dashboardImpl struct {
	bookings bookingRepo.Booking
	contacts contactRepo.Contact
	otel     otel.Otel
}

func NewDashboard(bookings bookingRepo.Booking, contacts contactRepo.Contact, otel otel.Otel) Dashboard {
	return &dashboardImpl{
		bookings: bookings,
		contacts: contacts,
		otel:     otel,
	}
}

// Get assembles the whole dashboard in one pass. Every aggregate tolerates an
// empty database and reports zeros instead of failing.
func (s *dashboardImpl) Get(ctx context.Context) (res dto.DashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dashboard.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfYear := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	if res.Bookings, err = s.bookingStats(ctx, startOfMonth, startOfYear); err != nil {
		return res, err
	}

	if res.Contacts, err = s.contactStats(ctx); err != nil {
		return res, err
	}

	if res.Trend, err = s.trend(ctx, startOfMonth.AddDate(0, -trendMonthsBack, 0)); err != nil {
		return res, err
	}

	return res, nil
}

func (s *dashboardImpl) bookingStats(ctx context.Context, startOfMonth, startOfYear time.Time) (stats dto.BookingStats, err error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings by status")

		return stats, fmt.Errorf("failed to count bookings by status: %w", err)
	}

	for _, c := range counts {
		stats.Total += c.Count

		switch c.Status {
		case bookingModel.StatusPending:
			stats.Pending = c.Count
		case bookingModel.StatusConfirmed:
			stats.Confirmed = c.Count
		case bookingModel.StatusCancelled:
			stats.Cancelled = c.Count
		case bookingModel.StatusCompleted:
			stats.Completed = c.Count
		}
	}

	if stats.MonthToDate, err = s.bookings.CountCreatedSince(ctx, startOfMonth); err != nil {
		return stats, fmt.Errorf("failed to count month-to-date bookings: %w", err)
	}

	if stats.YearToDate, err = s.bookings.CountCreatedSince(ctx, startOfYear); err != nil {
		return stats, fmt.Errorf("failed to count year-to-date bookings: %w", err)
	}

	revenue, err := s.bookings.RevenueStats(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to aggregate revenue: %w", err)
	}

	stats.Revenue.Total = revenue.Total
	stats.Revenue.Average = revenue.Average

	if stats.Revenue.MonthToDate, err = s.bookings.RevenueSince(ctx, startOfMonth); err != nil {
		return stats, fmt.Errorf("failed to aggregate month-to-date revenue: %w", err)
	}

	recent, err := s.bookings.GetAll(ctx, recentParams(), gDto.FilterGroup{})
	if err != nil {
		return stats, fmt.Errorf("failed to get recent bookings: %w", err)
	}

	stats.Recent = make([]dto.BookingSummary, len(recent))
	for i, booking := range recent {
		stats.Recent[i].FromModel(booking)
	}

	return stats, nil
}

func (s *dashboardImpl) contactStats(ctx context.Context) (stats dto.ContactStats, err error) {
	counts, err := s.contacts.CountByStatus(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count contacts by status")

		return stats, fmt.Errorf("failed to count contacts by status: %w", err)
	}

	for _, c := range counts {
		stats.Total += c.Count

		switch c.Status {
		case contactModel.StatusNew:
			stats.New = c.Count
		case contactModel.StatusRead:
			stats.Read = c.Count
		case contactModel.StatusReplied:
			stats.Replied = c.Count
		case contactModel.StatusResolved:
			stats.Resolved = c.Count
		}
	}

	if stats.Urgent, err = s.contacts.CountByPriority(ctx, contactModel.PriorityUrgent); err != nil {
		return stats, fmt.Errorf("failed to count urgent contacts: %w", err)
	}

	recent, err := s.contacts.GetAll(ctx, recentParams(), gDto.FilterGroup{})
	if err != nil {
		return stats, fmt.Errorf("failed to get recent contacts: %w", err)
	}

	stats.Recent = make([]dto.ContactSummary, len(recent))
	for i, contact := range recent {
		stats.Recent[i].FromModel(contact)
	}

	return stats, nil
}

func (s *dashboardImpl) trend(ctx context.Context, since time.Time) ([]dto.TrendPoint, error) {
	buckets, err := s.bookings.MonthlyTrend(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking trend: %w", err)
	}

	// The aggregation only emits months that have bookings; the dashboard
	// always shows the full window, so empty months become zero points.
	trend := make([]dto.TrendPoint, trendMonthsBack+1)
	for i := range trend {
		month := since.AddDate(0, i, 0)
		trend[i] = dto.TrendPoint{Year: month.Year(), Month: int(month.Month())}
	}

	for _, bucket := range buckets {
		for i := range trend {
			if trend[i].Year == bucket.Year && trend[i].Month == bucket.Month {
				trend[i].Bookings = bucket.Bookings
				trend[i].Revenue = bucket.Revenue
			}
		}
	}

	return trend, nil
}

func recentParams() gDto.QueryParams {
	return gDto.QueryParams{
		Page:    1,
		Limit:   recentLimit,
		SortBy:  constant.DefaultValueSortBy,
		SortDir: gDto.SortDirDesc,
	}
}
