package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"lagoon/infras/otel"
	"lagoon/infras/postgres"
	"lagoon/internal/domains/booking/model"
	"lagoon/shared/constant"
	gDto "lagoon/shared/dto"
	"lagoon/shared/logger"
	gRepo "lagoon/shared/repository"

	"github.com/lib/pq"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	CountByStatus(ctx context.Context) ([]model.StatusCount, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
	RevenueStats(ctx context.Context) (model.RevenueStats, error)
	RevenueSince(ctx context.Context, since time.Time) (float64, error)
	MonthlyTrend(ctx context.Context, since time.Time) ([]model.TrendBucket, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) CountByStatus(ctx context.Context) ([]model.StatusCount, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountByStatus")
	defer scope.End()

	query := fmt.Sprintf("SELECT status, COUNT(*) AS count FROM %s GROUP BY status", model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var counts []model.StatusCount

	err := repo.db.Read.SelectContext(ctx, &counts, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}

	return counts, nil
}

func (repo *repositoryImpl) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountCreatedSince")
	defer scope.End()

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE created_at >= $1", model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	err := repo.db.Read.GetContext(ctx, &count, query, since)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count recent bookings: %w", err)
	}

	return count, nil
}

func (repo *repositoryImpl) RevenueStats(ctx context.Context) (model.RevenueStats, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.RevenueStats")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT COALESCE(SUM(total_amount), 0) AS total, COALESCE(AVG(total_amount), 0) AS average FROM %s WHERE status = ANY($1)",
		model.TableName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var stats model.RevenueStats

	err := repo.db.Read.GetContext(ctx, &stats, query, pq.Array(model.RevenueStatuses))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return stats, fmt.Errorf("failed to aggregate booking revenue: %w", err)
	}

	return stats, nil
}

func (repo *repositoryImpl) RevenueSince(ctx context.Context, since time.Time) (float64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.RevenueSince")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT COALESCE(SUM(total_amount), 0) FROM %s WHERE status = ANY($1) AND created_at >= $2",
		model.TableName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var revenue float64

	err := repo.db.Read.GetContext(ctx, &revenue, query, pq.Array(model.RevenueStatuses), since)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to aggregate recent booking revenue: %w", err)
	}

	return revenue, nil
}

// MonthlyTrend buckets bookings by calendar month from since onward. Revenue
// within a bucket only counts confirmed and completed bookings.
func (repo *repositoryImpl) MonthlyTrend(ctx context.Context, since time.Time) ([]model.TrendBucket, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.MonthlyTrend")
	defer scope.End()

	query := fmt.Sprintf(`SELECT
			EXTRACT(YEAR FROM created_at)::int AS year,
			EXTRACT(MONTH FROM created_at)::int AS month,
			COUNT(*) AS bookings,
			COALESCE(SUM(total_amount) FILTER (WHERE status = ANY($1)), 0) AS revenue
		FROM %s
		WHERE created_at >= $2
		GROUP BY 1, 2
		ORDER BY 1, 2`, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var buckets []model.TrendBucket

	err := repo.db.Read.SelectContext(ctx, &buckets, query, pq.Array(model.RevenueStatuses), since)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to aggregate booking trend: %w", err)
	}

	return buckets, nil
}
