package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"lagoon/infras/otel"
	"lagoon/infras/postgres"
	"lagoon/internal/domains/contact/model"
	"lagoon/shared/constant"
	gDto "lagoon/shared/dto"
	"lagoon/shared/logger"
	gRepo "lagoon/shared/repository"
)

type Contact interface {
	Insert(ctx context.Context, model model.Contact) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Contact, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Contact, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	CountByStatus(ctx context.Context) ([]model.StatusCount, error)
	CountByPriority(ctx context.Context, priority string) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Contact]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Contact {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Contact](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) CountByStatus(ctx context.Context) ([]model.StatusCount, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".contact.CountByStatus")
	defer scope.End()

	query := fmt.Sprintf("SELECT status, COUNT(*) AS count FROM %s GROUP BY status", model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var counts []model.StatusCount

	err := repo.db.Read.SelectContext(ctx, &counts, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to count contacts by status: %w", err)
	}

	return counts, nil
}

func (repo *repositoryImpl) CountByPriority(ctx context.Context, priority string) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".contact.CountByPriority")
	defer scope.End()

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE priority = $1", model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	err := repo.db.Read.GetContext(ctx, &count, query, priority)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count contacts by priority: %w", err)
	}

	return count, nil
}
