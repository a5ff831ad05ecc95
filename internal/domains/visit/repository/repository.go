package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"trailguard/infras/otel"
	"trailguard/infras/postgres"
	"trailguard/internal/domains/visit/model"
	gDto "trailguard/shared/dto"
	gRepo "trailguard/shared/repository"
)

type Visit interface {
	Insert(ctx context.Context, model model.LocationVisit) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.LocationVisit, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.LocationVisit, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.LocationVisit]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Visit {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.LocationVisit](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
