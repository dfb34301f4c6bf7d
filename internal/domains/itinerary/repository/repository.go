package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"roam/infras/otel"
	"roam/infras/postgres"
	"roam/internal/domains/itinerary/model"
	gDto "roam/shared/dto"
	gRepo "roam/shared/repository"
)

type Itinerary interface {
	Insert(ctx context.Context, model model.Itinerary) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Itinerary, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Itinerary, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Itinerary]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Itinerary {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Itinerary](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
