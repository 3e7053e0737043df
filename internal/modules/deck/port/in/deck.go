package in

import (
	"context"

	"runsheet/internal/modules/deck/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddItemInput) (dto.ItemOutput, error)
	Import(ctx context.Context, input dto.ImportItemInput) (dto.ItemOutput, error)
	List(ctx context.Context) ([]dto.ItemOutput, error)
	Get(ctx context.Context, id string) (dto.ItemDetailOutput, error)
	Search(ctx context.Context, input dto.SearchInput) ([]dto.ItemOutput, error)
	Tags(ctx context.Context) ([]string, error)
	Reindex(ctx context.Context) error
}
