package out

import (
	"context"

	"runsheet/internal/modules/deck/domain"
)

type ItemStore interface {
	Save(ctx context.Context, document domain.ItemDocument) (string, error)
	FindByID(ctx context.Context, id string) (domain.ItemDocument, error)
	List(ctx context.Context) ([]domain.ItemDocument, error)
}

type ItemIndexProjector interface {
	UpsertItem(ctx context.Context, item domain.Item) error
	Search(ctx context.Context, query, tag string) ([]string, error)
	Reset(ctx context.Context) error
}
