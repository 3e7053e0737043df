package usecase

import (
	"context"

	"runsheet/internal/modules/deck/domain"
	"runsheet/internal/modules/deck/dto"
	deckin "runsheet/internal/modules/deck/port/in"
	"runsheet/internal/modules/deck/service"
)

type Interactor struct {
	svc *service.ItemService
}

func NewInteractor(svc *service.ItemService) deckin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Add(ctx context.Context, input dto.AddItemInput) (dto.ItemOutput, error) {
	item, err := i.svc.Add(ctx, input.Name, input.Tags, input.DefaultMinutes, input.Body)
	if err != nil {
		return dto.ItemOutput{}, err
	}
	return toOutput(item), nil
}

func (i *Interactor) Import(ctx context.Context, input dto.ImportItemInput) (dto.ItemOutput, error) {
	item, err := i.svc.Import(ctx, input.Name, input.Slug, input.Tags, input.DefaultMinutes, input.Body)
	if err != nil {
		return dto.ItemOutput{}, err
	}
	return toOutput(item), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.ItemOutput, error) {
	items, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemOutput, 0, len(items))
	for _, item := range items {
		out = append(out, toOutput(item))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.ItemDetailOutput, error) {
	doc, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.ItemDetailOutput{}, err
	}
	return dto.ItemDetailOutput{
		ID:             doc.Item.ID,
		Name:           doc.Item.Name,
		Origin:         string(doc.Item.Origin),
		Tags:           doc.Item.Tags,
		DefaultMinutes: doc.Item.DefaultMinutes,
		AddedAt:        doc.Item.AddedAt,
		NotePath:       doc.Item.NotePath,
		Body:           doc.Body,
	}, nil
}

func (i *Interactor) Search(ctx context.Context, input dto.SearchInput) ([]dto.ItemOutput, error) {
	items, err := i.svc.Search(ctx, input.Query, input.Tag)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemOutput, 0, len(items))
	for _, item := range items {
		out = append(out, toOutput(item))
	}
	return out, nil
}

func (i *Interactor) Tags(ctx context.Context) ([]string, error) {
	return i.svc.Tags(ctx)
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func toOutput(item domain.Item) dto.ItemOutput {
	return dto.ItemOutput{
		ID:             item.ID,
		Name:           item.Name,
		Origin:         string(item.Origin),
		Tags:           item.Tags,
		DefaultMinutes: item.DefaultMinutes,
		NotePath:       item.NotePath,
	}
}
