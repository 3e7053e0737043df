package in

import (
	"context"

	deckdto "runsheet/internal/modules/deck/dto"
	deckin "runsheet/internal/modules/deck/port/in"
)

type CLIHandler struct {
	usecase deckin.Usecase
}

func NewCLIHandler(usecase deckin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, name string, tags []string, minutes int, body string) (deckdto.ItemOutput, error) {
	return h.usecase.Add(ctx, deckdto.AddItemInput{Name: name, Tags: tags, DefaultMinutes: minutes, Body: body})
}

func (h CLIHandler) List(ctx context.Context) ([]deckdto.ItemOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, id string) (deckdto.ItemDetailOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Search(ctx context.Context, query, tag string) ([]deckdto.ItemOutput, error) {
	return h.usecase.Search(ctx, deckdto.SearchInput{Query: query, Tag: tag})
}

func (h CLIHandler) Tags(ctx context.Context) ([]string, error) {
	return h.usecase.Tags(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
