package in

import (
	"context"

	boarddto "runsheet/internal/modules/board/dto"
	boardin "runsheet/internal/modules/board/port/in"
)

type CLIHandler struct {
	usecase boardin.Usecase
}

func NewCLIHandler(usecase boardin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) CreateQueue(ctx context.Context) error {
	return h.usecase.CreateQueue(ctx)
}

func (h CLIHandler) AddEntry(ctx context.Context, itemRef string, minutes int) error {
	return h.usecase.AddEntry(ctx, boarddto.AddEntryInput{ItemRef: itemRef, Minutes: minutes})
}

func (h CLIHandler) RemoveEntry(ctx context.Context, position int) error {
	return h.usecase.RemoveEntry(ctx, position)
}

func (h CLIHandler) Move(ctx context.Context, from, to int) error {
	return h.usecase.Reorder(ctx, from, to)
}

func (h CLIHandler) SetDuration(ctx context.Context, position, minutes int) error {
	return h.usecase.SetDuration(ctx, position, minutes)
}

func (h CLIHandler) ClearCurrent(ctx context.Context) error {
	return h.usecase.ClearCurrent(ctx)
}

func (h CLIHandler) Snapshot(ctx context.Context) (boarddto.StateView, error) {
	return h.usecase.Snapshot(ctx)
}

func (h CLIHandler) SaveCurrentAsTemplate(ctx context.Context, name string) error {
	return h.usecase.SaveCurrentAsTemplate(ctx, name)
}

func (h CLIHandler) SaveRunAsTemplate(ctx context.Context, index int, name string) error {
	return h.usecase.SaveRunAsTemplate(ctx, index, name)
}

func (h CLIHandler) LoadTemplate(ctx context.Context, templateID string) error {
	return h.usecase.LoadTemplate(ctx, templateID)
}

func (h CLIHandler) RenameTemplate(ctx context.Context, templateID, name string) error {
	return h.usecase.RenameTemplate(ctx, templateID, name)
}

func (h CLIHandler) DeleteTemplate(ctx context.Context, templateID string) error {
	return h.usecase.DeleteTemplate(ctx, templateID)
}

func (h CLIHandler) DeleteArchiveEntry(ctx context.Context, index int) error {
	return h.usecase.DeleteArchiveEntry(ctx, index)
}

func (h CLIHandler) ClearArchive(ctx context.Context) error {
	return h.usecase.ClearArchive(ctx)
}

func (h CLIHandler) ToggleStarred(ctx context.Context, itemID string) error {
	return h.usecase.ToggleStarred(ctx, itemID)
}

func (h CLIHandler) Runs(ctx context.Context) ([]boarddto.RunSummaryOutput, error) {
	return h.usecase.Runs(ctx)
}

func (h CLIHandler) ReindexRuns(ctx context.Context) error {
	return h.usecase.ReindexRuns(ctx)
}
