package in

import (
	"context"

	"runsheet/internal/modules/board/dto"
)

type Usecase interface {
	CreateQueue(ctx context.Context) error
	LoadTemplate(ctx context.Context, templateID string) error
	AddEntry(ctx context.Context, input dto.AddEntryInput) error
	RemoveEntry(ctx context.Context, position int) error
	SetDuration(ctx context.Context, position, minutes int) error
	SetEntryNotes(ctx context.Context, position int, text string) error
	RecordActual(ctx context.Context, position, seconds int) error
	Reorder(ctx context.Context, from, to int) error
	StartRun(ctx context.Context) error
	Advance(ctx context.Context) error
	Tick(ctx context.Context) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	FinishRun(ctx context.Context, reflectionNotes string) error
	SaveCurrentAsTemplate(ctx context.Context, name string) error
	SaveRunAsTemplate(ctx context.Context, archiveIndex int, name string) error
	ClearCurrent(ctx context.Context) error
	DeleteTemplate(ctx context.Context, templateID string) error
	RenameTemplate(ctx context.Context, templateID, name string) error
	DeleteArchiveEntry(ctx context.Context, index int) error
	ClearArchive(ctx context.Context) error
	ToggleStarred(ctx context.Context, itemID string) error
	Snapshot(ctx context.Context) (dto.StateView, error)
	Runs(ctx context.Context) ([]dto.RunSummaryOutput, error)
	ReindexRuns(ctx context.Context) error
}
