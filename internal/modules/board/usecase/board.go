package usecase

import (
	"context"
	"fmt"
	"strings"

	"runsheet/internal/modules/board/domain"
	"runsheet/internal/modules/board/dto"
	boardin "runsheet/internal/modules/board/port/in"
	"runsheet/internal/modules/board/service"
	deckin "runsheet/internal/modules/deck/port/in"
	"runsheet/internal/platform/clock"
	apperrors "runsheet/internal/platform/errors"
	"runsheet/internal/platform/id"
)

// Interactor validates operator intents and turns them into reducer
// actions. The reducer underneath is total and silently ignores
// anything that does not fit the state; the feedback a surface needs
// ("no queue yet", "that entry already ran") comes from here.
type Interactor struct {
	svc   *service.BoardService
	deck  deckin.Usecase
	clock clock.Clock
	idGen id.Generator
}

func NewInteractor(svc *service.BoardService, deck deckin.Usecase, clk clock.Clock, idGen id.Generator) boardin.Usecase {
	return &Interactor{svc: svc, deck: deck, clock: clk, idGen: idGen}
}

func (i *Interactor) CreateQueue(ctx context.Context) error {
	if i.svc.State().ActiveIndex != nil {
		return apperrors.ErrRunInProgress
	}
	i.svc.Dispatch(ctx, domain.NewCreateQueue(i.idGen.New(), clock.Stamp(i.clock.Now())))
	return nil
}

func (i *Interactor) LoadTemplate(ctx context.Context, templateID string) error {
	state := i.svc.State()
	if state.ActiveIndex != nil {
		return apperrors.ErrRunInProgress
	}
	if !hasTemplate(state, templateID) {
		return fmt.Errorf("template %s: %w", templateID, apperrors.ErrNotFound)
	}
	i.svc.Dispatch(ctx, domain.NewLoadTemplateAsCurrent(templateID, i.idGen.New(), clock.Stamp(i.clock.Now())))
	return nil
}

func (i *Interactor) AddEntry(ctx context.Context, input dto.AddEntryInput) error {
	if i.svc.State().Current == nil {
		return apperrors.ErrNoCurrentSession
	}
	if input.Minutes < 1 {
		return fmt.Errorf("%w: duration must be at least one minute", apperrors.ErrInvalidInput)
	}
	ref := strings.TrimSpace(input.ItemRef)
	if ref == "" {
		return fmt.Errorf("%w: item ref is required", apperrors.ErrInvalidInput)
	}
	if ref != domain.BreakItemRef && i.deck != nil {
		if _, err := i.deck.Get(ctx, ref); err != nil {
			return fmt.Errorf("resolve item %s: %w", ref, err)
		}
	}
	i.svc.Dispatch(ctx, domain.NewAddEntry(ref, input.Minutes, i.idGen.NewShort()))
	return nil
}

func (i *Interactor) RemoveEntry(ctx context.Context, position int) error {
	if err := i.requireEntry(position); err != nil {
		return err
	}
	if err := i.requireUnlocked(position); err != nil {
		return err
	}
	i.svc.Dispatch(ctx, domain.NewRemoveEntry(position))
	return nil
}

func (i *Interactor) SetDuration(ctx context.Context, position, minutes int) error {
	if err := i.requireEntry(position); err != nil {
		return err
	}
	if minutes < 1 {
		return fmt.Errorf("%w: duration must be at least one minute", apperrors.ErrInvalidInput)
	}
	i.svc.Dispatch(ctx, domain.NewSetDuration(position, minutes))
	return nil
}

func (i *Interactor) SetEntryNotes(ctx context.Context, position int, text string) error {
	if err := i.requireEntry(position); err != nil {
		return err
	}
	i.svc.Dispatch(ctx, domain.NewSetEntryNotes(position, text))
	return nil
}

func (i *Interactor) RecordActual(ctx context.Context, position, seconds int) error {
	if err := i.requireEntry(position); err != nil {
		return err
	}
	if seconds < 0 {
		return fmt.Errorf("%w: seconds must be non-negative", apperrors.ErrInvalidInput)
	}
	i.svc.Dispatch(ctx, domain.NewRecordActualSeconds(position, seconds))
	return nil
}

// Reorder applies a single-element move. While a run is live only the
// not-yet-run suffix may move: the in-progress entry and everything
// before it are locked, and any move touching them is refused.
func (i *Interactor) Reorder(ctx context.Context, from, to int) error {
	state := i.svc.State()
	if state.Current == nil {
		return apperrors.ErrNoCurrentSession
	}
	n := len(state.Current.Entries)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d -> %d out of range", apperrors.ErrInvalidInput, from, to)
	}
	if state.ActiveIndex != nil {
		floor := *state.ActiveIndex + 1
		if from < floor || to < floor {
			return apperrors.ErrEntryLocked
		}
	}
	i.svc.Dispatch(ctx, domain.NewReorder(from, to))
	return nil
}

func (i *Interactor) StartRun(ctx context.Context) error {
	state := i.svc.State()
	if state.Current == nil {
		return apperrors.ErrNoCurrentSession
	}
	if state.ActiveIndex != nil {
		return apperrors.ErrRunInProgress
	}
	if len(state.Current.Entries) == 0 {
		return apperrors.ErrEmptyQueue
	}
	i.svc.Dispatch(ctx, domain.NewStartRun())
	return nil
}

// Advance records the elapsed time against the entry that just ran,
// then moves on. Past the last entry the active index snaps to nil and
// the surface routes to reflection.
func (i *Interactor) Advance(ctx context.Context) error {
	state := i.svc.State()
	if state.ActiveIndex == nil {
		return apperrors.ErrNoRunInProgress
	}
	i.svc.Dispatch(ctx, domain.NewRecordActualSeconds(*state.ActiveIndex, state.Timer.ElapsedSeconds))
	i.svc.Dispatch(ctx, domain.NewAdvance())
	return nil
}

func (i *Interactor) Tick(ctx context.Context) error {
	i.svc.Dispatch(ctx, domain.NewTick())
	return nil
}

func (i *Interactor) Pause(ctx context.Context) error {
	if i.svc.State().ActiveIndex == nil {
		return apperrors.ErrNoRunInProgress
	}
	i.svc.Dispatch(ctx, domain.NewPause())
	return nil
}

func (i *Interactor) Resume(ctx context.Context) error {
	if i.svc.State().ActiveIndex == nil {
		return apperrors.ErrNoRunInProgress
	}
	i.svc.Dispatch(ctx, domain.NewResume())
	return nil
}

func (i *Interactor) FinishRun(ctx context.Context, reflectionNotes string) error {
	if i.svc.State().Current == nil {
		return apperrors.ErrNoCurrentSession
	}
	i.svc.Dispatch(ctx, domain.NewFinishRun(reflectionNotes, clock.Stamp(i.clock.Now())))
	return nil
}

func (i *Interactor) SaveCurrentAsTemplate(ctx context.Context, name string) error {
	if i.svc.State().Current == nil {
		return apperrors.ErrNoCurrentSession
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: template name is required", apperrors.ErrInvalidInput)
	}
	i.svc.Dispatch(ctx, domain.NewSaveCurrentAsTemplate(name, i.idGen.New()))
	return nil
}

func (i *Interactor) SaveRunAsTemplate(ctx context.Context, archiveIndex int, name string) error {
	state := i.svc.State()
	if archiveIndex < 0 || archiveIndex >= len(state.Archive) {
		return fmt.Errorf("archive entry %d: %w", archiveIndex, apperrors.ErrNotFound)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: template name is required", apperrors.ErrInvalidInput)
	}
	i.svc.Dispatch(ctx, domain.NewSaveRunAsTemplate(archiveIndex, name, i.idGen.New(), clock.Stamp(i.clock.Now())))
	return nil
}

func (i *Interactor) ClearCurrent(ctx context.Context) error {
	i.svc.Dispatch(ctx, domain.NewClearCurrent())
	return nil
}

func (i *Interactor) DeleteTemplate(ctx context.Context, templateID string) error {
	if !hasTemplate(i.svc.State(), templateID) {
		return fmt.Errorf("template %s: %w", templateID, apperrors.ErrNotFound)
	}
	i.svc.Dispatch(ctx, domain.NewDeleteTemplate(templateID))
	return nil
}

func (i *Interactor) RenameTemplate(ctx context.Context, templateID, name string) error {
	if !hasTemplate(i.svc.State(), templateID) {
		return fmt.Errorf("template %s: %w", templateID, apperrors.ErrNotFound)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: template name is required", apperrors.ErrInvalidInput)
	}
	i.svc.Dispatch(ctx, domain.NewRenameTemplate(templateID, name))
	return nil
}

func (i *Interactor) DeleteArchiveEntry(ctx context.Context, index int) error {
	if index < 0 || index >= len(i.svc.State().Archive) {
		return fmt.Errorf("archive entry %d: %w", index, apperrors.ErrNotFound)
	}
	i.svc.Dispatch(ctx, domain.NewDeleteArchiveEntry(index))
	return nil
}

func (i *Interactor) ClearArchive(ctx context.Context) error {
	i.svc.Dispatch(ctx, domain.NewClearArchive())
	return nil
}

func (i *Interactor) ToggleStarred(ctx context.Context, itemID string) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return fmt.Errorf("%w: item id is required", apperrors.ErrInvalidInput)
	}
	i.svc.Dispatch(ctx, domain.NewToggleStarred(itemID))
	return nil
}

func (i *Interactor) Snapshot(ctx context.Context) (dto.StateView, error) {
	state := i.svc.State()
	view := dto.StateView{
		ActiveIndex: state.ActiveIndex,
		Hydrated:    state.Hydrated,
		Timer: dto.TimerView{
			ElapsedSeconds:    state.Timer.ElapsedSeconds,
			CumulativeSeconds: state.Timer.CumulativeSeconds,
			Paused:            state.Timer.Paused,
		},
	}
	names := i.nameIndex(ctx, state)
	if state.Current != nil {
		cur := i.sessionView(*state.Current, names)
		view.Current = &cur
	}
	for _, tpl := range state.Templates {
		view.Templates = append(view.Templates, i.sessionView(tpl, names))
	}
	for _, rec := range state.Archive {
		view.Archive = append(view.Archive, dto.RunRecordView{
			OriginSessionID: rec.OriginSessionID,
			CompletedAt:     rec.CompletedAt,
			ReflectionNotes: rec.ReflectionNotes,
			Entries:         i.entryViews(rec.Entries, names),
			PlannedMinutes:  domain.PlannedMinutes(rec.Entries),
			ActualSeconds:   totalActual(rec.Entries),
		})
	}
	for itemID := range state.StarredItemIDs {
		view.Starred = append(view.Starred, itemID)
	}
	return view, nil
}

func (i *Interactor) Runs(ctx context.Context) ([]dto.RunSummaryOutput, error) {
	summaries, err := i.svc.Runs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RunSummaryOutput, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.RunSummaryOutput{
			OriginSessionID: s.OriginSessionID,
			CompletedAt:     s.CompletedAt,
			EntryCount:      s.EntryCount,
			PlannedMinutes:  s.PlannedMinutes,
			ActualSeconds:   s.ActualSeconds,
			ReflectionNotes: s.ReflectionNotes,
		})
	}
	return out, nil
}

func (i *Interactor) ReindexRuns(ctx context.Context) error {
	return i.svc.ReindexRuns(ctx)
}

func (i *Interactor) requireEntry(position int) error {
	state := i.svc.State()
	if state.Current == nil {
		return apperrors.ErrNoCurrentSession
	}
	if position < 0 || position >= len(state.Current.Entries) {
		return fmt.Errorf("entry %d: %w", position, apperrors.ErrNotFound)
	}
	return nil
}

func (i *Interactor) requireUnlocked(position int) error {
	state := i.svc.State()
	if state.ActiveIndex != nil && position <= *state.ActiveIndex {
		return apperrors.ErrEntryLocked
	}
	return nil
}

// nameIndex resolves every distinct item ref in the state to a display
// name in one pass over the deck. Refs the deck no longer knows keep
// their raw id; a break renders as "Break".
func (i *Interactor) nameIndex(ctx context.Context, state domain.State) map[string]string {
	names := map[string]string{domain.BreakItemRef: "Break"}
	if i.deck == nil {
		return names
	}
	items, err := i.deck.List(ctx)
	if err != nil {
		return names
	}
	for _, item := range items {
		names[item.ID] = item.Name
	}
	return names
}

func (i *Interactor) sessionView(sess domain.Session, names map[string]string) dto.SessionView {
	return dto.SessionView{
		ID:             sess.ID,
		DisplayName:    sess.DisplayName,
		CreatedAt:      sess.CreatedAt,
		IsTemplate:     sess.IsTemplate,
		Entries:        i.entryViews(sess.Entries, names),
		PlannedMinutes: domain.PlannedMinutes(sess.Entries),
	}
}

func (i *Interactor) entryViews(entries []domain.Entry, names map[string]string) []dto.EntryView {
	out := make([]dto.EntryView, 0, len(entries))
	for _, e := range entries {
		name, ok := names[e.ItemRef]
		if !ok {
			name = e.ItemRef
		}
		out = append(out, dto.EntryView{
			ItemRef:       e.ItemRef,
			ItemName:      name,
			TargetMinutes: e.TargetMinutes,
			Position:      e.Position,
			SlotID:        e.SlotID,
			RunNotes:      e.RunNotes,
			ActualSeconds: e.ActualSeconds,
		})
	}
	return out
}

func hasTemplate(state domain.State, templateID string) bool {
	for _, tpl := range state.Templates {
		if tpl.ID == templateID {
			return true
		}
	}
	return false
}

func totalActual(entries []domain.Entry) int {
	total := 0
	for _, e := range entries {
		if e.ActualSeconds != nil {
			total += *e.ActualSeconds
		}
	}
	return total
}
