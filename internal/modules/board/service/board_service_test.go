package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"runsheet/internal/modules/board/domain"
	boardout "runsheet/internal/modules/board/port/out"
	"runsheet/internal/modules/board/service"
	apperrors "runsheet/internal/platform/errors"
)

type fakeStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   []string
	removes []string
	loadErr map[string]error
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}, loadErr: map[string]error{}}
}

func (f *fakeStore) Load(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.loadErr[key]; err != nil {
		return nil, err
	}
	payload, ok := f.data[key]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return payload, nil
}

func (f *fakeStore) Save(_ context.Context, key string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data[key] = payload
	f.saves = append(f.saves, key)
	return nil
}

func (f *fakeStore) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	f.removes = append(f.removes, key)
	return nil
}

func (f *fakeStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

type fakeProjector struct {
	upserts []domain.RunRecord
}

func (f *fakeProjector) UpsertRun(_ context.Context, _ int, record domain.RunRecord) error {
	f.upserts = append(f.upserts, record)
	return nil
}

func (f *fakeProjector) ListRuns(context.Context) ([]boardout.RunSummary, error) { return nil, nil }
func (f *fakeProjector) Reset(context.Context) error                             { return nil }

func TestNoSaveBeforeHydration(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc := service.NewBoardService(store, nil, nil)

	// Dispatches arriving before the initial load completes must not
	// write: they would clobber durable state with empty defaults.
	svc.Dispatch(context.Background(), domain.NewCreateQueue("sess-1", "2026-08-30T10:00:00Z"))
	svc.Dispatch(context.Background(), domain.NewAddEntry("break", 5, "s1"))
	if store.saveCount() != 0 {
		t.Fatalf("saves before hydration: %v", store.saves)
	}

	svc.Hydrate(context.Background())
	if store.saveCount() != 0 {
		t.Fatalf("hydrate itself wrote: %v", store.saves)
	}

	svc.Dispatch(context.Background(), domain.NewCreateQueue("sess-2", "2026-08-30T10:01:00Z"))
	if store.saveCount() == 0 {
		t.Fatal("no save after hydration")
	}
}

func TestHydrateSeedsFromStore(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	sess := domain.Session{ID: "sess-9", CreatedAt: "2026-08-29T09:00:00Z", Entries: []domain.Entry{{ItemRef: "break", TargetMinutes: 5, SlotID: "x"}}}
	store.data[boardout.KeyCurrent] = mustJSON(t, sess)
	store.data[boardout.KeyTemplates] = mustJSON(t, []domain.Session{{ID: "tpl-1", IsTemplate: true}})
	store.data[boardout.KeyArchive] = mustJSON(t, []domain.RunRecord{{OriginSessionID: "sess-0"}})
	store.data[boardout.KeyStarred] = mustJSON(t, map[string]bool{"source:check-in": true})

	svc := service.NewBoardService(store, nil, nil)
	svc.Hydrate(context.Background())

	state := svc.State()
	if !state.Hydrated {
		t.Fatal("not hydrated")
	}
	if state.Current == nil || state.Current.ID != "sess-9" {
		t.Fatalf("current = %+v", state.Current)
	}
	if len(state.Templates) != 1 || len(state.Archive) != 1 || !state.StarredItemIDs["source:check-in"] {
		t.Fatalf("collections = %+v", state)
	}
}

func TestHydratePartialOnBadKey(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	store.data[boardout.KeyTemplates] = []byte("{not json")
	store.data[boardout.KeyArchive] = mustJSON(t, []domain.RunRecord{{OriginSessionID: "sess-0"}})
	store.loadErr[boardout.KeyStarred] = fmt.Errorf("disk on fire")

	svc := service.NewBoardService(store, nil, nil)
	svc.Hydrate(context.Background())

	state := svc.State()
	if !state.Hydrated {
		t.Fatal("one bad key blocked hydration")
	}
	if len(state.Templates) != 0 {
		t.Fatalf("templates from malformed payload: %+v", state.Templates)
	}
	if len(state.Archive) != 1 {
		t.Fatalf("good key not loaded: %+v", state.Archive)
	}
	if len(state.StarredItemIDs) != 0 {
		t.Fatalf("starred from failing key: %+v", state.StarredItemIDs)
	}
}

func TestCurrentKeyRemovedWhenNil(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc := service.NewBoardService(store, nil, nil)
	svc.Hydrate(context.Background())

	svc.Dispatch(context.Background(), domain.NewCreateQueue("sess-1", "2026-08-30T10:00:00Z"))
	if _, ok := store.data[boardout.KeyCurrent]; !ok {
		t.Fatal("current not persisted")
	}

	svc.Dispatch(context.Background(), domain.NewFinishRun("", "2026-08-30T10:05:00Z"))
	if _, ok := store.data[boardout.KeyCurrent]; ok {
		t.Fatal("stale current survives finish; it would resurrect on next load")
	}
	if len(store.removes) == 0 {
		t.Fatal("remove never called")
	}
}

func TestSaveFailureDoesNotBlockDispatch(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc := service.NewBoardService(store, nil, nil)
	svc.Hydrate(context.Background())
	store.saveErr = fmt.Errorf("read-only filesystem")

	next := svc.Dispatch(context.Background(), domain.NewCreateQueue("sess-1", "2026-08-30T10:00:00Z"))
	if next.Current == nil {
		t.Fatal("in-memory state lost on save failure")
	}
	next = svc.Dispatch(context.Background(), domain.NewAddEntry("break", 5, "s1"))
	if len(next.Current.Entries) != 1 {
		t.Fatal("dispatch blocked after save failure")
	}
}

func TestFinishRunProjectsRecord(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	proj := &fakeProjector{}
	svc := service.NewBoardService(store, proj, nil)
	svc.Hydrate(context.Background())

	svc.Dispatch(context.Background(), domain.NewCreateQueue("sess-1", "2026-08-30T10:00:00Z"))
	svc.Dispatch(context.Background(), domain.NewAddEntry("break", 5, "s1"))
	svc.Dispatch(context.Background(), domain.NewFinishRun("done", "2026-08-30T10:30:00Z"))

	if len(proj.upserts) != 1 || proj.upserts[0].OriginSessionID != "sess-1" {
		t.Fatalf("projection = %+v", proj.upserts)
	}
}

func TestStateRoundTripsThroughStore(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc := service.NewBoardService(store, nil, nil)
	svc.Hydrate(context.Background())

	svc.Dispatch(context.Background(), domain.NewCreateQueue("sess-1", "2026-08-30T10:00:00Z"))
	svc.Dispatch(context.Background(), domain.NewAddEntry("source:check-in", 10, "s1"))
	svc.Dispatch(context.Background(), domain.NewSaveCurrentAsTemplate("standup", "tpl-1"))
	svc.Dispatch(context.Background(), domain.NewToggleStarred("source:check-in"))

	// A second service hydrating from the same store sees the same state.
	svc2 := service.NewBoardService(store, nil, nil)
	svc2.Hydrate(context.Background())
	state := svc2.State()
	if state.Current == nil || len(state.Current.Entries) != 1 {
		t.Fatalf("current = %+v", state.Current)
	}
	if state.Current.Entries[0].SlotID != "s1" {
		t.Fatalf("slot id lost in round trip: %+v", state.Current.Entries[0])
	}
	if len(state.Templates) != 1 || state.Templates[0].DisplayName != "standup" {
		t.Fatalf("templates = %+v", state.Templates)
	}
	if !state.StarredItemIDs["source:check-in"] {
		t.Fatal("star lost in round trip")
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	payload, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return payload
}
