package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"runsheet/internal/modules/board/domain"
	boardout "runsheet/internal/modules/board/port/out"
	apperrors "runsheet/internal/platform/errors"
)

// BoardService owns the one in-memory State value and serializes every
// dispatch through it: apply the pure reducer, commit the result, then
// persist. Saves are gated on hydration so the empty initial state can
// never clobber durable data during the startup load window, and a
// failed save is logged at warn and never propagated — the worst case
// is stale durable data, never an inconsistent in-memory state.
type BoardService struct {
	mu    sync.Mutex
	state domain.State
	store boardout.StateStore
	proj  boardout.RunProjector
	log   hclog.Logger
}

func NewBoardService(store boardout.StateStore, proj boardout.RunProjector, log hclog.Logger) *BoardService {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &BoardService{state: domain.NewState(), store: store, proj: proj, log: log}
}

// Hydrate loads the four persisted collections concurrently and seeds
// them through a single Hydrate action. A key that is absent, fails to
// load, or fails to decode hydrates to its default — partial hydration
// proceeds rather than blocking on one bad key.
func (s *BoardService) Hydrate(ctx context.Context) {
	var (
		wg        sync.WaitGroup
		current   *domain.Session
		templates []domain.Session
		archive   []domain.RunRecord
		starred   map[string]bool
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		var sess domain.Session
		if s.loadKey(ctx, boardout.KeyCurrent, &sess) && sess.ID != "" {
			current = &sess
		}
	}()
	go func() {
		defer wg.Done()
		s.loadKey(ctx, boardout.KeyTemplates, &templates)
	}()
	go func() {
		defer wg.Done()
		s.loadKey(ctx, boardout.KeyArchive, &archive)
	}()
	go func() {
		defer wg.Done()
		s.loadKey(ctx, boardout.KeyStarred, &starred)
	}()
	wg.Wait()

	s.Dispatch(ctx, domain.NewHydrate(domain.HydrateSeed{
		Current:   current,
		Templates: templates,
		Archive:   archive,
		Starred:   starred,
	}))
}

// loadKey reports whether target was populated from the store.
func (s *BoardService) loadKey(ctx context.Context, key string, target any) bool {
	payload, err := s.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.log.Warn("load state key failed, using default", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(payload, target); err != nil {
		// Malformed persisted data is treated the same as absent.
		s.log.Warn("decode state key failed, using default", "key", key, "error", err)
		return false
	}
	return true
}

// Dispatch applies the action and commits the resulting state. Each
// call runs to completion before the next begins; there is never an
// interleaving of two reducer applications.
func (s *BoardService) Dispatch(ctx context.Context, action domain.Action) domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	next := domain.Apply(prev, action)
	s.state = next

	if next.Hydrated && action.Kind != domain.ActionHydrate {
		s.persist(ctx, next)
		if action.Kind == domain.ActionFinishRun && s.proj != nil && len(next.Archive) > len(prev.Archive) {
			idx := len(next.Archive) - 1
			if err := s.proj.UpsertRun(ctx, idx, next.Archive[idx]); err != nil {
				s.log.Warn("project run failed", "error", err)
			}
		}
	}
	return next
}

// State returns the current committed state value.
func (s *BoardService) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *BoardService) persist(ctx context.Context, state domain.State) {
	s.saveKey(ctx, boardout.KeyTemplates, state.Templates)
	s.saveKey(ctx, boardout.KeyArchive, state.Archive)
	s.saveKey(ctx, boardout.KeyStarred, state.StarredItemIDs)

	if state.Current != nil {
		s.saveKey(ctx, boardout.KeyCurrent, state.Current)
		return
	}
	// Remove rather than save null so a finished session does not
	// resurrect on the next load.
	if err := s.store.Remove(ctx, boardout.KeyCurrent); err != nil {
		s.log.Warn("remove state key failed", "key", boardout.KeyCurrent, "error", err)
	}
}

func (s *BoardService) saveKey(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("encode state key failed", "key", key, "error", err)
		return
	}
	if err := s.store.Save(ctx, key, payload); err != nil {
		s.log.Warn("save state key failed", "key", key, "error", err)
	}
}

// Runs exposes the projected run read model.
func (s *BoardService) Runs(ctx context.Context) ([]boardout.RunSummary, error) {
	if s.proj == nil {
		return nil, nil
	}
	return s.proj.ListRuns(ctx)
}

// ReindexRuns rebuilds the run projection from the archive.
func (s *BoardService) ReindexRuns(ctx context.Context) error {
	if s.proj == nil {
		return nil
	}
	if err := s.proj.Reset(ctx); err != nil {
		return err
	}
	for i, rec := range s.State().Archive {
		if err := s.proj.UpsertRun(ctx, i, rec); err != nil {
			return err
		}
	}
	return nil
}
