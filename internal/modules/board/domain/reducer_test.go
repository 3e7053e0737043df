package domain

import "testing"

func buildQueue(t *testing.T, entries int) State {
	t.Helper()
	s := Apply(NewState(), NewHydrate(HydrateSeed{}))
	s = Apply(s, NewCreateQueue("sess-1", "2026-08-30T10:00:00Z"))
	refs := []string{"source:check-in", "source:dot-voting", "custom:warmup-1", BreakItemRef}
	for i := 0; i < entries; i++ {
		s = Apply(s, NewAddEntry(refs[i%len(refs)], 5+5*i, slotID(i)))
	}
	return s
}

func slotID(i int) string {
	return string(rune('a'+i)) + "-slot"
}

func assertDense(t *testing.T, entries []Entry) {
	t.Helper()
	for i, e := range entries {
		if e.Position != i {
			t.Fatalf("entry %d has position %d, want %d", i, e.Position, i)
		}
	}
}

func TestCreateQueueAndAddEntries(t *testing.T) {
	t.Parallel()
	s := buildQueue(t, 2)
	if s.Current == nil {
		t.Fatal("current session is nil")
	}
	if got := len(s.Current.Entries); got != 2 {
		t.Fatalf("entries = %d, want 2", got)
	}
	assertDense(t, s.Current.Entries)
	if got := PlannedMinutes(s.Current.Entries); got != 15 {
		t.Fatalf("planned minutes = %d, want 15", got)
	}
}

func TestMutationsOnNilCurrentAreNoOps(t *testing.T) {
	t.Parallel()
	s := Apply(NewState(), NewHydrate(HydrateSeed{}))
	for _, a := range []Action{
		NewAddEntry("source:check-in", 5, "s1"),
		NewRemoveEntry(0),
		NewSetDuration(0, 10),
		NewSetEntryNotes(0, "n"),
		NewRecordActualSeconds(0, 30),
		NewReorder(0, 1),
		NewStartRun(),
		NewAdvance(),
		NewFinishRun("notes", "2026-08-30T11:00:00Z"),
		NewSaveCurrentAsTemplate("tpl", "tpl-1"),
	} {
		next := Apply(s, a)
		if next.Current != nil || next.ActiveIndex != nil {
			t.Fatalf("action %s touched nil current", a.Kind)
		}
		if len(next.Archive) != 0 || len(next.Templates) != 0 {
			t.Fatalf("action %s produced collections from nothing", a.Kind)
		}
	}
}

func TestRemoveEntryKeepsPositionsDense(t *testing.T) {
	t.Parallel()
	s := buildQueue(t, 4)
	s = Apply(s, NewRemoveEntry(1))
	if got := len(s.Current.Entries); got != 3 {
		t.Fatalf("entries = %d, want 3", got)
	}
	assertDense(t, s.Current.Entries)
	if s.Current.Entries[1].SlotID != slotID(2) {
		t.Fatalf("slot id after removal = %q, want %q", s.Current.Entries[1].SlotID, slotID(2))
	}
}

func TestRemoveEntryOutOfRangeIsNoOp(t *testing.T) {
	t.Parallel()
	s := buildQueue(t, 2)
	for _, pos := range []int{-1, 2, 99} {
		next := Apply(s, NewRemoveEntry(pos))
		if len(next.Current.Entries) != 2 {
			t.Fatalf("remove(%d) changed the queue", pos)
		}
	}
}

func TestReorderPreservesSlotIDs(t *testing.T) {
	t.Parallel()
	s := buildQueue(t, 2)
	first, second := s.Current.Entries[0], s.Current.Entries[1]
	s = Apply(s, NewReorder(0, 1))
	got := s.Current.Entries
	assertDense(t, got)
	if got[0].SlotID != second.SlotID || got[1].SlotID != first.SlotID {
		t.Fatalf("slot ids changed across reorder: %q %q", got[0].SlotID, got[1].SlotID)
	}
	if got[0].ItemRef != second.ItemRef || got[1].ItemRef != first.ItemRef {
		t.Fatalf("reorder did not move entries: %q %q", got[0].ItemRef, got[1].ItemRef)
	}
}

func TestStartRunRequiresEntries(t *testing.T) {
	t.Parallel()
	s := Apply(NewState(), NewHydrate(HydrateSeed{}))
	s = Apply(s, NewCreateQueue("sess-1", "2026-08-30T10:00:00Z"))
	s = Apply(s, NewStartRun())
	if s.ActiveIndex != nil {
		t.Fatal("start run on empty queue set an active index")
	}
}

func TestStartRunResetsTimerAndActivatesFirstEntry(t *testing.T) {
	t.Parallel()
	s := buildQueue(t, 2)
	s.Timer = TimerState{ElapsedSeconds: 30, CumulativeSeconds: 400, Paused: true}
	s = Apply(s, NewStartRun())
	if s.ActiveIndex == nil || *s.ActiveIndex != 0 {
		t.Fatalf("active index = %v, want 0", s.ActiveIndex)
	}
	if s.Timer != (TimerState{}) {
		t.Fatalf("timer not reset: %+v", s.Timer)
	}
}

func TestAdvanceResetsElapsedOnly(t *testing.T) {
	t.Parallel()
	s := buildQueue(t, 2)
	s = Apply(s, NewStartRun())
	for i := 0; i < 65; i++ {
		s = Apply(s, NewTick())
	}
	if s.Timer.ElapsedSeconds != 65 || s.Timer.CumulativeSeconds != 65 {
		t.Fatalf("timer after 65 ticks = %+v", s.Timer)
	}
	s = Apply(s, NewAdvance())
	if s.ActiveIndex == nil || *s.ActiveIndex != 1 {
		t.Fatalf("active index = %v, want 1", s.ActiveIndex)
	}
	if s.Timer.ElapsedSeconds != 0 || s.Timer.CumulativeSeconds != 65 {
		t.Fatalf("timer after advance = %+v", s.Timer)
	}
}

func TestAdvancePastEndSnapsToNil(t *testing.T) {
	t.Parallel()
	s := buildQueue(t, 2)
	s = Apply(s, NewStartRun())
	s = Apply(s, NewAdvance())
	s = Apply(s, NewAdvance())
	if s.ActiveIndex != nil {
		t.Fatalf("active index = %d, want nil", *s.ActiveIndex)
	}
	if s.Current == nil {
		t.Fatal("current cleared before finish")
	}
}

func TestTickWithoutRunIsNoOp(t *testing.T) {
	t.Parallel()
	s := buildQueue(t, 2)
	s = Apply(s, NewTick())
	if s.Timer.ElapsedSeconds != 0 || s.Timer.CumulativeSeconds != 0 {
		t.Fatalf("tick counted without a run: %+v", s.Timer)
	}
}

func TestFinishRunSnapshotsArchiveAndClearsCurrent(t *testing.T) {
	t.Parallel()
	s := buildQueue(t, 2)
	s = Apply(s, NewStartRun())
	s = Apply(s, NewRecordActualSeconds(0, 310))
	s = Apply(s, NewSetEntryNotes(0, "ran long"))
	s = Apply(s, NewAdvance())
	s = Apply(s, NewAdvance())
	s = Apply(s, NewFinishRun("went well", "2026-08-30T11:00:00Z"))

	if s.Current != nil || s.ActiveIndex != nil {
		t.Fatal("current not cleared after finish")
	}
	if len(s.Archive) != 1 {
		t.Fatalf("archive length = %d, want 1", len(s.Archive))
	}
	rec := s.Archive[0]
	if rec.OriginSessionID != "sess-1" || rec.ReflectionNotes != "went well" {
		t.Fatalf("record = %+v", rec)
	}
	if len(rec.Entries) != 2 {
		t.Fatalf("record entries = %d, want 2", len(rec.Entries))
	}
	if rec.Entries[0].ActualSeconds == nil || *rec.Entries[0].ActualSeconds != 310 {
		t.Fatalf("actual seconds not snapshotted: %+v", rec.Entries[0])
	}
	if rec.Entries[0].RunNotes != "ran long" {
		t.Fatalf("run notes not snapshotted: %q", rec.Entries[0].RunNotes)
	}
}

func TestFinishRunWithEmptyQueueStillArchives(t *testing.T) {
	t.Parallel()
	s := Apply(NewState(), NewHydrate(HydrateSeed{}))
	s = Apply(s, NewCreateQueue("sess-1", "2026-08-30T10:00:00Z"))
	s = Apply(s, NewFinishRun("", "2026-08-30T10:01:00Z"))
	if len(s.Archive) != 1 || len(s.Archive[0].Entries) != 0 {
		t.Fatalf("archive = %+v", s.Archive)
	}
}

func TestTemplateIsolationFromCurrent(t *testing.T) {
	t.Parallel()
	s := buildQueue(t, 2)
	s = Apply(s, NewSaveCurrentAsTemplate("daily standup", "tpl-1"))
	if len(s.Templates) != 1 || !s.Templates[0].IsTemplate {
		t.Fatalf("templates = %+v", s.Templates)
	}

	s = Apply(s, NewLoadTemplateAsCurrent("tpl-1", "sess-2", "2026-08-30T12:00:00Z"))
	if s.Current.ID != "sess-2" || s.Current.IsTemplate {
		t.Fatalf("loaded current = %+v", s.Current)
	}

	s = Apply(s, NewSetDuration(0, 45))
	s = Apply(s, NewRemoveEntry(1))
	s = Apply(s, NewSetEntryNotes(0, "mutated"))

	tpl := s.Templates[0]
	if len(tpl.Entries) != 2 {
		t.Fatalf("template entries = %d, want 2", len(tpl.Entries))
	}
	if tpl.Entries[0].TargetMinutes != 5 || tpl.Entries[0].RunNotes != "" {
		t.Fatalf("template mutated through current: %+v", tpl.Entries[0])
	}
}

func TestLoadUnknownTemplateIsNoOp(t *testing.T) {
	t.Parallel()
	s := buildQueue(t, 1)
	next := Apply(s, NewLoadTemplateAsCurrent("missing", "sess-2", "2026-08-30T12:00:00Z"))
	if next.Current.ID != "sess-1" {
		t.Fatalf("current replaced by unknown template: %+v", next.Current)
	}
}

func TestSaveRunAsTemplateStripsOutcome(t *testing.T) {
	t.Parallel()
	s := buildQueue(t, 2)
	s = Apply(s, NewStartRun())
	s = Apply(s, NewRecordActualSeconds(0, 200))
	s = Apply(s, NewSetEntryNotes(1, "skip next time"))
	s = Apply(s, NewAdvance())
	s = Apply(s, NewAdvance())
	s = Apply(s, NewFinishRun("ok", "2026-08-30T11:00:00Z"))

	s = Apply(s, NewSaveRunAsTemplate(0, "retro plan", "tpl-9", "2026-08-30T11:05:00Z"))
	if len(s.Templates) != 1 {
		t.Fatalf("templates = %d, want 1", len(s.Templates))
	}
	tpl := s.Templates[0]
	if tpl.DisplayName != "retro plan" || !tpl.IsTemplate {
		t.Fatalf("template = %+v", tpl)
	}
	for _, e := range tpl.Entries {
		if e.ActualSeconds != nil || e.RunNotes != "" {
			t.Fatalf("template kept run outcome: %+v", e)
		}
	}
	// The archive record itself keeps what happened.
	if s.Archive[0].Entries[0].ActualSeconds == nil {
		t.Fatal("archive lost actual seconds")
	}
}

func TestTemplateDeleteAndRename(t *testing.T) {
	t.Parallel()
	s := buildQueue(t, 1)
	s = Apply(s, NewSaveCurrentAsTemplate("one", "tpl-1"))
	s = Apply(s, NewSaveCurrentAsTemplate("two", "tpl-2"))
	s = Apply(s, NewRenameTemplate("tpl-1", "renamed"))
	if s.Templates[0].DisplayName != "renamed" {
		t.Fatalf("rename missed: %+v", s.Templates[0])
	}
	s = Apply(s, NewDeleteTemplate("tpl-1"))
	if len(s.Templates) != 1 || s.Templates[0].ID != "tpl-2" {
		t.Fatalf("templates after delete = %+v", s.Templates)
	}
}

func TestArchiveDeleteAndClear(t *testing.T) {
	t.Parallel()
	s := buildQueue(t, 1)
	s = Apply(s, NewFinishRun("a", "2026-08-30T11:00:00Z"))
	s = Apply(s, NewCreateQueue("sess-2", "2026-08-30T11:10:00Z"))
	s = Apply(s, NewFinishRun("b", "2026-08-30T11:20:00Z"))
	if len(s.Archive) != 2 {
		t.Fatalf("archive = %d, want 2", len(s.Archive))
	}
	s = Apply(s, NewDeleteArchiveEntry(0))
	if len(s.Archive) != 1 || s.Archive[0].ReflectionNotes != "b" {
		t.Fatalf("archive after delete = %+v", s.Archive)
	}
	s = Apply(s, NewClearArchive())
	if len(s.Archive) != 0 {
		t.Fatalf("archive after clear = %+v", s.Archive)
	}
}

func TestToggleStarred(t *testing.T) {
	t.Parallel()
	s := Apply(NewState(), NewHydrate(HydrateSeed{}))
	s = Apply(s, NewToggleStarred("source:dot-voting"))
	if !s.StarredItemIDs["source:dot-voting"] {
		t.Fatal("star not set")
	}
	s = Apply(s, NewToggleStarred("source:dot-voting"))
	if s.StarredItemIDs["source:dot-voting"] {
		t.Fatal("star not cleared")
	}
}

func TestHydrateSeedsAllCollections(t *testing.T) {
	t.Parallel()
	cur := &Session{ID: "sess-7", Entries: []Entry{{ItemRef: "source:check-in", TargetMinutes: 5, SlotID: "x"}}, CreatedAt: "2026-08-29T09:00:00Z"}
	seed := HydrateSeed{
		Current:   cur,
		Templates: []Session{{ID: "tpl-1", IsTemplate: true}},
		Archive:   []RunRecord{{OriginSessionID: "sess-0"}},
		Starred:   map[string]bool{"custom:warmup-1": true},
	}
	s := Apply(NewState(), NewHydrate(seed))
	if !s.Hydrated {
		t.Fatal("hydrated flag not set")
	}
	if s.Current == nil || s.Current.ID != "sess-7" {
		t.Fatalf("current = %+v", s.Current)
	}
	if len(s.Templates) != 1 || len(s.Archive) != 1 || !s.StarredItemIDs["custom:warmup-1"] {
		t.Fatalf("collections not seeded: %+v", s)
	}
}

func TestHydrateWithNilCollectionsDefaultsEmpty(t *testing.T) {
	t.Parallel()
	s := Apply(NewState(), NewHydrate(HydrateSeed{}))
	if s.Templates == nil || s.Archive == nil || s.StarredItemIDs == nil {
		t.Fatal("hydrate left nil collections")
	}
}

func TestDensityInvariantUnderMutationSequence(t *testing.T) {
	t.Parallel()
	s := buildQueue(t, 4)
	seq := []Action{
		NewRemoveEntry(2),
		NewAddEntry("custom:parking-lot", 3, "p-slot"),
		NewReorder(3, 0),
		NewReorder(0, 2),
		NewRemoveEntry(0),
		NewAddEntry(BreakItemRef, 10, "q-slot"),
		NewReorder(1, 3),
	}
	for _, a := range seq {
		s = Apply(s, a)
		assertDense(t, s.Current.Entries)
	}
	seen := map[string]bool{}
	for _, e := range s.Current.Entries {
		if seen[e.SlotID] {
			t.Fatalf("duplicate slot id %q", e.SlotID)
		}
		seen[e.SlotID] = true
	}
}
