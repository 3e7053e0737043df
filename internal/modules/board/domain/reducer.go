package domain

// Apply is the board reducer: a pure, total function from state and
// action to the next state. It never mutates its input and never
// panics; actions that do not fit the current state return the state
// unchanged. Callers that want feedback on rejected intents validate
// before dispatching (see the usecase layer).
func Apply(s State, a Action) State {
	switch a.Kind {
	case ActionTick, ActionPause, ActionResume, ActionReset:
		// Tick only counts while a run exists; the timer sub-reducer
		// itself is session-agnostic and guards only the pause flag.
		if a.Kind == ActionTick && s.ActiveIndex == nil {
			return s
		}
		s.Timer = applyTimer(s.Timer, a.Kind)
		return s

	case ActionHydrate:
		if a.Seed == nil {
			return s
		}
		s.Current = a.Seed.Current
		s.Templates = a.Seed.Templates
		s.Archive = a.Seed.Archive
		s.StarredItemIDs = a.Seed.Starred
		if s.StarredItemIDs == nil {
			s.StarredItemIDs = map[string]bool{}
		}
		if s.Templates == nil {
			s.Templates = []Session{}
		}
		if s.Archive == nil {
			s.Archive = []RunRecord{}
		}
		s.Hydrated = true
		return s

	case ActionCreateQueue:
		s.Current = &Session{ID: a.SessionID, CreatedAt: a.Timestamp, Entries: []Entry{}}
		s.ActiveIndex = nil
		return s

	case ActionLoadTemplateAsCurrent:
		for _, tpl := range s.Templates {
			if tpl.ID != a.TargetID {
				continue
			}
			loaded := cloneSession(tpl)
			loaded.ID = a.SessionID
			loaded.CreatedAt = a.Timestamp
			loaded.IsTemplate = false
			s.Current = &loaded
			s.ActiveIndex = nil
			return s
		}
		return s

	case ActionAddEntry:
		if s.Current == nil {
			return s
		}
		cur := cloneSession(*s.Current)
		cur.Entries = renumber(append(cur.Entries, Entry{
			ItemRef:       a.ItemRef,
			TargetMinutes: a.Minutes,
			SlotID:        a.SlotID,
		}))
		s.Current = &cur
		return s

	case ActionRemoveEntry:
		if s.Current == nil || a.Position < 0 || a.Position >= len(s.Current.Entries) {
			return s
		}
		cur := cloneSession(*s.Current)
		cur.Entries = renumber(append(cur.Entries[:a.Position], cur.Entries[a.Position+1:]...))
		s.Current = &cur
		return s

	case ActionSetDuration:
		return withEntry(s, a.Position, func(e *Entry) { e.TargetMinutes = a.Minutes })

	case ActionSetEntryNotes:
		return withEntry(s, a.Position, func(e *Entry) { e.RunNotes = a.Text })

	case ActionRecordActualSeconds:
		return withEntry(s, a.Position, func(e *Entry) { e.ActualSeconds = intPtr(a.Seconds) })

	case ActionReorder:
		if s.Current == nil {
			return s
		}
		cur := cloneSession(*s.Current)
		cur.Entries = Reorder(cur.Entries, a.From, a.To)
		s.Current = &cur
		return s

	case ActionStartRun:
		if s.Current == nil || len(s.Current.Entries) == 0 {
			return s
		}
		s.ActiveIndex = intPtr(0)
		s.Timer = applyTimer(s.Timer, ActionReset)
		return s

	case ActionAdvance:
		if s.Current == nil || s.ActiveIndex == nil {
			return s
		}
		next := *s.ActiveIndex + 1
		if next >= len(s.Current.Entries) {
			// Past the end: the run is finished and the nil index is the
			// signal the presentation layer routes to reflection on.
			s.ActiveIndex = nil
		} else {
			s.ActiveIndex = intPtr(next)
		}
		s.Timer.ElapsedSeconds = 0
		return s

	case ActionFinishRun:
		if s.Current == nil {
			return s
		}
		record := RunRecord{
			OriginSessionID: s.Current.ID,
			CompletedAt:     a.Timestamp,
			Entries:         cloneEntries(s.Current.Entries),
			ReflectionNotes: a.Text,
		}
		s.Archive = append(append([]RunRecord{}, s.Archive...), record)
		s.Current = nil
		s.ActiveIndex = nil
		return s

	case ActionSaveCurrentAsTemplate:
		if s.Current == nil {
			return s
		}
		tpl := cloneSession(*s.Current)
		tpl.ID = a.SessionID
		tpl.DisplayName = a.Name
		tpl.IsTemplate = true
		s.Templates = append(append([]Session{}, s.Templates...), tpl)
		return s

	case ActionSaveRunAsTemplate:
		if a.Index < 0 || a.Index >= len(s.Archive) {
			return s
		}
		// A template describes a plan, not a historical outcome: strip
		// whatever the run recorded.
		entries := cloneEntries(s.Archive[a.Index].Entries)
		for i := range entries {
			entries[i].RunNotes = ""
			entries[i].ActualSeconds = nil
		}
		tpl := Session{
			ID:          a.SessionID,
			DisplayName: a.Name,
			Entries:     renumber(entries),
			CreatedAt:   a.Timestamp,
			IsTemplate:  true,
		}
		s.Templates = append(append([]Session{}, s.Templates...), tpl)
		return s

	case ActionClearCurrent:
		s.Current = nil
		s.ActiveIndex = nil
		return s

	case ActionDeleteTemplate:
		kept := make([]Session, 0, len(s.Templates))
		for _, tpl := range s.Templates {
			if tpl.ID != a.TargetID {
				kept = append(kept, tpl)
			}
		}
		s.Templates = kept
		return s

	case ActionRenameTemplate:
		templates := make([]Session, len(s.Templates))
		copy(templates, s.Templates)
		for i := range templates {
			if templates[i].ID == a.TargetID {
				templates[i].DisplayName = a.Name
			}
		}
		s.Templates = templates
		return s

	case ActionDeleteArchiveEntry:
		if a.Index < 0 || a.Index >= len(s.Archive) {
			return s
		}
		archive := append([]RunRecord{}, s.Archive...)
		s.Archive = append(archive[:a.Index], archive[a.Index+1:]...)
		return s

	case ActionClearArchive:
		s.Archive = []RunRecord{}
		return s

	case ActionToggleStarred:
		starred := cloneStarred(s.StarredItemIDs)
		if starred[a.ItemID] {
			delete(starred, a.ItemID)
		} else {
			starred[a.ItemID] = true
		}
		s.StarredItemIDs = starred
		return s
	}

	return s
}

func withEntry(s State, position int, mutate func(*Entry)) State {
	if s.Current == nil || position < 0 || position >= len(s.Current.Entries) {
		return s
	}
	cur := cloneSession(*s.Current)
	mutate(&cur.Entries[position])
	s.Current = &cur
	return s
}
