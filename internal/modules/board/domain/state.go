package domain

const SchemaVersion = 1

// BreakItemRef is the reserved entry ref for an untimed-content break
// slot. It lives in its own namespace and can never collide with deck
// item ids, which are always prefixed `source:` or `custom:`.
const BreakItemRef = "break"

// Entry is one slot in a queue: a deck item (or break) with a target
// duration. SlotID is assigned once on insert and never regenerated,
// including across reorders; Position is re-derived to stay dense and
// zero-based after every queue mutation. ActualSeconds stays nil until
// the entry has been completed during a run.
type Entry struct {
	ItemRef       string `json:"item_ref"`
	TargetMinutes int    `json:"target_minutes"`
	Position      int    `json:"position"`
	SlotID        string `json:"slot_id"`
	RunNotes      string `json:"run_notes,omitempty"`
	ActualSeconds *int   `json:"actual_seconds,omitempty"`
}

// Session is either the queue currently being built or run, or a saved
// reusable template in the template collection. Timestamps are RFC 3339
// strings so persisted payloads decode without a custom reviver.
type Session struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name,omitempty"`
	Entries     []Entry `json:"entries"`
	CreatedAt   string  `json:"created_at"`
	IsTemplate  bool    `json:"is_template"`
}

// RunRecord is an immutable snapshot of a completed run. Entries are
// copied verbatim, actual seconds and per-entry notes included, so the
// archive stays decoupled from any later session or template edits.
type RunRecord struct {
	OriginSessionID string  `json:"origin_session_id"`
	CompletedAt     string  `json:"completed_at"`
	Entries         []Entry `json:"entries"`
	ReflectionNotes string  `json:"reflection_notes"`
}

// TimerState is the isolated clock: elapsed counts seconds on the
// current entry only, cumulative counts the whole run. Neither advances
// while Paused is true.
type TimerState struct {
	ElapsedSeconds    int  `json:"elapsed_seconds"`
	CumulativeSeconds int  `json:"cumulative_seconds"`
	Paused            bool `json:"paused"`
}

// State is the whole board. ActiveIndex is nil while building and again
// once the last entry has been consumed (run finished, awaiting
// reflection); otherwise it indexes into Current.Entries. Hydrated
// gates persistence writes: until the initial load has been applied,
// nothing may be saved.
type State struct {
	Current        *Session
	ActiveIndex    *int
	Templates      []Session
	Archive        []RunRecord
	StarredItemIDs map[string]bool
	Timer          TimerState
	Hydrated       bool
}

func NewState() State {
	return State{StarredItemIDs: map[string]bool{}}
}

// PlannedMinutes sums the target durations of a queue.
func PlannedMinutes(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += e.TargetMinutes
	}
	return total
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	for i := range out {
		if entries[i].ActualSeconds != nil {
			v := *entries[i].ActualSeconds
			out[i].ActualSeconds = &v
		}
	}
	return out
}

func cloneSession(s Session) Session {
	s.Entries = cloneEntries(s.Entries)
	return s
}

func cloneStarred(set map[string]bool) map[string]bool {
	out := make(map[string]bool, len(set))
	for k, v := range set {
		if v {
			out[k] = true
		}
	}
	return out
}

func renumber(entries []Entry) []Entry {
	for i := range entries {
		entries[i].Position = i
	}
	return entries
}

func intPtr(v int) *int { return &v }
