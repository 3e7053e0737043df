package domain

// ActionKind is the closed action vocabulary. The reducer is total over
// it: any kind applied in a state it does not fit is a silent no-op.
type ActionKind string

const (
	ActionCreateQueue           ActionKind = "create_queue"
	ActionLoadTemplateAsCurrent ActionKind = "load_template_as_current"
	ActionAddEntry              ActionKind = "add_entry"
	ActionRemoveEntry           ActionKind = "remove_entry"
	ActionSetDuration           ActionKind = "set_duration"
	ActionSetEntryNotes         ActionKind = "set_entry_notes"
	ActionRecordActualSeconds   ActionKind = "record_actual_seconds"
	ActionReorder               ActionKind = "reorder"
	ActionStartRun              ActionKind = "start_run"
	ActionAdvance               ActionKind = "advance"
	ActionFinishRun             ActionKind = "finish_run"
	ActionSaveCurrentAsTemplate ActionKind = "save_current_as_template"
	ActionSaveRunAsTemplate     ActionKind = "save_run_as_template"
	ActionClearCurrent          ActionKind = "clear_current"
	ActionDeleteTemplate        ActionKind = "delete_template"
	ActionRenameTemplate        ActionKind = "rename_template"
	ActionDeleteArchiveEntry    ActionKind = "delete_archive_entry"
	ActionClearArchive          ActionKind = "clear_archive"
	ActionToggleStarred         ActionKind = "toggle_starred"
	ActionHydrate               ActionKind = "hydrate"

	ActionTick   ActionKind = "tick"
	ActionPause  ActionKind = "pause"
	ActionResume ActionKind = "resume"
	ActionReset  ActionKind = "reset"
)

// Action is a tagged union: Kind selects the variant, the payload
// fields carry its data. The reducer is pure, so identifiers and
// timestamps are minted by the caller and passed in rather than drawn
// from a clock inside Apply.
type Action struct {
	Kind ActionKind

	// identity material minted by the caller
	SessionID string
	SlotID    string
	Timestamp string

	ItemRef  string
	Minutes  int
	Seconds  int
	Position int
	From     int
	To       int
	Index    int
	Text     string
	Name     string
	ItemID   string
	TargetID string

	Seed *HydrateSeed
}

// HydrateSeed carries the four persisted collections loaded at startup.
// A single Hydrate action seeds them atomically.
type HydrateSeed struct {
	Current   *Session
	Templates []Session
	Archive   []RunRecord
	Starred   map[string]bool
}

func NewCreateQueue(sessionID, createdAt string) Action {
	return Action{Kind: ActionCreateQueue, SessionID: sessionID, Timestamp: createdAt}
}

func NewLoadTemplateAsCurrent(templateID, newSessionID, createdAt string) Action {
	return Action{Kind: ActionLoadTemplateAsCurrent, TargetID: templateID, SessionID: newSessionID, Timestamp: createdAt}
}

func NewAddEntry(itemRef string, minutes int, slotID string) Action {
	return Action{Kind: ActionAddEntry, ItemRef: itemRef, Minutes: minutes, SlotID: slotID}
}

func NewRemoveEntry(position int) Action {
	return Action{Kind: ActionRemoveEntry, Position: position}
}

func NewSetDuration(position, minutes int) Action {
	return Action{Kind: ActionSetDuration, Position: position, Minutes: minutes}
}

func NewSetEntryNotes(position int, text string) Action {
	return Action{Kind: ActionSetEntryNotes, Position: position, Text: text}
}

func NewRecordActualSeconds(position, seconds int) Action {
	return Action{Kind: ActionRecordActualSeconds, Position: position, Seconds: seconds}
}

func NewReorder(from, to int) Action {
	return Action{Kind: ActionReorder, From: from, To: to}
}

func NewStartRun() Action { return Action{Kind: ActionStartRun} }

func NewAdvance() Action { return Action{Kind: ActionAdvance} }

func NewFinishRun(reflectionNotes, completedAt string) Action {
	return Action{Kind: ActionFinishRun, Text: reflectionNotes, Timestamp: completedAt}
}

func NewSaveCurrentAsTemplate(name, templateID string) Action {
	return Action{Kind: ActionSaveCurrentAsTemplate, Name: name, SessionID: templateID}
}

func NewSaveRunAsTemplate(archiveIndex int, name, templateID, createdAt string) Action {
	return Action{Kind: ActionSaveRunAsTemplate, Index: archiveIndex, Name: name, SessionID: templateID, Timestamp: createdAt}
}

func NewClearCurrent() Action { return Action{Kind: ActionClearCurrent} }

func NewDeleteTemplate(templateID string) Action {
	return Action{Kind: ActionDeleteTemplate, TargetID: templateID}
}

func NewRenameTemplate(templateID, name string) Action {
	return Action{Kind: ActionRenameTemplate, TargetID: templateID, Name: name}
}

func NewDeleteArchiveEntry(index int) Action {
	return Action{Kind: ActionDeleteArchiveEntry, Index: index}
}

func NewClearArchive() Action { return Action{Kind: ActionClearArchive} }

func NewToggleStarred(itemID string) Action {
	return Action{Kind: ActionToggleStarred, ItemID: itemID}
}

func NewHydrate(seed HydrateSeed) Action {
	return Action{Kind: ActionHydrate, Seed: &seed}
}

func NewTick() Action   { return Action{Kind: ActionTick} }
func NewPause() Action  { return Action{Kind: ActionPause} }
func NewResume() Action { return Action{Kind: ActionResume} }
func NewReset() Action  { return Action{Kind: ActionReset} }
