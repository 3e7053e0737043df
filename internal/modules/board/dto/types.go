package dto

type EntryView struct {
	ItemRef       string
	ItemName      string
	TargetMinutes int
	Position      int
	SlotID        string
	RunNotes      string
	ActualSeconds *int
}

type SessionView struct {
	ID             string
	DisplayName    string
	CreatedAt      string
	IsTemplate     bool
	Entries        []EntryView
	PlannedMinutes int
}

type RunRecordView struct {
	OriginSessionID string
	CompletedAt     string
	ReflectionNotes string
	Entries         []EntryView
	PlannedMinutes  int
	ActualSeconds   int
}

type TimerView struct {
	ElapsedSeconds    int
	CumulativeSeconds int
	Paused            bool
}

type StateView struct {
	Current     *SessionView
	ActiveIndex *int
	Templates   []SessionView
	Archive     []RunRecordView
	Starred     []string
	Timer       TimerView
	Hydrated    bool
}

type AddEntryInput struct {
	ItemRef string
	Minutes int
}

type RunSummaryOutput struct {
	OriginSessionID string
	CompletedAt     string
	EntryCount      int
	PlannedMinutes  int
	ActualSeconds   int
	ReflectionNotes string
}
