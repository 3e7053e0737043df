package out

import (
	"context"

	"runsheet/internal/modules/board/domain"
)

// State keys used by the board. One durable JSON document per key.
const (
	KeyTemplates = "templates"
	KeyArchive   = "archive"
	KeyCurrent   = "current-session"
	KeyStarred   = "starred"
)

// StateStore is the persistence port: an async-by-contract key/value
// store. Load returns apperrors.ErrNotFound for an absent key; the
// backend is swappable without touching the reducer or any caller.
type StateStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
	Remove(ctx context.Context, key string) error
}

// RunProjector maintains a queryable read model of completed runs. The
// archive JSON stays the source of truth; the projection can always be
// rebuilt from it.
type RunProjector interface {
	UpsertRun(ctx context.Context, index int, record domain.RunRecord) error
	ListRuns(ctx context.Context) ([]RunSummary, error)
	Reset(ctx context.Context) error
}

type RunSummary struct {
	OriginSessionID string
	CompletedAt     string
	EntryCount      int
	PlannedMinutes  int
	ActualSeconds   int
	ReflectionNotes string
}
