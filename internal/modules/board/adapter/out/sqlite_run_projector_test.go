package out_test

import (
	"context"
	"path/filepath"
	"testing"

	"runsheet/internal/modules/board/adapter/out"
	"runsheet/internal/modules/board/domain"
)

func secs(v int) *int { return &v }

func TestRunProjectorUpsertAndList(t *testing.T) {
	t.Parallel()
	proj, err := out.NewSQLiteRunProjector(filepath.Join(t.TempDir(), "runsheet.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	ctx := context.Background()

	first := domain.RunRecord{
		OriginSessionID: "sess-1",
		CompletedAt:     "2026-08-29T11:00:00Z",
		ReflectionNotes: "solid",
		Entries: []domain.Entry{
			{ItemRef: "source:check-in", TargetMinutes: 5, ActualSeconds: secs(290)},
			{ItemRef: "break", TargetMinutes: 10, ActualSeconds: secs(611)},
		},
	}
	second := domain.RunRecord{
		OriginSessionID: "sess-2",
		CompletedAt:     "2026-08-30T09:00:00Z",
		Entries:         []domain.Entry{{ItemRef: "break", TargetMinutes: 15}},
	}
	if err := proj.UpsertRun(ctx, 0, first); err != nil {
		t.Fatalf("upsert first: %v", err)
	}
	if err := proj.UpsertRun(ctx, 1, second); err != nil {
		t.Fatalf("upsert second: %v", err)
	}

	runs, err := proj.ListRuns(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	// Newest first.
	if runs[0].OriginSessionID != "sess-2" {
		t.Fatalf("order = %+v", runs)
	}
	if runs[1].PlannedMinutes != 15 || runs[1].ActualSeconds != 901 || runs[1].EntryCount != 2 {
		t.Fatalf("summary = %+v", runs[1])
	}
}

func TestRunProjectorUpsertIsIdempotentPerIndex(t *testing.T) {
	t.Parallel()
	proj, err := out.NewSQLiteRunProjector(filepath.Join(t.TempDir(), "runsheet.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	ctx := context.Background()
	rec := domain.RunRecord{OriginSessionID: "sess-1", CompletedAt: "2026-08-30T09:00:00Z"}
	for i := 0; i < 3; i++ {
		if err := proj.UpsertRun(ctx, 0, rec); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	runs, err := proj.ListRuns(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
}

func TestRunProjectorReset(t *testing.T) {
	t.Parallel()
	proj, err := out.NewSQLiteRunProjector(filepath.Join(t.TempDir(), "runsheet.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	ctx := context.Background()
	if err := proj.UpsertRun(ctx, 0, domain.RunRecord{OriginSessionID: "sess-1", CompletedAt: "2026-08-30T09:00:00Z"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := proj.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	runs, err := proj.ListRuns(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("runs after reset = %d", len(runs))
	}
}
