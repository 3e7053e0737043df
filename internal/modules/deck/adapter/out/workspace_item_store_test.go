package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"runsheet/internal/modules/deck/adapter/out"
	"runsheet/internal/modules/deck/domain"
	apperrors "runsheet/internal/platform/errors"
)

func sampleItem() domain.Item {
	return domain.Item{
		ID:             "custom:silent-brainstorm-ab12cd",
		Name:           "Silent Brainstorm",
		Slug:           "silent-brainstorm",
		Origin:         domain.OriginCustom,
		Tags:           []string{"ideation", "quiet"},
		DefaultMinutes: 15,
		AddedAt:        time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
	}
}

func TestItemStoreRoundTrip(t *testing.T) {
	t.Parallel()
	store := out.NewWorkspaceItemStore(filepath.Join(t.TempDir(), "activities"))
	ctx := context.Background()

	path, err := store.Save(ctx, domain.ItemDocument{Item: sampleItem(), Body: "## How to run\n\nHand out cards.\n"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "silent-brainstorm.md" {
		t.Fatalf("path = %q", path)
	}

	doc, err := store.FindByID(ctx, "custom:silent-brainstorm-ab12cd")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	got := doc.Item
	if got.Name != "Silent Brainstorm" || got.Origin != domain.OriginCustom || got.DefaultMinutes != 15 {
		t.Fatalf("item = %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "ideation" {
		t.Fatalf("tags = %v", got.Tags)
	}
	if !got.AddedAt.Equal(time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("added at = %v", got.AddedAt)
	}
	if doc.Body == "" {
		t.Fatal("body lost")
	}
}

func TestItemStoreKeepsBodyOnMetadataUpdate(t *testing.T) {
	t.Parallel()
	store := out.NewWorkspaceItemStore(filepath.Join(t.TempDir(), "activities"))
	ctx := context.Background()

	item := sampleItem()
	if _, err := store.Save(ctx, domain.ItemDocument{Item: item, Body: "hand-edited instructions"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	item.DefaultMinutes = 30
	if _, err := store.Save(ctx, domain.ItemDocument{Item: item}); err != nil {
		t.Fatalf("resave: %v", err)
	}

	doc, err := store.FindByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if doc.Item.DefaultMinutes != 30 {
		t.Fatalf("minutes = %d", doc.Item.DefaultMinutes)
	}
	if doc.Body == "" || doc.Body == "\n" {
		t.Fatal("body not preserved on metadata-only save")
	}
}

func TestItemStoreSkipsMalformedFiles(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "activities")
	store := out.NewWorkspaceItemStore(dir)
	ctx := context.Background()

	if _, err := store.Save(ctx, domain.ItemDocument{Item: sampleItem()}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.md"), []byte("---\nnot: [valid\n---\nbody"), 0o644); err != nil {
		t.Fatalf("write broken: %v", err)
	}

	docs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("docs = %d, want 1 (malformed skipped)", len(docs))
	}
}

func TestItemStoreFindMissing(t *testing.T) {
	t.Parallel()
	store := out.NewWorkspaceItemStore(t.TempDir())
	if _, err := store.FindByID(context.Background(), "custom:none"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}
