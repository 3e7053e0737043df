package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	deckdto "runsheet/internal/modules/deck/dto"
	"runsheet/internal/modules/importer/domain"
	"runsheet/internal/modules/importer/dto"
	"runsheet/internal/modules/importer/service"
)

type fakeManifestStore struct {
	manifests []domain.Manifest
	err       error
}

func (s *fakeManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	return s.manifests, s.err
}

type fakeHost struct {
	lifecycleErr error
	items        []domain.ImportedItem
	importErr    error
	lastRequest  domain.ImportRequest
}

func (h *fakeHost) CheckLifecycle(_ context.Context, _ domain.Manifest) error {
	return h.lifecycleErr
}

func (h *fakeHost) GetMetadata(_ context.Context, m domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: m.Name, Version: m.Version}, nil
}

func (h *fakeHost) ImportItems(_ context.Context, _ domain.Manifest, request domain.ImportRequest) ([]domain.ImportedItem, error) {
	h.lastRequest = request
	return h.items, h.importErr
}

type fakeDeck struct {
	imported  []deckdto.ImportItemInput
	importErr error
}

func (d *fakeDeck) Add(_ context.Context, _ deckdto.AddItemInput) (deckdto.ItemOutput, error) {
	return deckdto.ItemOutput{}, nil
}

func (d *fakeDeck) Import(_ context.Context, input deckdto.ImportItemInput) (deckdto.ItemOutput, error) {
	if d.importErr != nil {
		return deckdto.ItemOutput{}, d.importErr
	}
	d.imported = append(d.imported, input)
	return deckdto.ItemOutput{
		ID:             "source:" + input.Slug,
		Name:           input.Name,
		Origin:         "source",
		Tags:           input.Tags,
		DefaultMinutes: input.DefaultMinutes,
	}, nil
}

func (d *fakeDeck) List(_ context.Context) ([]deckdto.ItemOutput, error) { return nil, nil }

func (d *fakeDeck) Get(_ context.Context, _ string) (deckdto.ItemDetailOutput, error) {
	return deckdto.ItemDetailOutput{}, nil
}

func (d *fakeDeck) Search(_ context.Context, _ deckdto.SearchInput) ([]deckdto.ItemOutput, error) {
	return nil, nil
}

func (d *fakeDeck) Tags(_ context.Context) ([]string, error) { return nil, nil }

func (d *fakeDeck) Reindex(_ context.Context) error { return nil }

func writeBinary(t *testing.T) (string, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "importer-binary")
	payload := []byte("not-a-real-importer")
	if err := os.WriteFile(path, payload, 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	sum := sha256.Sum256(payload)
	return path, hex.EncodeToString(sum[:])
}

func runnableManifest(t *testing.T) domain.Manifest {
	t.Helper()
	binary, sum := writeBinary(t)
	return domain.Manifest{
		Name:    "reference",
		Version: "1.0.0",
		Binary:  binary,
		SHA256:  sum,
		Enabled: true,
	}
}

func TestRunImportsThroughDeck(t *testing.T) {
	t.Parallel()
	host := &fakeHost{items: []domain.ImportedItem{
		{Name: "Lean Coffee", Slug: "lean-coffee", Tags: []string{"discussion"}, DefaultMinutes: 20, Body: "## How to run\n"},
		{Name: "Dot Voting", Slug: "dot-voting", DefaultMinutes: 10},
	}}
	deck := &fakeDeck{}
	svc := service.NewImporterService(
		&fakeManifestStore{manifests: []domain.Manifest{runnableManifest(t)}},
		host, deck, "/tmp/workspace", nil,
	)

	out, err := svc.Run(context.Background(), dto.RunInput{ImporterName: "reference", Query: "vote", Limit: 10})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(out.Items) != 2 || out.Skipped != 0 {
		t.Fatalf("out = %+v", out)
	}
	if out.Items[0].ID != "source:lean-coffee" {
		t.Fatalf("id = %s", out.Items[0].ID)
	}
	if len(deck.imported) != 2 || deck.imported[1].Slug != "dot-voting" {
		t.Fatalf("deck saw %+v", deck.imported)
	}
	if host.lastRequest.Query != "vote" || host.lastRequest.Limit != 10 || host.lastRequest.WorkspacePath != "/tmp/workspace" {
		t.Fatalf("request = %+v", host.lastRequest)
	}
}

func TestRunSkipsMalformedItems(t *testing.T) {
	t.Parallel()
	host := &fakeHost{items: []domain.ImportedItem{
		{Name: "", Slug: "nameless"},
		{Name: "Check In", Slug: "check-in", DefaultMinutes: 5},
	}}
	svc := service.NewImporterService(
		&fakeManifestStore{manifests: []domain.Manifest{runnableManifest(t)}},
		host, &fakeDeck{}, "/tmp/workspace", nil,
	)

	out, err := svc.Run(context.Background(), dto.RunInput{ImporterName: "reference"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(out.Items) != 1 || out.Skipped != 1 {
		t.Fatalf("out = %+v", out)
	}
}

func TestRunSkipsItemsDeckRefuses(t *testing.T) {
	t.Parallel()
	host := &fakeHost{items: []domain.ImportedItem{{Name: "Check In", Slug: "check-in", DefaultMinutes: 5}}}
	svc := service.NewImporterService(
		&fakeManifestStore{manifests: []domain.Manifest{runnableManifest(t)}},
		host, &fakeDeck{importErr: errors.New("disk full")}, "/tmp/workspace", nil,
	)

	out, err := svc.Run(context.Background(), dto.RunInput{ImporterName: "reference"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(out.Items) != 0 || out.Skipped != 1 {
		t.Fatalf("out = %+v", out)
	}
}

func TestRunRefusesDisabledImporter(t *testing.T) {
	t.Parallel()
	manifest := runnableManifest(t)
	manifest.Enabled = false
	svc := service.NewImporterService(
		&fakeManifestStore{manifests: []domain.Manifest{manifest}},
		&fakeHost{}, &fakeDeck{}, "/tmp/workspace", nil,
	)

	_, err := svc.Run(context.Background(), dto.RunInput{ImporterName: "reference"})
	if !errors.Is(err, domain.ErrImporterDisabled) {
		t.Fatalf("err = %v", err)
	}
}

func TestRunRefusesChecksumMismatch(t *testing.T) {
	t.Parallel()
	manifest := runnableManifest(t)
	manifest.SHA256 = strings.Repeat("0", 64)
	svc := service.NewImporterService(
		&fakeManifestStore{manifests: []domain.Manifest{manifest}},
		&fakeHost{}, &fakeDeck{}, "/tmp/workspace", nil,
	)

	_, err := svc.Run(context.Background(), dto.RunInput{ImporterName: "reference"})
	if !errors.Is(err, domain.ErrChecksumMismatch) {
		t.Fatalf("err = %v", err)
	}
}

func TestCheckReportsPerImporter(t *testing.T) {
	t.Parallel()
	good := runnableManifest(t)
	bad := runnableManifest(t)
	bad.Name = "broken"
	bad.SHA256 = strings.Repeat("0", 64)
	svc := service.NewImporterService(
		&fakeManifestStore{manifests: []domain.Manifest{good, bad}},
		&fakeHost{}, &fakeDeck{}, "/tmp/workspace", nil,
	)

	results, err := svc.Check(context.Background())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}
	if !results[0].ChecksumValid || !results[0].LifecycleOK {
		t.Fatalf("good importer result = %+v", results[0])
	}
	if results[1].ChecksumValid || results[1].Error != "checksum mismatch" {
		t.Fatalf("bad importer result = %+v", results[1])
	}
}

func TestListRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	manifest := runnableManifest(t)
	svc := service.NewImporterService(
		&fakeManifestStore{manifests: []domain.Manifest{manifest, manifest}},
		&fakeHost{}, &fakeDeck{}, "/tmp/workspace", nil,
	)

	if _, err := svc.List(context.Background()); err == nil {
		t.Fatalf("expected duplicate name error")
	}
}
