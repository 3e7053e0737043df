package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	importerout "runsheet/internal/modules/importer/adapter/out"
)

func writeManifest(t *testing.T, importersDir, name, raw string) {
	t.Helper()
	dir := filepath.Join(importersDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir importer dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write manifest.json: %v", err)
	}
}

func TestFileManifestStoreLoadMissingReturnsEmpty(t *testing.T) {
	t.Parallel()
	store := importerout.NewFileManifestStore(filepath.Join(t.TempDir(), "importers"))
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected empty manifests, got %d", len(manifests))
	}
}

func TestFileManifestStoreResolvesRelativeBinary(t *testing.T) {
	t.Parallel()
	importersDir := t.TempDir()
	writeManifest(t, importersDir, "reference", `{
  "name": "reference",
  "version": "1.0.0",
  "description": "built-in facilitation activities",
  "binary": "reference-importer",
  "sha256": "`+strings.Repeat("a", 64)+`",
  "enabled": true
}`)
	store := importerout.NewFileManifestStore(importersDir)
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 1 {
		t.Fatalf("expected one manifest, got %d", len(manifests))
	}
	want := filepath.Join(importersDir, "reference", "reference-importer")
	if manifests[0].Binary != want {
		t.Fatalf("binary = %s, want %s", manifests[0].Binary, want)
	}
}

func TestFileManifestStoreSortsByDirectory(t *testing.T) {
	t.Parallel()
	importersDir := t.TempDir()
	for _, name := range []string{"zeta", "alpha"} {
		writeManifest(t, importersDir, name, `{
  "name": "`+name+`",
  "version": "1.0.0",
  "binary": "/usr/local/bin/`+name+`",
  "sha256": "`+strings.Repeat("b", 64)+`",
  "enabled": true
}`)
	}
	store := importerout.NewFileManifestStore(importersDir)
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 2 || manifests[0].Name != "alpha" || manifests[1].Name != "zeta" {
		t.Fatalf("manifests = %+v", manifests)
	}
}

func TestFileManifestStoreSkipsDirWithoutManifest(t *testing.T) {
	t.Parallel()
	importersDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(importersDir, "empty"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	store := importerout.NewFileManifestStore(importersDir)
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected no manifests, got %d", len(manifests))
	}
}

func TestFileManifestStoreRejectsUnknownField(t *testing.T) {
	t.Parallel()
	importersDir := t.TempDir()
	writeManifest(t, importersDir, "reference", `{
  "name": "reference",
  "version": "1.0.0",
  "binary": "/usr/local/bin/reference",
  "sha256": "`+strings.Repeat("c", 64)+`",
  "enabled": true,
  "unknown_field": true
}`)
	store := importerout.NewFileManifestStore(importersDir)
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected unknown field error")
	}
}
