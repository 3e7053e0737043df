package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"runsheet/internal/modules/importer/domain"
	importerout "runsheet/internal/modules/importer/port/out"
)

// FileManifestStore reads one manifest.json per importer directory.
// Relative binary paths resolve against the importer's own directory.
type FileManifestStore struct {
	importersDir string
}

func NewFileManifestStore(importersDir string) importerout.ManifestStore {
	return &FileManifestStore{importersDir: importersDir}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	entries, err := os.ReadDir(s.importersDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read importers dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	manifests := make([]domain.Manifest, 0, len(names))
	for _, name := range names {
		dir := filepath.Join(s.importersDir, name)
		raw, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read importer manifest %s: %w", name, err)
		}
		var manifest domain.Manifest
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&manifest); err != nil {
			return nil, fmt.Errorf("decode importer manifest %s: %w", name, err)
		}
		if manifest.Binary != "" && !filepath.IsAbs(manifest.Binary) {
			manifest.Binary = filepath.Clean(filepath.Join(dir, manifest.Binary))
		}
		manifests = append(manifests, manifest)
	}
	return manifests, nil
}
