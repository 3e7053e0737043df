package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	boardout "runsheet/internal/modules/board/port/out"
	apperrors "runsheet/internal/platform/errors"
)

// FileStateStore is the local persistence backend: one JSON document
// per key under the workspace state directory. The interface is async
// by contract so a network-backed store can replace this one without
// touching the reducer or any caller.
type FileStateStore struct {
	dir string
}

func NewFileStateStore(stateDir string) boardout.StateStore {
	return &FileStateStore{dir: stateDir}
}

func (s *FileStateStore) Load(_ context.Context, key string) ([]byte, error) {
	payload, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("read state key %s: %w", key, err)
	}
	return payload, nil
}

func (s *FileStateStore) Save(_ context.Context, key string, payload []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	indented := payload
	var buf any
	if err := json.Unmarshal(payload, &buf); err == nil {
		if pretty, err := json.MarshalIndent(buf, "", "  "); err == nil {
			indented = pretty
		}
	}
	if err := os.WriteFile(s.path(key), indented, 0o644); err != nil {
		return fmt.Errorf("write state key %s: %w", key, err)
	}
	return nil
}

func (s *FileStateStore) Remove(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("remove state key %s: %w", key, err)
	}
	return nil
}

func (s *FileStateStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
