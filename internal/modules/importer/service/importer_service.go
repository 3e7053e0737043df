package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	deckdto "runsheet/internal/modules/deck/dto"
	deckin "runsheet/internal/modules/deck/port/in"
	"runsheet/internal/modules/importer/domain"
	"runsheet/internal/modules/importer/dto"
	importerout "runsheet/internal/modules/importer/port/out"
	apperrors "runsheet/internal/platform/errors"

	hclog "github.com/hashicorp/go-hclog"
)

type ImporterService struct {
	store         importerout.ManifestStore
	host          importerout.Host
	deck          deckin.Usecase
	workspacePath string
	log           hclog.Logger
}

func NewImporterService(store importerout.ManifestStore, host importerout.Host, deck deckin.Usecase, workspacePath string, log hclog.Logger) *ImporterService {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &ImporterService{store: store, host: host, deck: deck, workspacePath: workspacePath, log: log}
}

func (s *ImporterService) List(ctx context.Context) ([]dto.ImporterInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ImporterInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.ImporterInfo{
			Name:        m.Name,
			Version:     m.Version,
			Description: m.Description,
			Enabled:     m.Enabled,
			Binary:      m.Binary,
		})
	}
	return out, nil
}

func (s *ImporterService) Check(ctx context.Context) ([]dto.CheckResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.CheckResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.CheckResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

// Run pulls items from one importer and writes each through the deck.
// Items the importer serves malformed, or that the deck refuses, are
// skipped and counted rather than aborting the batch.
func (s *ImporterService) Run(ctx context.Context, input dto.RunInput) (dto.RunOutput, error) {
	manifest, err := s.getRunnableManifest(ctx, input.ImporterName)
	if err != nil {
		return dto.RunOutput{}, err
	}
	request := domain.ImportRequest{WorkspacePath: s.workspacePath, Query: input.Query, Limit: input.Limit}
	if err := request.Validate(); err != nil {
		return dto.RunOutput{}, err
	}
	items, err := s.host.ImportItems(ctx, manifest, request)
	if err != nil {
		return dto.RunOutput{}, err
	}

	out := dto.RunOutput{ImporterName: input.ImporterName, Items: []dto.ImportedItemInfo{}}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			s.log.Warn("skipping malformed imported item", "importer", input.ImporterName, "name", item.Name, "error", err)
			out.Skipped++
			continue
		}
		saved, err := s.deck.Import(ctx, deckdto.ImportItemInput{
			Name:           item.Name,
			Slug:           item.Slug,
			Tags:           item.Tags,
			DefaultMinutes: item.DefaultMinutes,
			Body:           item.Body,
		})
		if err != nil {
			s.log.Warn("deck rejected imported item", "importer", input.ImporterName, "name", item.Name, "error", err)
			out.Skipped++
			continue
		}
		out.Items = append(out.Items, dto.ImportedItemInfo{
			ID:             saved.ID,
			Name:           saved.Name,
			Slug:           item.Slug,
			DefaultMinutes: saved.DefaultMinutes,
		})
	}
	return out, nil
}

func (s *ImporterService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate importer name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *ImporterService) getRunnableManifest(ctx context.Context, name string) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	manifest := domain.Manifest{}
	found := false
	for _, item := range manifests {
		if item.Name == name {
			manifest = item
			found = true
			break
		}
	}
	if !found {
		return domain.Manifest{}, fmt.Errorf("importer %q: %w", name, apperrors.ErrNotFound)
	}
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrImporterDisabled, name)
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		return domain.Manifest{}, err
	}
	if s.host != nil {
		if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return domain.Manifest{}, fmt.Errorf("%w: %s", apperrors.ErrImporterTimeout, name)
			}
			return domain.Manifest{}, err
		}
	}
	return manifest, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read importer binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
