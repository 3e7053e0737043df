package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"runsheet/internal/modules/deck/domain"
	deckout "runsheet/internal/modules/deck/port/out"
	apperrors "runsheet/internal/platform/errors"
	"runsheet/internal/platform/markdown"
)

// WorkspaceItemStore keeps each deck item as a markdown file with YAML
// frontmatter under <workspace>/activities/. The body holds the
// facilitation instructions and is free for hand edits.
type WorkspaceItemStore struct {
	dir string
}

func NewWorkspaceItemStore(activitiesDir string) deckout.ItemStore {
	return &WorkspaceItemStore{dir: activitiesDir}
}

func (s *WorkspaceItemStore) Save(_ context.Context, document domain.ItemDocument) (string, error) {
	item := document.Item
	path := filepath.Join(s.dir, item.Slug+".md")
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create activities directory: %w", err)
	}

	body := document.Body
	if existing, err := os.ReadFile(path); err == nil {
		_, existingBody, splitErr := markdown.SplitFrontmatter(string(existing))
		if splitErr == nil && strings.TrimSpace(body) == "" {
			body = existingBody
		}
	}
	if strings.TrimSpace(body) == "" {
		body = "## How to run\n\n## Materials\n\n## Debrief prompts\n"
	}

	rendered, err := markdown.RenderFrontmatter(toFrontmatter(item), body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write activity markdown: %w", err)
	}
	return path, nil
}

func (s *WorkspaceItemStore) FindByID(ctx context.Context, id string) (domain.ItemDocument, error) {
	docs, err := s.List(ctx)
	if err != nil {
		return domain.ItemDocument{}, err
	}
	for _, doc := range docs {
		if doc.Item.ID == id {
			return doc, nil
		}
	}
	return domain.ItemDocument{}, apperrors.ErrNotFound
}

func (s *WorkspaceItemStore) List(_ context.Context) ([]domain.ItemDocument, error) {
	glob := filepath.Join(s.dir, "*.md")
	matches, err := filepath.Glob(glob)
	if err != nil {
		return nil, fmt.Errorf("glob activity notes: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.ItemDocument, 0, len(matches))
	for _, path := range matches {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read activity note: %w", readErr)
		}
		meta, body, splitErr := markdown.SplitFrontmatter(string(content))
		if splitErr != nil {
			// A malformed file should not take down the whole deck.
			continue
		}
		item, ok := fromFrontmatter(meta)
		if !ok {
			continue
		}
		item.NotePath = path
		out = append(out, domain.ItemDocument{Item: item, Body: body})
	}
	return out, nil
}

func toFrontmatter(item domain.Item) map[string]any {
	return map[string]any{
		"schema_version":  domain.SchemaVersion,
		"id":              item.ID,
		"name":            item.Name,
		"slug":            item.Slug,
		"origin":          string(item.Origin),
		"tags":            item.Tags,
		"default_minutes": item.DefaultMinutes,
		"added_at":        item.AddedAt.UTC().Format(time.RFC3339),
	}
}

func fromFrontmatter(meta map[string]any) (domain.Item, bool) {
	item := domain.Item{
		ID:     asString(meta["id"]),
		Name:   asString(meta["name"]),
		Slug:   asString(meta["slug"]),
		Origin: domain.Origin(asString(meta["origin"])),
	}
	if item.ID == "" || item.Name == "" {
		return domain.Item{}, false
	}
	if minutes, ok := meta["default_minutes"].(int); ok {
		item.DefaultMinutes = minutes
	}
	if item.DefaultMinutes < 1 {
		item.DefaultMinutes = 5
	}
	if raw, ok := meta["tags"].([]any); ok {
		for _, v := range raw {
			if tag := asString(v); tag != "" {
				item.Tags = append(item.Tags, tag)
			}
		}
	}
	if added, err := time.Parse(time.RFC3339, asString(meta["added_at"])); err == nil {
		item.AddedAt = added
	}
	return item, true
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
