package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"runsheet/internal/modules/deck/domain"
	deckout "runsheet/internal/modules/deck/port/out"
	"runsheet/internal/platform/clock"
	"runsheet/internal/platform/id"
	"runsheet/internal/platform/slug"
)

type ItemService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     deckout.ItemStore
	projector deckout.ItemIndexProjector
}

func NewItemService(clock clock.Clock, idGen id.Generator, store deckout.ItemStore, projector deckout.ItemIndexProjector) *ItemService {
	return &ItemService{clock: clock, idGen: idGen, store: store, projector: projector}
}

// Add creates an operator-authored item under the custom namespace. The
// slug suffix keeps ids unique even when names collide; the id never
// changes afterwards, edits included.
func (s *ItemService) Add(ctx context.Context, name string, tags []string, defaultMinutes int, body string) (domain.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Item{}, fmt.Errorf("name is required")
	}
	if defaultMinutes < 1 {
		defaultMinutes = 5
	}
	if len(tags) == 0 {
		tags = domain.DeriveTags(name)
	}
	itemSlug := slug.Make(name)
	item := domain.Item{
		ID:             fmt.Sprintf("custom:%s-%s", itemSlug, s.idGen.NewShort()),
		Name:           name,
		Slug:           itemSlug,
		Origin:         domain.OriginCustom,
		Tags:           normalizeTags(tags),
		DefaultMinutes: defaultMinutes,
		AddedAt:        s.clock.Now(),
	}
	return s.persist(ctx, item, body)
}

// Import upserts an item sourced from an importer plugin. The id is
// derived from the slug so repeated imports converge on one file.
func (s *ItemService) Import(ctx context.Context, name, rawSlug string, tags []string, defaultMinutes int, body string) (domain.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Item{}, fmt.Errorf("name is required")
	}
	itemSlug := slug.Make(rawSlug)
	if rawSlug == "" {
		itemSlug = slug.Make(name)
	}
	if defaultMinutes < 1 {
		defaultMinutes = 5
	}
	if len(tags) == 0 {
		tags = domain.DeriveTags(name)
	}
	item := domain.Item{
		ID:             "source:" + itemSlug,
		Name:           name,
		Slug:           itemSlug,
		Origin:         domain.OriginSource,
		Tags:           normalizeTags(tags),
		DefaultMinutes: defaultMinutes,
		AddedAt:        s.clock.Now(),
	}
	return s.persist(ctx, item, body)
}

func (s *ItemService) persist(ctx context.Context, item domain.Item, body string) (domain.Item, error) {
	if err := item.Validate(); err != nil {
		return domain.Item{}, err
	}
	path, err := s.store.Save(ctx, domain.ItemDocument{Item: item, Body: body})
	if err != nil {
		return domain.Item{}, err
	}
	item.NotePath = path
	if err := s.projector.UpsertItem(ctx, item); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

func (s *ItemService) List(ctx context.Context) ([]domain.Item, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.Item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *ItemService) Get(ctx context.Context, id string) (domain.ItemDocument, error) {
	return s.store.FindByID(ctx, id)
}

// Search consults the sqlite index for matching ids, then resolves
// them against the store so results always reflect the item files.
func (s *ItemService) Search(ctx context.Context, query, tag string) ([]domain.Item, error) {
	ids, err := s.projector.Search(ctx, strings.ToLower(strings.TrimSpace(query)), strings.ToLower(strings.TrimSpace(tag)))
	if err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(ids))
	for _, itemID := range ids {
		doc, err := s.store.FindByID(ctx, itemID)
		if err != nil {
			continue
		}
		items = append(items, doc.Item)
	}
	return items, nil
}

func (s *ItemService) Tags(ctx context.Context) ([]string, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	tags := []string{}
	for _, doc := range docs {
		for _, tag := range doc.Item.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func (s *ItemService) Reindex(ctx context.Context) error {
	docs, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.projector.UpsertItem(ctx, doc.Item); err != nil {
			return err
		}
	}
	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
