package catalog

import (
	"context"
	"errors"
	"testing"

	"salonpos/internal/cache"
	"salonpos/internal/domain"
)

type stubRepo struct {
	items      []domain.CatalogItem
	err        error
	calls      int
	lastQuery  string
	lastActive bool
}

func (s *stubRepo) Search(_ context.Context, _, query string, activeOnly bool) ([]domain.CatalogItem, error) {
	s.calls++
	s.lastQuery = query
	s.lastActive = activeOnly
	return s.items, s.err
}

func (s *stubRepo) GetByID(_ context.Context, _, _ string) (*domain.CatalogItem, error) {
	if len(s.items) == 0 {
		return nil, domain.ErrNotFound
	}
	return &s.items[0], nil
}

type memCache struct {
	entries map[string][]domain.CatalogItem
	getErr  error
	sets    int
}

func (m *memCache) Get(_ context.Context, key string) ([]domain.CatalogItem, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	items, ok := m.entries[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return items, nil
}

func (m *memCache) Set(_ context.Context, key string, items []domain.CatalogItem) error {
	if m.entries == nil {
		m.entries = make(map[string][]domain.CatalogItem)
	}
	m.entries[key] = items
	m.sets++
	return nil
}

func (m *memCache) Invalidate(_ context.Context, _ string) error { return nil }

func TestSearchDerivesStock(t *testing.T) {
	repo := &stubRepo{items: []domain.CatalogItem{
		{ID: "a", Kind: domain.ItemKindProduct, StockQty: 3},
		{ID: "b", Kind: domain.ItemKindProduct, StockQty: 0},
		{ID: "c", Kind: domain.ItemKindService},
	}}
	svc := &Service{repo: repo}

	entries, err := svc.Search(context.Background(), "t1", "  sham  ", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastQuery != "sham" || !repo.lastActive {
		t.Fatalf("query not normalized/forwarded: %q %v", repo.lastQuery, repo.lastActive)
	}
	if !entries[0].HasStock || entries[1].HasStock || !entries[2].HasStock {
		t.Fatalf("unexpected stock flags %+v", entries)
	}
}

func TestSearchCacheHitSkipsRepo(t *testing.T) {
	repo := &stubRepo{}
	c := &memCache{entries: map[string][]domain.CatalogItem{
		cache.SearchKey("t1", "gel", true): {{ID: "cached"}},
	}}
	svc := &Service{repo: repo, cache: c}

	entries, err := svc.Search(context.Background(), "t1", "gel", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "cached" {
		t.Fatalf("expected cached entry, got %+v", entries)
	}
	if repo.calls != 0 {
		t.Fatalf("repo should not be queried on cache hit")
	}
}

func TestSearchCacheMissPopulatesCache(t *testing.T) {
	repo := &stubRepo{items: []domain.CatalogItem{{ID: "a"}}}
	c := &memCache{}
	svc := &Service{repo: repo, cache: c}

	if _, err := svc.Search(context.Background(), "t1", "gel", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.calls != 1 || c.sets != 1 {
		t.Fatalf("expected repo query and cache fill, got %d/%d", repo.calls, c.sets)
	}
}

func TestSearchCacheErrorFallsBack(t *testing.T) {
	repo := &stubRepo{items: []domain.CatalogItem{{ID: "a"}}}
	c := &memCache{getErr: errors.New("redis down")}
	svc := &Service{repo: repo, cache: c}

	entries, err := svc.Search(context.Background(), "t1", "gel", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || repo.calls != 1 {
		t.Fatalf("expected fallback to repo, got %+v", entries)
	}
}

func TestSearchHonorsCancelledContext(t *testing.T) {
	repo := &stubRepo{items: []domain.CatalogItem{{ID: "a"}}}
	svc := &Service{repo: repo}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Search(ctx, "t1", "gel", false); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("superseded search must not hit the repository")
	}
}
