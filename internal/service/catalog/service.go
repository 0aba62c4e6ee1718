package catalog

import (
	"context"
	"errors"
	"log"
	"strings"

	"salonpos/internal/cache"
	"salonpos/internal/domain"
	catalogrepo "salonpos/internal/repository/catalog"
)

type Service struct {
	repo   catalogRepo
	cache  cache.CatalogCache
	logger *log.Logger
}

type catalogRepo interface {
	Search(ctx context.Context, tenantID, query string, activeOnly bool) ([]domain.CatalogItem, error)
	GetByID(ctx context.Context, tenantID, id string) (*domain.CatalogItem, error)
}

// New builds the catalog service. The cache is optional; a nil cache
// disables read-through.
func New(repo catalogrepo.Repository, c cache.CatalogCache, logger *log.Logger) *Service {
	return &Service{repo: repo, cache: c, logger: logger}
}

// Entry is a catalog item decorated with its derived availability.
type Entry struct {
	domain.CatalogItem
	HasStock bool `json:"hasStock"`
}

// Search runs a catalog search with derived stock flags. Results go
// through the cache when one is configured; cache failures fall back to
// the repository. A cancelled context aborts promptly, so a superseded
// search never delivers stale results.
func (s *Service) Search(ctx context.Context, tenantID, query string, activeOnly bool) ([]Entry, error) {
	query = strings.TrimSpace(query)

	key := cache.SearchKey(tenantID, query, activeOnly)
	if s.cache != nil {
		items, err := s.cache.Get(ctx, key)
		if err == nil {
			return decorate(items), nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) && s.logger != nil {
			s.logger.Printf("catalog cache get: %v", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items, err := s.repo.Search(ctx, tenantID, query, activeOnly)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, items); err != nil && s.logger != nil {
			s.logger.Printf("catalog cache set: %v", err)
		}
	}
	return decorate(items), nil
}

func (s *Service) Get(ctx context.Context, tenantID, id string) (*Entry, error) {
	item, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	e := Entry{CatalogItem: *item, HasStock: item.HasStock()}
	return &e, nil
}

func decorate(items []domain.CatalogItem) []Entry {
	out := make([]Entry, 0, len(items))
	for _, item := range items {
		out = append(out, Entry{CatalogItem: item, HasStock: item.HasStock()})
	}
	return out
}
