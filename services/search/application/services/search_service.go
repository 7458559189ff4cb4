package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/pricetrail/pkg/cache"
	domain "github.com/ghuser/pricetrail/services/search/domain"
	"github.com/ghuser/pricetrail/services/search/domain/models"
	"github.com/ghuser/pricetrail/services/search/domain/repositories"
	domainsvcs "github.com/ghuser/pricetrail/services/search/domain/services"
)

// maxSupermarketSuggestions caps the autocomplete response size.
const maxSupermarketSuggestions = 10

// SearchService orchestrates keyword search, price history aggregation, and
// supermarket autocomplete over the user's item snapshot. It is stateless
// between requests: every call is a pure function of (user id, store
// snapshot, query descriptor). Supermarket lists are served read-through
// from Redis when a cache is wired.
type SearchService struct {
	store       repositories.ItemStore
	smCache     *pkgcache.SupermarketCache // nil disables caching
	regexBudget time.Duration
}

// NewSearchService returns a SearchService wired with the given store, cache,
// and per-item regex matching budget.
func NewSearchService(store repositories.ItemStore, smCache *pkgcache.SupermarketCache, regexBudget time.Duration) *SearchService {
	return &SearchService{store: store, smCache: smCache, regexBudget: regexBudget}
}

// Search validates params into a canonical descriptor, reads the user's item
// snapshot, executes the keyword predicate with deterministic ordering, and
// returns the requested page plus pagination metadata.
//
// Validation failures surface before any store access; storage failures are
// wrapped as ErrStoreUnavailable and are safe for the caller to retry.
func (s *SearchService) Search(ctx context.Context, userID uuid.UUID, p models.SearchParams) (*models.SearchResult, error) {
	q, err := models.NewSearchQuery(userID, p)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.store.ItemsByUser(ctx, q.UserID, repositories.ItemFilter{
		Supermarket: q.Supermarket,
		DateFrom:    q.DateFrom,
		DateTo:      q.DateTo,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	matched, total, err := domainsvcs.ExecuteSearch(q, snapshot, s.regexBudget)
	if err != nil {
		return nil, err
	}

	return &models.SearchResult{
		Items:      domainsvcs.Page(matched, q.Page, q.PageSize),
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: domainsvcs.TotalPages(total, q.PageSize),
	}, nil
}

// PriceHistory aggregates the price trend for one item name, matched exactly
// but case-insensitively, optionally scoped to one supermarket. An empty
// history is a normal result, not an error.
func (s *SearchService) PriceHistory(ctx context.Context, userID uuid.UUID, itemName, supermarket string) (*models.PriceHistory, error) {
	name := strings.TrimSpace(itemName)
	if name == "" {
		return nil, domain.ErrInvalidItemName
	}
	if userID == uuid.Nil {
		return nil, fmt.Errorf("price history requires a user id")
	}

	items, err := s.store.ItemsByUser(ctx, userID, repositories.ItemFilter{
		Name:        name,
		Supermarket: strings.TrimSpace(supermarket),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	points := make([]models.PricePoint, len(items))
	for i, it := range items {
		points[i] = it.PricePoint()
	}
	return domainsvcs.AggregateHistory(name, points), nil
}

// Supermarkets returns up to 10 of the user's distinct supermarket names for
// autocomplete, optionally narrowed by a case-insensitive prefix. The full
// per-user list is served read-through from Redis; cache errors fall back to
// the store.
func (s *SearchService) Supermarkets(ctx context.Context, userID uuid.UUID, prefix string) ([]string, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("supermarket suggestions require a user id")
	}

	names, cached := s.cachedSupermarkets(ctx, userID)
	if !cached {
		var err error
		names, err = s.store.SupermarketsByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		if s.smCache != nil {
			// Warming is best-effort; a failed write never fails the request.
			_ = s.smCache.Set(ctx, userID, names)
		}
	}

	return filterSupermarkets(names, prefix), nil
}

func (s *SearchService) cachedSupermarkets(ctx context.Context, userID uuid.UUID) ([]string, bool) {
	if s.smCache == nil {
		return nil, false
	}
	names, err := s.smCache.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Cache error — fall through to the store.
			_ = err
		}
		return nil, false
	}
	return names, true
}

// filterSupermarkets applies the case-insensitive prefix filter, deduplicates
// case-insensitively while preserving the first-seen casing, and caps the
// result. Stores already deduplicate; re-checking keeps the contract
// independent of the snapshot source.
func filterSupermarkets(names []string, prefix string) []string {
	folded := strings.ToLower(strings.TrimSpace(prefix))
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, maxSupermarketSuggestions)
	for _, name := range names {
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if folded != "" && !strings.HasPrefix(key, folded) {
			continue
		}
		out = append(out, name)
		if len(out) == maxSupermarketSuggestions {
			break
		}
	}
	return out
}
