package services

import (
	"bytes"
	"sort"
	"strings"
	"time"

	"github.com/ghuser/pricetrail/services/search/domain/models"
)

// ExecuteSearch applies the query descriptor to a snapshot of the user's
// items and returns the ordered matches plus the total match count before
// pagination. It is a pure function: same descriptor + same snapshot =
// same ordered result.
//
// The keyword predicate, supermarket filter (exact, case-insensitive) and
// inclusive date range are ANDed. A store may have pre-applied the cheap
// filters; re-checking here keeps execution correct over any snapshot
// source, including in-memory ones.
//
// Sort: primary key per SortBy with the descriptor's direction; ties always
// break by item ID ascending so repeated calls over an unchanged dataset
// paginate reproducibly.
func ExecuteSearch(q *models.SearchQuery, snapshot []*models.Item, regexBudget time.Duration) ([]*models.Item, int, error) {
	m, err := NewMatcher(q, regexBudget)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]*models.Item, 0, len(snapshot))
	for _, it := range snapshot {
		if !filterItem(q, it) {
			continue
		}
		ok, err := m.Matches(it)
		if err != nil {
			return nil, 0, err
		}
		if ok {
			matched = append(matched, it)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return lessItems(q, matched[i], matched[j])
	})

	return matched, len(matched), nil
}

func filterItem(q *models.SearchQuery, it *models.Item) bool {
	if q.Supermarket != "" && !strings.EqualFold(it.Supermarket, q.Supermarket) {
		return false
	}
	if q.DateFrom != nil && it.PurchaseDate.Before(*q.DateFrom) {
		return false
	}
	if q.DateTo != nil && it.PurchaseDate.After(*q.DateTo) {
		return false
	}
	return true
}

// lessItems orders by the primary sort key in the requested direction; the
// item-ID tie-break is always ascending, independent of direction.
func lessItems(q *models.SearchQuery, a, b *models.Item) bool {
	var c int
	switch q.SortBy {
	case models.SortByPrice:
		c = a.Price.Cmp(b.Price)
	default:
		c = a.PurchaseDate.Compare(b.PurchaseDate)
	}
	if c == 0 {
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	}
	if q.SortOrder == models.SortDesc {
		return c > 0
	}
	return c < 0
}
