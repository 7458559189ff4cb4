// Package services contains stateless domain services for the search bounded
// context: keyword matching, search execution, pagination, and price history
// aggregation. They operate purely on domain types and have zero external
// dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	domain "github.com/ghuser/pricetrail/services/search/domain"
	"github.com/ghuser/pricetrail/services/search/domain/models"
)

// Matcher evaluates the keyword predicate of a search query against items.
//
// Plain keywords match by case-insensitive substring containment against the
// item's name OR brand. Regex keywords compile once, case-insensitively, and
// every per-item evaluation is capped by a wall-clock budget: the first item
// to exceed it aborts the whole search with ErrPatternTimeout, so callers
// never mistake a truncated result for a complete one.
type Matcher struct {
	keyword string // case-folded, for substring matching
	re      *regexp.Regexp
	budget  time.Duration
}

// NewMatcher builds the keyword predicate for q. Returns ErrInvalidPattern
// when q.UseRegex is set and the keyword does not compile.
func NewMatcher(q *models.SearchQuery, budget time.Duration) (*Matcher, error) {
	if !q.UseRegex {
		return &Matcher{keyword: strings.ToLower(q.Keyword)}, nil
	}

	re, err := regexp.Compile("(?i)" + q.Keyword)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPattern, err)
	}
	return &Matcher{re: re, budget: budget}, nil
}

// Matches reports whether the item's name or brand satisfies the keyword
// predicate. Returns ErrPatternTimeout when a regex evaluation for this item
// exceeds the budget.
func (m *Matcher) Matches(it *models.Item) (bool, error) {
	if m.re == nil {
		return strings.Contains(strings.ToLower(it.Name), m.keyword) ||
			(it.Brand != "" && strings.Contains(strings.ToLower(it.Brand), m.keyword)), nil
	}

	start := time.Now()
	matched := m.re.MatchString(it.Name)
	if !matched && it.Brand != "" {
		matched = m.re.MatchString(it.Brand)
	}
	if time.Since(start) > m.budget {
		return false, fmt.Errorf("%w: item %s", domain.ErrPatternTimeout, it.ID)
	}
	return matched, nil
}
