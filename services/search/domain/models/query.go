package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/ghuser/pricetrail/services/search/domain"
)

// SortBy selects the primary sort key of a search.
type SortBy string

// SortOrder selects the direction of the primary sort key. The item-ID
// tie-break is always ascending regardless of direction.
type SortOrder string

const (
	SortByDate  SortBy = "date"
	SortByPrice SortBy = "price"

	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Pagination defaults and bounds.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DateLayout is the wire format for date filters.
const DateLayout = "2006-01-02"

// SearchParams is the raw, unvalidated input of a search request. String
// fields left empty and zero page numbers take their documented defaults
// during NewSearchQuery.
type SearchParams struct {
	Keyword     string
	Supermarket string
	DateFrom    string // YYYY-MM-DD, empty = unbounded
	DateTo      string // YYYY-MM-DD, empty = unbounded
	SortBy      string
	SortOrder   string
	Page        int // 0 = default 1
	PageSize    int // 0 = default 20
	UseRegex    bool
}

// SearchQuery is the canonical, immutable query descriptor produced from
// SearchParams. It is always scoped to the requesting user's ID; no store
// query can be issued without one. Construction performs no I/O.
type SearchQuery struct {
	UserID      uuid.UUID
	Keyword     string // trimmed, original case; matching folds case
	Supermarket string // exact case-insensitive match, empty = any
	DateFrom    *time.Time
	DateTo      *time.Time
	SortBy      SortBy
	SortOrder   SortOrder
	Page        int
	PageSize    int
	UseRegex    bool
}

// NewSearchQuery validates and normalizes params into a canonical descriptor.
// Every field is checked here, before any store access:
//
//   - keyword: required, non-empty after trimming
//   - dateFrom/dateTo: optional, YYYY-MM-DD; dateFrom must not exceed dateTo
//   - sortBy: date|price, default date; sortOrder: asc|desc, default desc
//   - page: >= 1, default 1; pageSize: [1, 100], default 20
//
// Regex keywords are compiled later, at match construction; compile failures
// surface as ErrInvalidPattern there.
func NewSearchQuery(userID uuid.UUID, p SearchParams) (*SearchQuery, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("search query requires a user id")
	}

	keyword := strings.TrimSpace(p.Keyword)
	if keyword == "" {
		return nil, domain.ErrEmptyKeyword
	}

	sortBy, sortOrder, err := normalizeSort(p.SortBy, p.SortOrder)
	if err != nil {
		return nil, err
	}

	page := p.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidPage, p.Page)
	}

	pageSize := p.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidPageSize, p.PageSize)
	}

	dateFrom, err := parseDate(p.DateFrom)
	if err != nil {
		return nil, err
	}
	dateTo, err := parseDate(p.DateTo)
	if err != nil {
		return nil, err
	}
	if dateFrom != nil && dateTo != nil && dateFrom.After(*dateTo) {
		return nil, domain.ErrInvalidDateRange
	}

	return &SearchQuery{
		UserID:      userID,
		Keyword:     keyword,
		Supermarket: strings.TrimSpace(p.Supermarket),
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		SortBy:      sortBy,
		SortOrder:   sortOrder,
		Page:        page,
		PageSize:    pageSize,
		UseRegex:    p.UseRegex,
	}, nil
}

func normalizeSort(by, order string) (SortBy, SortOrder, error) {
	sortBy := SortByDate
	switch by {
	case "", string(SortByDate):
	case string(SortByPrice):
		sortBy = SortByPrice
	default:
		return "", "", fmt.Errorf("%w: sort_by %q", domain.ErrInvalidSort, by)
	}

	sortOrder := SortDesc
	switch order {
	case "", string(SortDesc):
	case string(SortAsc):
		sortOrder = SortAsc
	default:
		return "", "", fmt.Errorf("%w: sort_order %q", domain.ErrInvalidSort, order)
	}

	return sortBy, sortOrder, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}
	t = t.UTC()
	return &t, nil
}
