package domain

import "errors"

// Sentinel errors for the search domain. Use errors.Is() to check these.
// All Invalid* errors are rejected at the boundary, before any store access.
var (
	// ErrEmptyKeyword indicates a search request with no keyword after trimming.
	ErrEmptyKeyword = errors.New("search keyword must not be empty")

	// ErrInvalidDate indicates a date filter that does not parse as YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidDateRange indicates date_from > date_to.
	ErrInvalidDateRange = errors.New("date_from must not be after date_to")

	// ErrInvalidPage indicates a page number below 1.
	ErrInvalidPage = errors.New("page must be at least 1")

	// ErrInvalidPageSize indicates a page size outside [1, 100].
	ErrInvalidPageSize = errors.New("page_size must be between 1 and 100")

	// ErrInvalidSort indicates an unknown sort field or order.
	ErrInvalidSort = errors.New("invalid sort field or order")

	// ErrInvalidItemName indicates an empty item name in a price history request.
	ErrInvalidItemName = errors.New("item name must not be empty")

	// ErrInvalidPattern indicates a regex keyword that failed to compile.
	ErrInvalidPattern = errors.New("invalid search pattern")

	// ErrPatternTimeout indicates a regex match exceeded its per-item budget.
	// The whole request fails; partial results are never returned.
	ErrPatternTimeout = errors.New("search pattern exceeded matching budget")

	// ErrStoreUnavailable wraps any storage-layer failure. The search core
	// performs no writes, so callers may safely retry.
	ErrStoreUnavailable = errors.New("item store unavailable")
)
