// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/pricetrail/pkg/httpx"
	searchdomain "github.com/ghuser/pricetrail/services/search/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, searchdomain.ErrEmptyKeyword),
		errors.Is(err, searchdomain.ErrInvalidDate),
		errors.Is(err, searchdomain.ErrInvalidDateRange),
		errors.Is(err, searchdomain.ErrInvalidPage),
		errors.Is(err, searchdomain.ErrInvalidPageSize),
		errors.Is(err, searchdomain.ErrInvalidSort),
		errors.Is(err, searchdomain.ErrInvalidItemName),
		errors.Is(err, searchdomain.ErrInvalidPattern),
		errors.Is(err, searchdomain.ErrPatternTimeout):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, searchdomain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
