package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/pricetrail/services/search/domain/models"
)

// ItemFilter narrows an item snapshot read. All set fields are ANDed.
// Implementations match Name and Supermarket exactly but case-insensitively;
// the date range is inclusive at both ends and applies to the parent
// receipt's purchase date.
type ItemFilter struct {
	Name        string // exact case-insensitive item name, empty = any
	Supermarket string // exact case-insensitive supermarket, empty = any
	DateFrom    *time.Time
	DateTo      *time.Time
}

// ItemStore is the read-only query interface over a user's persisted items.
// The domain layer owns this interface; infrastructure implements it.
//
// userID is a mandatory argument on every method — cross-user isolation is
// enforced at the type level, never as an afterthought filter. Each call
// reads a storage-consistent snapshot; read-committed isolation or stronger
// is required of implementations so a query never observes an item joined
// with a half-written parent receipt.
type ItemStore interface {
	// ItemsByUser returns the user's items (joined with receipt context)
	// matching the filter, in unspecified order.
	ItemsByUser(ctx context.Context, userID uuid.UUID, f ItemFilter) ([]*models.Item, error)

	// SupermarketsByUser returns the distinct supermarket names on the user's
	// receipts, deduplicated case-insensitively with original casing
	// preserved, ordered case-insensitively ascending.
	SupermarketsByUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}
