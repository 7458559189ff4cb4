package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/pricetrail/pkg/database"
	"github.com/ghuser/pricetrail/services/search/domain/models"
	"github.com/ghuser/pricetrail/services/search/domain/repositories"
)

// ItemStore implements repositories.ItemStore against PostgreSQL.
// All queries are single SELECT statements, so each call observes one
// read-committed snapshot: an item is never joined with a half-written
// parent receipt.
type ItemStore struct {
	db *database.Database
}

// NewItemStore returns an ItemStore backed by the given connection pool.
func NewItemStore(db *database.Database) *ItemStore {
	return &ItemStore{db: db}
}

// ItemsByUser returns the user's items joined with their receipt context,
// narrowed by the filter. Monetary columns are transferred as text and
// parsed into exact fixed-point values; no float conversion occurs.
func (s *ItemStore) ItemsByUser(ctx context.Context, userID uuid.UUID, f repositories.ItemFilter) ([]*models.Item, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT i.id, i.receipt_id, i.name, COALESCE(i.brand, ''),
		       i.price::text, i.quantity::text, COALESCE(i.unit, ''),
		       r.supermarket_name, r.purchase_date, r.currency
		FROM items i
		JOIN receipts r ON r.id = i.receipt_id
		WHERE r.user_id = $1`)
	args := []any{userID}

	if f.Name != "" {
		args = append(args, f.Name)
		fmt.Fprintf(&sb, " AND lower(i.name) = lower($%d)", len(args))
	}
	if f.Supermarket != "" {
		args = append(args, f.Supermarket)
		fmt.Fprintf(&sb, " AND lower(r.supermarket_name) = lower($%d)", len(args))
	}
	if f.DateFrom != nil {
		args = append(args, *f.DateFrom)
		fmt.Fprintf(&sb, " AND r.purchase_date >= $%d", len(args))
	}
	if f.DateTo != nil {
		args = append(args, *f.DateTo)
		fmt.Fprintf(&sb, " AND r.purchase_date <= $%d", len(args))
	}

	rows, err := s.db.Pool().Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		var (
			it               models.Item
			priceStr, qtyStr string
			currency         string
			purchaseDate     time.Time
		)
		if err := rows.Scan(
			&it.ID, &it.ReceiptID, &it.Name, &it.Brand,
			&priceStr, &qtyStr, &it.Unit,
			&it.Supermarket, &purchaseDate, &currency,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}

		price, err := models.ParseMoney(priceStr, currency)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", it.ID, err)
		}
		qty, err := decimal.NewFromString(qtyStr)
		if err != nil {
			return nil, fmt.Errorf("item %s: parse quantity: %w", it.ID, err)
		}

		it.Price = price
		it.Quantity = qty
		it.PurchaseDate = time.Date(
			purchaseDate.Year(), purchaseDate.Month(), purchaseDate.Day(),
			0, 0, 0, 0, time.UTC,
		)
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// SupermarketsByUser returns the user's distinct supermarket names.
// DISTINCT ON lower(name) deduplicates case-insensitively while keeping one
// original casing deterministically (the case-insensitive-then-sensitive
// order picks the same representative on every call).
func (s *ItemStore) SupermarketsByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := s.db.Pool().Query(ctx, `
		SELECT DISTINCT ON (lower(supermarket_name)) supermarket_name
		FROM receipts
		WHERE user_id = $1
		ORDER BY lower(supermarket_name), supermarket_name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query supermarkets: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan supermarket: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate supermarkets: %w", err)
	}
	return names, nil
}
