package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one priced line entry from a receipt, joined with the context of
// its parent receipt at load time. The search core never mutates items;
// receipts and items are created by the external CRUD/OCR collaborators.
//
// The effective currency of an item is its parent receipt's currency — items
// do not carry their own. PurchaseDate is a calendar date (UTC midnight, no
// time component).
type Item struct {
	ID        uuid.UUID
	ReceiptID uuid.UUID
	Name      string
	Brand     string // empty when absent
	Price     Money
	Quantity  decimal.Decimal // positive, fractional quantities allowed
	Unit      string          // empty when absent

	// Receipt context.
	Supermarket  string
	PurchaseDate time.Time
}

// PricePoint is one (date, price, currency, supermarket) observation of a
// named item, derived from an item and its receipt. ItemID is the
// deterministic tie-break key for equal dates and equal prices.
type PricePoint struct {
	ItemID      uuid.UUID
	Date        time.Time
	Price       Money
	Supermarket string
}

// PricePoint projects the item onto its price history observation.
func (i *Item) PricePoint() PricePoint {
	return PricePoint{
		ItemID:      i.ID,
		Date:        i.PurchaseDate,
		Price:       i.Price,
		Supermarket: i.Supermarket,
	}
}

// PriceHistory is the aggregated price trend for one item name.
// Points are chronological (date ascending, item ID ascending on ties).
// Average is nil whenever the matched points span more than one currency;
// MixedCurrencies is set instead, and no conversion is ever attempted.
// An empty history has Lowest, Highest and Average all nil — that is a
// normal result, not an error.
type PriceHistory struct {
	ItemName        string
	Points          []PricePoint
	Lowest          *PricePoint
	Highest         *PricePoint
	Average         *Money
	MixedCurrencies bool
}

// SearchResult is one page of an executed search plus its pagination metadata.
// Total counts all matches before pagination.
type SearchResult struct {
	Items      []*Item
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}
