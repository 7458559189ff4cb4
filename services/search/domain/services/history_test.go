package services

import (
	"testing"
	"time"

	"github.com/ghuser/pricetrail/services/search/domain/models"
)

func pricePoint(id byte, date string, cents int64, currency string) models.PricePoint {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return models.PricePoint{
		ItemID:      seqID(id),
		Date:        d.UTC(),
		Price:       models.Money{Cents: cents, Currency: currency},
		Supermarket: "Tesco",
	}
}

func TestAggregateHistory(t *testing.T) {
	// Deliberately out of order: aggregation must sort chronologically.
	points := []models.PricePoint{
		pricePoint(2, "2024-04-01", 420, "USD"),
		pricePoint(1, "2024-03-01", 350, "USD"),
	}

	h := AggregateHistory("milk", points)

	if h.ItemName != "milk" {
		t.Errorf("unexpected item name %q", h.ItemName)
	}
	if len(h.Points) != 2 {
		t.Fatalf("got %d points, want 2", len(h.Points))
	}
	if h.Points[0].ItemID != seqID(1) || h.Points[1].ItemID != seqID(2) {
		t.Error("points must be in date ascending order")
	}
	if h.Lowest == nil || h.Lowest.Price.Cents != 350 {
		t.Errorf("lowest = %+v, want 3.50", h.Lowest)
	}
	if h.Highest == nil || h.Highest.Price.Cents != 420 {
		t.Errorf("highest = %+v, want 4.20", h.Highest)
	}
	if h.Average == nil || h.Average.Cents != 385 {
		t.Errorf("average = %+v, want 3.85", h.Average)
	}
	if h.MixedCurrencies {
		t.Error("single currency must not set MixedCurrencies")
	}
}

func TestAggregateHistory_PriceTiesResolveToEarliest(t *testing.T) {
	points := []models.PricePoint{
		pricePoint(3, "2024-05-01", 100, "USD"),
		pricePoint(1, "2024-03-01", 100, "USD"),
		pricePoint(2, "2024-03-01", 100, "USD"),
	}

	h := AggregateHistory("milk", points)

	if h.Lowest.ItemID != seqID(1) {
		t.Errorf("lowest tie must resolve to earliest date then smallest id, got %v", h.Lowest.ItemID)
	}
	if h.Highest.ItemID != seqID(1) {
		t.Errorf("highest tie must resolve to earliest date then smallest id, got %v", h.Highest.ItemID)
	}
}

func TestAggregateHistory_MixedCurrencies(t *testing.T) {
	points := []models.PricePoint{
		pricePoint(1, "2024-03-01", 350, "USD"),
		pricePoint(2, "2024-04-01", 420, "EUR"),
	}

	h := AggregateHistory("milk", points)

	if !h.MixedCurrencies {
		t.Fatal("expected MixedCurrencies")
	}
	if h.Average != nil {
		t.Error("average must be nil across currencies")
	}
	// Extremes are still reported; comparison is numeric.
	if h.Lowest == nil || h.Lowest.Price.Cents != 350 {
		t.Errorf("lowest = %+v", h.Lowest)
	}
	if h.Highest == nil || h.Highest.Price.Cents != 420 {
		t.Errorf("highest = %+v", h.Highest)
	}
}

func TestAggregateHistory_Empty(t *testing.T) {
	h := AggregateHistory("milk", nil)

	if h.Points == nil || len(h.Points) != 0 {
		t.Error("empty history must carry an empty, non-nil points slice")
	}
	if h.Lowest != nil || h.Highest != nil || h.Average != nil {
		t.Error("aggregates must be nil for an empty history")
	}
	if h.MixedCurrencies {
		t.Error("empty history is not mixed-currency")
	}
}

func TestAggregateHistory_SinglePoint(t *testing.T) {
	points := []models.PricePoint{pricePoint(1, "2024-03-01", 350, "USD")}
	h := AggregateHistory("milk", points)

	if h.Lowest != h.Highest {
		// Both should point at the same element.
		if h.Lowest.ItemID != h.Highest.ItemID {
			t.Error("single point must be both lowest and highest")
		}
	}
	if h.Average == nil || h.Average.Cents != 350 {
		t.Errorf("average = %+v, want the single price", h.Average)
	}
}
