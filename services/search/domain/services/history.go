package services

import (
	"bytes"
	"sort"

	"github.com/ghuser/pricetrail/services/search/domain/models"
)

// AggregateHistory computes the price trend for one item name from its
// matched price points. Points are re-ordered chronologically (date
// ascending, item ID ascending on ties) regardless of input order.
//
// Lowest and Highest carry the extreme points; price ties resolve to the
// earliest date, then the smallest item ID. Average is the arithmetic mean,
// present only when every point shares a single currency — otherwise
// MixedCurrencies is set and Average stays nil. An empty input yields an
// empty history with all aggregates nil, which is a normal result.
func AggregateHistory(itemName string, points []models.PricePoint) *models.PriceHistory {
	h := &models.PriceHistory{ItemName: itemName, Points: points}
	if len(points) == 0 {
		h.Points = []models.PricePoint{}
		return h
	}

	sort.Slice(points, func(i, j int) bool {
		if c := points[i].Date.Compare(points[j].Date); c != 0 {
			return c < 0
		}
		return bytes.Compare(points[i].ItemID[:], points[j].ItemID[:]) < 0
	})

	// With points in (date, id) order, strict comparisons resolve price ties
	// to the earliest date and smallest ID automatically.
	lowest, highest := 0, 0
	prices := make([]models.Money, len(points))
	for i, p := range points {
		prices[i] = p.Price
		if p.Price.Cmp(points[lowest].Price) < 0 {
			lowest = i
		}
		if p.Price.Cmp(points[highest].Price) > 0 {
			highest = i
		}
	}
	h.Lowest = &points[lowest]
	h.Highest = &points[highest]

	if avg, ok := models.Average(prices); ok {
		h.Average = &avg
	} else {
		h.MixedCurrencies = true
	}
	return h
}
