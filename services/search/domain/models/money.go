package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is a fixed-point monetary value: integer minor units plus an
// ISO 4217-like currency code. Prices are never represented as binary
// floating point, so aggregation and tie-break comparisons stay exact.
//
// The currency code is carried for display and for the mixed-currency check
// in price history aggregation; it never participates in ordering.
type Money struct {
	Cents    int64
	Currency string
}

// NewMoney constructs a positive Money value or returns an error if
// constraints are violated. Item prices must be strictly positive.
func NewMoney(cents int64, currency string) (Money, error) {
	if cents <= 0 {
		return Money{}, fmt.Errorf("amount must be positive, got %d minor units", cents)
	}
	if err := validateCurrency(currency); err != nil {
		return Money{}, err
	}
	return Money{Cents: cents, Currency: strings.ToUpper(currency)}, nil
}

// ParseMoney parses a canonical decimal string ("3.50", "12", "0.99") into
// Money. At most two fractional digits are accepted; prices are stored with
// exactly two.
func ParseMoney(s, currency string) (Money, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(s), ".")
	if whole == "" || strings.HasPrefix(whole, "-") || strings.HasPrefix(whole, "+") {
		return Money{}, fmt.Errorf("malformed amount %q", s)
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("malformed amount %q: %w", s, err)
	}

	var cents int64
	switch len(frac) {
	case 0:
	case 1:
		d, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return Money{}, fmt.Errorf("malformed amount %q: %w", s, err)
		}
		cents = d * 10
	case 2:
		d, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return Money{}, fmt.Errorf("malformed amount %q: %w", s, err)
		}
		cents = d
	default:
		return Money{}, fmt.Errorf("amount %q has more than two fractional digits", s)
	}

	return NewMoney(units*100+cents, currency)
}

// Cmp compares by numeric value only: -1 if m < o, 0 if equal, +1 if m > o.
// Currency is ignored; ranking across currencies is numeric and documented
// as a known limitation of mixed-currency result sets.
func (m Money) Cmp(o Money) int {
	switch {
	case m.Cents < o.Cents:
		return -1
	case m.Cents > o.Cents:
		return 1
	default:
		return 0
	}
}

// String renders the amount with two fractional digits, e.g. "3.50".
// The currency code is not included.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.Cents/100, m.Cents%100)
}

// Average returns the arithmetic mean of prices, rounded half-up to a minor
// unit. Returns ok=false when prices is empty or when the set spans more than
// one currency code; no implicit conversion is ever performed.
func Average(prices []Money) (Money, bool) {
	if len(prices) == 0 {
		return Money{}, false
	}
	currency := prices[0].Currency
	var sum int64
	for _, p := range prices {
		if p.Currency != currency {
			return Money{}, false
		}
		sum += p.Cents
	}
	n := int64(len(prices))
	// Integer half-up rounding for non-negative sums.
	avg := (2*sum + n) / (2 * n)
	return Money{Cents: avg, Currency: currency}, true
}

func validateCurrency(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("currency code must be 3 letters, got %q", code)
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return fmt.Errorf("currency code must be 3 letters, got %q", code)
		}
	}
	return nil
}
