package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/pricetrail/pkg/auth"
	appsvcs "github.com/ghuser/pricetrail/services/search/application/services"
	"github.com/ghuser/pricetrail/services/search/domain/models"
	"github.com/ghuser/pricetrail/services/search/domain/repositories"
)

type stubStore struct {
	items        []*models.Item
	supermarkets []string
}

func (s *stubStore) ItemsByUser(_ context.Context, _ uuid.UUID, f repositories.ItemFilter) ([]*models.Item, error) {
	return s.items, nil
}

func (s *stubStore) SupermarketsByUser(_ context.Context, _ uuid.UUID) ([]string, error) {
	return s.supermarkets, nil
}

func testServices(store repositories.ItemStore) *appsvcs.Services {
	return &appsvcs.Services{
		Search: appsvcs.NewSearchService(store, nil, 50*time.Millisecond),
	}
}

func authedRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	return r.WithContext(auth.WithUserID(r.Context(), uuid.New()))
}

func TestGetSearchHandler(t *testing.T) {
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store := &stubStore{items: []*models.Item{{
		ID:           uuid.New(),
		ReceiptID:    uuid.New(),
		Name:         "Whole Milk",
		Price:        models.Money{Cents: 350, Currency: "USD"},
		Quantity:     decimal.NewFromInt(1),
		Supermarket:  "Tesco",
		PurchaseDate: d,
	}}}
	h := NewGetSearchHandler(testServices(store))

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Execute(w, authedRequest(http.MethodGet, "/search?keyword=milk"))

		if w.Code != http.StatusOK {
			t.Fatalf("status %d, body %s", w.Code, w.Body.String())
		}

		var resp SearchResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Total != 1 || len(resp.Results) != 1 {
			t.Fatalf("unexpected response: %+v", resp)
		}
		got := resp.Results[0]
		if got.Price != "3.50" || got.Currency != "USD" || got.PurchaseDate != "2024-03-01" {
			t.Fatalf("unexpected DTO: %+v", got)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Execute(w, httptest.NewRequest(http.MethodGet, "/search?keyword=milk", nil))

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", w.Code)
		}
	})

	t.Run("missing keyword", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Execute(w, authedRequest(http.MethodGet, "/search"))

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status %d, want 422", w.Code)
		}
	})

	t.Run("non-integer page", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Execute(w, authedRequest(http.MethodGet, "/search?keyword=milk&page=abc"))

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status %d, want 422", w.Code)
		}
	})

	t.Run("bad regex pattern", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Execute(w, authedRequest(http.MethodGet, "/search?keyword=%5Bunclosed&use_regex=true"))

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status %d, want 422", w.Code)
		}
	})
}

func TestGetPriceHistoryHandler(t *testing.T) {
	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	store := &stubStore{items: []*models.Item{
		{
			ID: uuid.New(), ReceiptID: uuid.New(), Name: "Whole Milk",
			Price:       models.Money{Cents: 350, Currency: "USD"},
			Quantity:    decimal.NewFromInt(1),
			Supermarket: "Tesco", PurchaseDate: d1,
		},
		{
			ID: uuid.New(), ReceiptID: uuid.New(), Name: "Whole Milk",
			Price:       models.Money{Cents: 420, Currency: "USD"},
			Quantity:    decimal.NewFromInt(1),
			Supermarket: "Aldi", PurchaseDate: d2,
		},
	}}
	h := NewGetPriceHistoryHandler(testServices(store))

	exec := func(t *testing.T, name string) *httptest.ResponseRecorder {
		t.Helper()
		r := authedRequest(http.MethodGet, "/search/history/"+name)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("itemName", name)
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
		w := httptest.NewRecorder()
		h.Execute(w, r)
		return w
	}

	t.Run("success", func(t *testing.T) {
		w := exec(t, "Whole%20Milk")
		if w.Code != http.StatusOK {
			t.Fatalf("status %d, body %s", w.Code, w.Body.String())
		}

		var resp PriceHistoryResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Points) != 2 {
			t.Fatalf("got %d points", len(resp.Points))
		}
		if resp.AveragePrice == nil || *resp.AveragePrice != "3.85" {
			t.Fatalf("average = %v", resp.AveragePrice)
		}
		if resp.Lowest == nil || resp.Lowest.Price != "3.50" {
			t.Fatalf("lowest = %+v", resp.Lowest)
		}
		if resp.MixedCurrencies {
			t.Fatal("unexpected mixed_currencies flag")
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/search/history/milk", nil)
		w := httptest.NewRecorder()
		h.Execute(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", w.Code)
		}
	})

	t.Run("blank name", func(t *testing.T) {
		w := exec(t, "%20%20")
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status %d, want 422", w.Code)
		}
	})
}

func TestGetSupermarketsHandler(t *testing.T) {
	store := &stubStore{supermarkets: []string{"Aldi", "Tesco", "Tesco Express"}}
	h := NewGetSupermarketsHandler(testServices(store))

	t.Run("prefix filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Execute(w, authedRequest(http.MethodGet, "/search/supermarkets?q=te"))

		if w.Code != http.StatusOK {
			t.Fatalf("status %d, body %s", w.Code, w.Body.String())
		}

		var resp SupermarketsResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Supermarkets) != 2 {
			t.Fatalf("got %v", resp.Supermarkets)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Execute(w, httptest.NewRequest(http.MethodGet, "/search/supermarkets", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", w.Code)
		}
	})
}
