package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/pricetrail/pkg/auth"
	"github.com/ghuser/pricetrail/pkg/errhttp"
	"github.com/ghuser/pricetrail/pkg/httpx"
	appsvcs "github.com/ghuser/pricetrail/services/search/application/services"
	"github.com/ghuser/pricetrail/services/search/domain/models"
)

// PricePointDTO is one purchase observation in a price history.
type PricePointDTO struct {
	ItemID          uuid.UUID `json:"item_id"`
	Date            string    `json:"date"`
	Price           string    `json:"price"`
	Currency        string    `json:"currency"`
	SupermarketName string    `json:"supermarket_name"`
}

// PriceHistoryResponse is the aggregated trend for a single item name.
// Aggregate fields are null when no purchases matched; average_price is
// additionally null when the purchases span multiple currencies.
type PriceHistoryResponse struct {
	ItemName        string         `json:"item_name"`
	Points          []PricePointDTO `json:"points"`
	Lowest          *PricePointDTO `json:"lowest"`
	Highest         *PricePointDTO `json:"highest"`
	AveragePrice    *string        `json:"average_price"`
	AverageCurrency *string        `json:"average_currency"`
	MixedCurrencies bool           `json:"mixed_currencies"`
}

// GetPriceHistoryHandler handles GET /search/history/{itemName} requests.
type GetPriceHistoryHandler struct {
	svc *appsvcs.Services
}

// NewGetPriceHistoryHandler returns a GetPriceHistoryHandler backed by the
// given services.
func NewGetPriceHistoryHandler(svc *appsvcs.Services) *GetPriceHistoryHandler {
	return &GetPriceHistoryHandler{svc: svc}
}

// Execute returns the chronological price history of one item name across the
// authenticated user's receipts, with lowest, highest and average aggregates.
func (h *GetPriceHistoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	itemName := chi.URLParam(r, "itemName")
	if decoded, err := url.PathUnescape(itemName); err == nil {
		itemName = decoded
	}
	supermarket := r.URL.Query().Get("supermarket")

	history, err := h.svc.Search.PriceHistory(r.Context(), userID, itemName, supermarket)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toPriceHistoryResponse(history))
}

func toPriceHistoryResponse(h *models.PriceHistory) PriceHistoryResponse {
	resp := PriceHistoryResponse{
		ItemName:        h.ItemName,
		Points:          make([]PricePointDTO, len(h.Points)),
		MixedCurrencies: h.MixedCurrencies,
	}
	for i, p := range h.Points {
		resp.Points[i] = toPricePointDTO(p)
	}
	if h.Lowest != nil {
		dto := toPricePointDTO(*h.Lowest)
		resp.Lowest = &dto
	}
	if h.Highest != nil {
		dto := toPricePointDTO(*h.Highest)
		resp.Highest = &dto
	}
	if h.Average != nil {
		price := h.Average.String()
		currency := h.Average.Currency
		resp.AveragePrice = &price
		resp.AverageCurrency = &currency
	}
	return resp
}

func toPricePointDTO(p models.PricePoint) PricePointDTO {
	return PricePointDTO{
		ItemID:          p.ItemID,
		Date:            p.Date.Format(models.DateLayout),
		Price:           p.Price.String(),
		Currency:        p.Price.Currency,
		SupermarketName: p.Supermarket,
	}
}
