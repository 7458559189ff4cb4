package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/ghuser/pricetrail/pkg/auth"
	"github.com/ghuser/pricetrail/pkg/errhttp"
	"github.com/ghuser/pricetrail/pkg/httpx"
	pkgvalidator "github.com/ghuser/pricetrail/pkg/validator"
	appsvcs "github.com/ghuser/pricetrail/services/search/application/services"
	"github.com/ghuser/pricetrail/services/search/domain/models"
)

// SearchRequest captures the query parameters of GET /search.
type SearchRequest struct {
	Keyword     string `json:"keyword" validate:"required"`
	Supermarket string `json:"supermarket" validate:"omitempty,max=255"`
	DateFrom    string `json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo      string `json:"date_to" validate:"omitempty,datetime=2006-01-02"`
	SortBy      string `json:"sort_by" validate:"omitempty,oneof=date price"`
	SortOrder   string `json:"sort_order" validate:"omitempty,oneof=asc desc"`
	Page        int    `json:"page" validate:"gte=1"`
	PageSize    int    `json:"page_size" validate:"gte=1,lte=100"`
	UseRegex    bool   `json:"use_regex"`
}

// SearchResultItem is one search hit with its receipt context.
type SearchResultItem struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Brand           string    `json:"brand,omitempty"`
	Price           string    `json:"price"`
	Currency        string    `json:"currency"`
	Quantity        string    `json:"quantity"`
	Unit            string    `json:"unit,omitempty"`
	SupermarketName string    `json:"supermarket_name"`
	PurchaseDate    string    `json:"purchase_date"`
}

// SearchResponse is the paginated search result.
type SearchResponse struct {
	Results    []SearchResultItem `json:"results"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// GetSearchHandler handles GET /search requests.
type GetSearchHandler struct {
	svc *appsvcs.Services
}

// NewGetSearchHandler returns a GetSearchHandler backed by the given services.
func NewGetSearchHandler(svc *appsvcs.Services) *GetSearchHandler {
	return &GetSearchHandler{svc: svc}
}

// Execute searches the authenticated user's items by keyword with optional
// supermarket and date-range filters, deterministic ordering, and pagination.
func (h *GetSearchHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := parseSearchRequest(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Search.Search(r.Context(), userID, models.SearchParams{
		Keyword:     req.Keyword,
		Supermarket: req.Supermarket,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		SortBy:      req.SortBy,
		SortOrder:   req.SortOrder,
		Page:        req.Page,
		PageSize:    req.PageSize,
		UseRegex:    req.UseRegex,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toSearchResponse(result))
}

// parseSearchRequest binds query parameters into a SearchRequest, applying
// the documented defaults for absent pagination fields, and validates it.
// Writes the error response and returns ok=false on failure.
func parseSearchRequest(w http.ResponseWriter, r *http.Request) (*SearchRequest, bool) {
	qp := r.URL.Query()

	req := SearchRequest{
		Keyword:     qp.Get("keyword"),
		Supermarket: qp.Get("supermarket"),
		DateFrom:    qp.Get("date_from"),
		DateTo:      qp.Get("date_to"),
		SortBy:      qp.Get("sort_by"),
		SortOrder:   qp.Get("sort_order"),
		UseRegex:    qp.Get("use_regex") == "true",
	}

	var err error
	if req.Page, err = intParam(qp.Get("page"), 1); err != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "page must be an integer")
		return nil, false
	}
	if req.PageSize, err = intParam(qp.Get("page_size"), models.DefaultPageSize); err != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "page_size must be an integer")
		return nil, false
	}

	if err := pkgvalidator.Validate(&req); err != nil {
		httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "Validation failed",
			"fields": pkgvalidator.FormatValidationErrors(err),
		})
		return nil, false
	}
	return &req, true
}

func intParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func toSearchResponse(result *models.SearchResult) SearchResponse {
	items := make([]SearchResultItem, len(result.Items))
	for i, it := range result.Items {
		items[i] = SearchResultItem{
			ID:              it.ID,
			Name:            it.Name,
			Brand:           it.Brand,
			Price:           it.Price.String(),
			Currency:        it.Price.Currency,
			Quantity:        it.Quantity.String(),
			Unit:            it.Unit,
			SupermarketName: it.Supermarket,
			PurchaseDate:    it.PurchaseDate.Format(models.DateLayout),
		}
	}
	return SearchResponse{
		Results:    items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}
}
