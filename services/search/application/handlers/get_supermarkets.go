package handlers

import (
	"net/http"

	"github.com/ghuser/pricetrail/pkg/auth"
	"github.com/ghuser/pricetrail/pkg/errhttp"
	"github.com/ghuser/pricetrail/pkg/httpx"
	appsvcs "github.com/ghuser/pricetrail/services/search/application/services"
)

// SupermarketsResponse lists supermarket name suggestions for autocomplete.
type SupermarketsResponse struct {
	Supermarkets []string `json:"supermarkets"`
}

// GetSupermarketsHandler handles GET /search/supermarkets requests.
type GetSupermarketsHandler struct {
	svc *appsvcs.Services
}

// NewGetSupermarketsHandler returns a GetSupermarketsHandler backed by the
// given services.
func NewGetSupermarketsHandler(svc *appsvcs.Services) *GetSupermarketsHandler {
	return &GetSupermarketsHandler{svc: svc}
}

// Execute returns up to ten distinct supermarket names from the authenticated
// user's receipts, optionally narrowed by the q prefix parameter.
func (h *GetSupermarketsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	names, err := h.svc.Search.Supermarkets(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, SupermarketsResponse{Supermarkets: names})
}
