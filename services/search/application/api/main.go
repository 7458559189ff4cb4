package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/pricetrail/pkg/app"
	"github.com/ghuser/pricetrail/services/search/application/handlers"
	appsvcs "github.com/ghuser/pricetrail/services/search/application/services"
)

// SearchRoutes registers search endpoints on the provided chi router.
func SearchRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/search", func(r chi.Router) {
			r.Get("/", handlers.NewGetSearchHandler(svcs).Execute)
			r.Get("/history/{itemName}", handlers.NewGetPriceHistoryHandler(svcs).Execute)
			r.Get("/supermarkets", handlers.NewGetSupermarketsHandler(svcs).Execute)
		})
	})
}
