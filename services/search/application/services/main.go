package services

import (
	"github.com/ghuser/pricetrail/pkg/app"
	"github.com/ghuser/pricetrail/pkg/cache"
	"github.com/ghuser/pricetrail/services/search/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Search *SearchService
}

// New wires all search application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	store := postgres.NewItemStore(a.Db)
	smCache := cache.NewSupermarketCache(a.Redis, a.Cfg.SupermarketCacheTTL)
	return &Services{
		Search: NewSearchService(store, smCache, a.Cfg.RegexBudget()),
	}
}
