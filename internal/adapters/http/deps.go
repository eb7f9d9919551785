package http

import (
	"github.com/nats-io/nats.go"
	"github.com/slashexp/experiences/internal/adapters/postgres"
	"github.com/slashexp/experiences/internal/adapters/valkey"
	"github.com/slashexp/experiences/internal/core/ports"
	"github.com/slashexp/experiences/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Catalog      *usecases.CatalogService
	Discovery    *usecases.DiscoveryService
	Locations    *usecases.LocationService
	Cart         *usecases.CartService
	Wishlist     *usecases.WishlistService
	Personalizer *usecases.PersonalizerService
	Admin        *usecases.AdminService
	Redirects    *usecases.RedirectService
	Categories   ports.CategoryRepository
	Orders       ports.OrderRepository
	NATS         *nats.Conn
	DB           *postgres.DB
	Cache        *valkey.Cache

	// AdminToken guards the back-office routes. Empty disables them.
	AdminToken string
}
