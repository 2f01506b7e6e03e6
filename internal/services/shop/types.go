package shop

import (
	"context"
	"time"

	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/repositories"
	"orusweb/internal/store"

	"go.uber.org/zap"
)

const (
	productTTL   = time.Minute
	catalogueTTL = 10 * time.Minute
)

// API is the public storefront backend.
type API interface {
	Home(ctx context.Context) (*models.HomeData, error)
	Products(ctx context.Context, q client.ProductQuery) (*models.Page[models.Product], error)
	Product(ctx context.Context, slug string) (*models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Settings(ctx context.Context) (*models.Settings, error)
}

// Deps are shared by every request. Home is process-wide since storefront
// data is the same for every visitor.
type Deps struct {
	Home      *store.Home
	Carts     *store.Hub[*store.Cart]
	Wishlists *store.Hub[*store.Wishlist]
	Repo      repositories.Store
	Logger    *zap.Logger
}

type HomeView struct {
	Data          *models.HomeData `json:"data"`
	CartCount     int              `json:"cart_count"`
	WishlistCount int              `json:"wishlist_count"`
}

type ProductView struct {
	Product *models.Product `json:"product"`
	InCart  int             `json:"in_cart"`
	Wished  bool            `json:"wished"`
}

type CartView struct {
	Items []models.CartItem `json:"items"`
	Count int               `json:"count"`
	Total string            `json:"total"`
}

func cartView(st store.CartState) CartView {
	items := st.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return CartView{Items: items, Count: st.Count(), Total: st.Total().StringFixed(2)}
}
