// Package shop is the public storefront: landing data, the catalogue, and
// the cart and wishlist kept for each browser session.
package shop

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"orusweb/internal/client"
	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/repositories"
	"orusweb/internal/store"

	"go.uber.org/zap"
)

type Service struct {
	api  API
	sid  string
	n    notify.Notifier
	deps Deps
}

func NewService(api API, sid string, n notify.Notifier, deps Deps) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Service{api: api, sid: sid, n: n, deps: deps}
}

func (s *Service) cart(ctx context.Context) (*store.Cart, error) {
	return s.deps.Carts.Get(ctx, s.sid)
}

func (s *Service) wishlist(ctx context.Context) (*store.Wishlist, error) {
	return s.deps.Wishlists.Get(ctx, s.sid)
}

func (s *Service) Home(ctx context.Context) (*HomeView, error) {
	data, err := s.deps.Home.Load(ctx, s.api.Home)
	if err != nil {
		return nil, err
	}
	view := &HomeView{Data: data}
	if c, err := s.cart(ctx); err == nil {
		view.CartCount = c.Get().Count()
	}
	if w, err := s.wishlist(ctx); err == nil {
		view.WishlistCount = len(w.Get().Items)
	}
	return view, nil
}

func (s *Service) Products(ctx context.Context, q client.ProductQuery) (*models.Page[models.Product], error) {
	q.Search = strings.TrimSpace(q.Search)
	if q.Page < 1 {
		q.Page = 1
	}
	return s.api.Products(ctx, q)
}

func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	key := repositories.Key("storefront", "categories")
	return store.Cached(ctx, s.deps.Repo, key, catalogueTTL, s.api.Categories)
}

func (s *Service) Settings(ctx context.Context) (*models.Settings, error) {
	key := repositories.Key("storefront", "settings")
	return store.Cached(ctx, s.deps.Repo, key, catalogueTTL, s.api.Settings)
}

// find reads a product through a short shared cache.
func (s *Service) find(ctx context.Context, slug string) (*models.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrProductNotFound
	}
	key := repositories.Key("storefront", "product", slug)
	p, err := store.Cached(ctx, s.deps.Repo, key, productTTL, func(ctx context.Context) (*models.Product, error) {
		return s.api.Product(ctx, slug)
	})
	var apiErr *apperr.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	return p, err
}

func (s *Service) Product(ctx context.Context, slug string) (*ProductView, error) {
	p, err := s.find(ctx, slug)
	if err != nil {
		return nil, err
	}
	view := &ProductView{Product: p}
	if c, err := s.cart(ctx); err == nil {
		for _, it := range c.Get().Items {
			if it.ProductID == p.ID {
				view.InCart = it.Quantity
			}
		}
	}
	if w, err := s.wishlist(ctx); err == nil {
		view.Wished = w.Get().Has(p.ID)
	}
	return view, nil
}

func (s *Service) Cart(ctx context.Context) (CartView, error) {
	c, err := s.cart(ctx)
	if err != nil {
		return CartView{}, err
	}
	return cartView(c.Get()), nil
}

// AddToCart adds qty of the product. Stock is checked against what the
// cart already holds; the backend checks again when the order is placed.
func (s *Service) AddToCart(ctx context.Context, slug string, qty int) (CartView, error) {
	if qty <= 0 {
		qty = 1
	}
	p, err := s.find(ctx, slug)
	if err != nil {
		s.n.Toast(notify.LevelError, apperr.FirstMessage(err))
		return CartView{}, err
	}
	c, err := s.cart(ctx)
	if err != nil {
		return CartView{}, err
	}

	held := 0
	for _, it := range c.Get().Items {
		if it.ProductID == p.ID {
			held = it.Quantity
		}
	}
	if held+qty > p.Stock {
		s.n.Toast(notify.LevelError, ErrOutOfStock.Message)
		return cartView(c.Get()), ErrOutOfStock
	}

	st, err := c.Add(*p, qty)
	if err != nil {
		return CartView{}, err
	}
	s.n.Toast(notify.LevelSuccess, p.Name+" added to cart")
	return cartView(st), nil
}

// SetQuantity changes a cart line; zero or less removes it.
func (s *Service) SetQuantity(ctx context.Context, productID uint, qty int) (CartView, error) {
	c, err := s.cart(ctx)
	if err != nil {
		return CartView{}, err
	}
	st, err := c.SetQuantity(productID, qty)
	if errors.Is(err, store.ErrNotInCart) {
		return cartView(c.Get()), ErrNotInCart
	}
	if err != nil {
		return CartView{}, err
	}
	return cartView(st), nil
}

func (s *Service) RemoveFromCart(ctx context.Context, productID uint) (CartView, error) {
	view, err := s.SetQuantity(ctx, productID, 0)
	if err == nil {
		s.n.Toast(notify.LevelSuccess, "removed from cart")
	}
	return view, err
}

func (s *Service) Wishlist(ctx context.Context) (store.WishlistState, error) {
	w, err := s.wishlist(ctx)
	if err != nil {
		return store.WishlistState{}, err
	}
	return w.Get(), nil
}

// ToggleWishlist adds the product or takes it off the list.
func (s *Service) ToggleWishlist(ctx context.Context, slug string) (store.WishlistState, error) {
	p, err := s.find(ctx, slug)
	if err != nil {
		s.n.Toast(notify.LevelError, apperr.FirstMessage(err))
		return store.WishlistState{}, err
	}
	w, err := s.wishlist(ctx)
	if err != nil {
		return store.WishlistState{}, err
	}
	st, err := w.Toggle(*p)
	if err != nil {
		return store.WishlistState{}, err
	}
	if st.Has(p.ID) {
		s.n.Toast(notify.LevelSuccess, "added to wishlist")
	} else {
		s.n.Toast(notify.LevelInfo, "removed from wishlist")
	}
	return st, nil
}
