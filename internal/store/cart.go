package store

import (
	"context"
	"errors"
	"time"

	"orusweb/internal/models"
	"orusweb/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrNotInCart = errors.New("product is not in the cart")

type CartState struct {
	Items []models.CartItem `json:"items"`
}

func (c CartState) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c CartState) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

type Cart struct {
	*Store[CartState]
}

func CartKey(sid string) string {
	return repositories.Key(sid, "cart")
}

// OpenCart loads the cart of a browser session and keeps it persisted.
func OpenCart(ctx context.Context, repo repositories.Store, sid string, logger *zap.Logger) (*Cart, error) {
	s, err := Persisted(ctx, repo, CartKey(sid), CartState{}, logger)
	if err != nil {
		return nil, err
	}
	return &Cart{s}, nil
}

// NewCarts keeps the cart of every active browser session.
func NewCarts(repo repositories.Store, idle time.Duration, logger *zap.Logger) *Hub[*Cart] {
	return NewHub(idle, func(ctx context.Context, sid string) (*Cart, error) {
		return OpenCart(ctx, repo, sid, logger)
	})
}

// Add puts a product in the cart or raises its quantity.
func (c *Cart) Add(p models.Product, qty int) (CartState, error) {
	if qty <= 0 {
		qty = 1
	}
	return c.Update(func(cur CartState) (CartState, error) {
		items := make([]models.CartItem, 0, len(cur.Items)+1)
		found := false
		for _, it := range cur.Items {
			if it.ProductID == p.ID {
				it.Quantity += qty
				it.Price = p.UnitPrice()
				found = true
			}
			items = append(items, it)
		}
		if !found {
			items = append(items, models.CartItem{
				ProductID: p.ID,
				Name:      p.Name,
				Image:     p.Image,
				Price:     p.UnitPrice(),
				Quantity:  qty,
			})
		}
		return CartState{Items: items}, nil
	})
}

// SetQuantity changes a line; zero removes it.
func (c *Cart) SetQuantity(productID uint, qty int) (CartState, error) {
	return c.Update(func(cur CartState) (CartState, error) {
		items := make([]models.CartItem, 0, len(cur.Items))
		found := false
		for _, it := range cur.Items {
			if it.ProductID == productID {
				found = true
				if qty <= 0 {
					continue
				}
				it.Quantity = qty
			}
			items = append(items, it)
		}
		if !found {
			return cur, ErrNotInCart
		}
		return CartState{Items: items}, nil
	})
}

func (c *Cart) Remove(productID uint) (CartState, error) {
	return c.SetQuantity(productID, 0)
}

func (c *Cart) Clear() (CartState, error) {
	return c.Set(CartState{})
}
