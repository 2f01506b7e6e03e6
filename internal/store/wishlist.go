package store

import (
	"context"
	"time"

	"orusweb/internal/models"
	"orusweb/internal/repositories"

	"go.uber.org/zap"
)

type WishlistState struct {
	Items []models.WishlistItem `json:"items"`
}

func (w WishlistState) Has(productID uint) bool {
	for _, it := range w.Items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}

type Wishlist struct {
	*Store[WishlistState]
}

func OpenWishlist(ctx context.Context, repo repositories.Store, sid string, logger *zap.Logger) (*Wishlist, error) {
	s, err := Persisted(ctx, repo, repositories.Key(sid, "wishlist"), WishlistState{}, logger)
	if err != nil {
		return nil, err
	}
	return &Wishlist{s}, nil
}

func NewWishlists(repo repositories.Store, idle time.Duration, logger *zap.Logger) *Hub[*Wishlist] {
	return NewHub(idle, func(ctx context.Context, sid string) (*Wishlist, error) {
		return OpenWishlist(ctx, repo, sid, logger)
	})
}

// Toggle adds the product or removes it when already listed.
func (w *Wishlist) Toggle(p models.Product) (WishlistState, error) {
	return w.Update(func(cur WishlistState) (WishlistState, error) {
		items := make([]models.WishlistItem, 0, len(cur.Items)+1)
		removed := false
		for _, it := range cur.Items {
			if it.ProductID == p.ID {
				removed = true
				continue
			}
			items = append(items, it)
		}
		if !removed {
			items = append(items, models.WishlistItem{ProductID: p.ID, Name: p.Name, Image: p.Image, Price: p.UnitPrice()})
		}
		return WishlistState{Items: items}, nil
	})
}
