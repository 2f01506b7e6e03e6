package store

import (
	"context"

	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
	"orusweb/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WalletState is the balance shown in the header and the currency the
// amounts are displayed in.
type WalletState struct {
	Loaded     bool                    `json:"loaded"`
	Balance    decimal.Decimal         `json:"balance"`
	Selected   string                  `json:"selected"`
	Currencies []models.WalletCurrency `json:"currencies"`
}

// Currency returns the selected display currency.
func (w WalletState) Currency() (models.WalletCurrency, bool) {
	for _, c := range w.Currencies {
		if c.Code == w.Selected {
			return c, true
		}
	}
	return models.WalletCurrency{}, false
}

type Wallet struct {
	*Store[WalletState]
}

func NewWallet(opts ...Option[WalletState]) *Wallet {
	return &Wallet{New(WalletState{}, opts...)}
}

// OpenWallet keeps the selected display currency of a session across
// restarts.
func OpenWallet(ctx context.Context, repo repositories.Store, key string, logger *zap.Logger) (*Wallet, error) {
	s, err := Persisted(ctx, repo, key, WalletState{}, logger)
	if err != nil {
		return nil, err
	}
	return &Wallet{s}, nil
}

// Apply takes a freshly fetched wallet. The user's selection survives when
// the currency still exists.
func (w *Wallet) Apply(fetched *models.Wallet) (WalletState, error) {
	return w.Update(func(cur WalletState) (WalletState, error) {
		next := WalletState{
			Loaded:     true,
			Balance:    fetched.Balance,
			Selected:   fetched.Currency,
			Currencies: append([]models.WalletCurrency(nil), fetched.Currencies...),
		}
		if cur.Selected != "" {
			for _, c := range next.Currencies {
				if c.Code == cur.Selected {
					next.Selected = cur.Selected
				}
			}
		}
		return next, nil
	})
}

func (w *Wallet) Select(code string) (WalletState, error) {
	return w.Update(func(cur WalletState) (WalletState, error) {
		for _, c := range cur.Currencies {
			if c.Code == code {
				cur.Selected = code
				return cur, nil
			}
		}
		return cur, apperr.ErrCurrencyNotFound
	})
}
