package models

import "github.com/shopspring/decimal"

// Wallet is the user's balance plus the currencies it can be displayed in.
// Balance is in the platform base unit; a currency's Rate is the base value
// of one unit of it.
type Wallet struct {
	Balance    decimal.Decimal  `json:"balance"`
	Currency   string           `json:"currency"`
	Currencies []WalletCurrency `json:"currencies"`
}

// WalletCurrency is a display currency and its rate against the platform base unit.
type WalletCurrency struct {
	ID     uint            `json:"id"`
	Code   string          `json:"code"`
	Symbol string          `json:"symbol"`
	Rate   decimal.Decimal `json:"rate"`
}

// Selected returns the currently selected wallet currency.
func (w *Wallet) Selected() (WalletCurrency, bool) {
	for _, c := range w.Currencies {
		if c.Code == w.Currency {
			return c, true
		}
	}
	return WalletCurrency{}, false
}

// AsCurrency lets a wallet currency take part in preview calculations.
func (c WalletCurrency) AsCurrency() Currency {
	return Currency{ID: c.ID, Code: c.Code, Symbol: c.Symbol, Rate: c.Rate}
}
