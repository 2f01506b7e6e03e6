package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillService is a biller the user can pay from the wallet.
type BillService struct {
	ID       uint          `json:"id"`
	Name     string        `json:"name"`
	Category string        `json:"category"`
	Image    string        `json:"image"`
	Fields   []ManualField `json:"fields,omitempty"`
	Currency Currency      `json:"currency"`
}

// GiftCard is a purchasable gift card product.
type GiftCard struct {
	ID       uint              `json:"id"`
	Name     string            `json:"name"`
	Image    string            `json:"image"`
	Values   []decimal.Decimal `json:"values"`
	Currency Currency          `json:"currency"`
}

// OwnedGiftCard is a gift card the user has bought.
type OwnedGiftCard struct {
	ID        uint            `json:"id"`
	Code      string          `json:"code"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Redeemed  bool            `json:"redeemed"`
	CreatedAt time.Time       `json:"created_at"`
}

// Virtual card statuses.
const (
	CardActive = "active"
	CardFrozen = "frozen"
)

// VirtualCard is a wallet-funded card issued by the platform.
type VirtualCard struct {
	ID         uint            `json:"id"`
	NameOnCard string          `json:"name_on_card"`
	LastFour   string          `json:"last_four"`
	Brand      string          `json:"brand"`
	Expiry     string          `json:"expiry"`
	Balance    decimal.Decimal `json:"balance"`
	Currency   string          `json:"currency"`
	Status     string          `json:"status"`
}

// PaymentLink is a shareable request-for-payment URL.
type PaymentLink struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}
