package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types used by limit lookups and history filters.
const (
	TransactionTypeDeposit     = "deposit"
	TransactionTypeWithdraw    = "withdraw"
	TransactionTypeTransfer    = "transfer"
	TransactionTypePayment     = "payment"
	TransactionTypeBill        = "bill_pay"
	TransactionTypeGiftCard    = "gift_card"
	TransactionTypeVirtualCard = "virtual_card"
	TransactionTypeCheckout    = "checkout"
)

// Transaction is one row of the user's history.
type Transaction struct {
	ID          uint                   `json:"id"`
	TrxID       string                 `json:"trx"`
	Type        string                 `json:"type"`
	Amount      decimal.Decimal        `json:"amount"`
	Charge      decimal.Decimal        `json:"charge"`
	Currency    string                 `json:"currency"`
	Status      string                 `json:"status"`
	Description string                 `json:"description"`
	Meta        map[string]interface{} `json:"meta,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// Page is the backend's paginated list envelope.
type Page[T any] struct {
	Data        []T   `json:"data"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}
