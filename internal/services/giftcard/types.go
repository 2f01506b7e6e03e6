package giftcard

import (
	"strconv"

	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/services/flow"
	"orusweb/internal/services/wallet"
	"orusweb/internal/store"
)

const (
	Feature       = string(wallet.FeatureGiftCard)
	RedeemFeature = "gift-card-redeem"
)

// BuyForm buys Quantity cards of one denomination.
type BuyForm struct {
	GiftCardID uint   `json:"gift_card_id" validate:"required"`
	Amount     string `json:"amount" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1,max=10"`
	Currency   string `json:"currency"`
	Recipient  string `json:"recipient_email" validate:"omitempty,email"`
}

func (f BuyForm) Fields() map[string]string {
	return map[string]string{
		"gift_card_id":    strconv.FormatUint(uint64(f.GiftCardID), 10),
		"amount":          f.Amount,
		"quantity":        strconv.Itoa(f.Quantity),
		"currency":        f.Currency,
		"recipient_email": f.Recipient,
	}
}

type RedeemForm struct {
	Code string `json:"code" validate:"required"`
}

type View struct {
	Cards  []models.GiftCard      `json:"cards"`
	Mine   []models.OwnedGiftCard `json:"mine"`
	Wallet store.WalletState      `json:"wallet"`
	Flow   flow.Snapshot          `json:"flow"`
}

type Result struct {
	Receipt *client.Receipt `json:"receipt,omitempty"`
	Flow    flow.Snapshot   `json:"flow"`
}
