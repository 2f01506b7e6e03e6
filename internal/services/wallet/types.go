package wallet

import (
	"time"

	"orusweb/internal/models"
	"orusweb/internal/services/limit"
	"orusweb/internal/services/preview"
	"orusweb/internal/store"

	"go.uber.org/zap"
)

type Feature string

// Features priced from the wallet. The value is the backend path segment.
const (
	FeatureTransfer    Feature = "send-money"
	FeaturePayment     Feature = "make-payment"
	FeatureBill        Feature = "bill-pay"
	FeatureGiftCard    Feature = "gift-card"
	FeatureVirtualCard Feature = "virtual-card"
	FeatureWithdraw    Feature = "withdraw"
)

// Deps are shared by every request.
type Deps struct {
	Wallets *store.Hub[*store.Wallet]
	Limits  *limit.Registry[models.LimitQuery, *models.RemainingLimit]
	Logger  *zap.Logger
}

// Quote prices an amount for a feature.
type Quote struct {
	Feature  Feature                   `json:"feature"`
	Currency models.WalletCurrency     `json:"currency"`
	Charges  models.Currency           `json:"charges"`
	Preview  preview.Display           `json:"preview"`
	Calc     preview.Quote             `json:"-"`
	Limit    *preview.RemainingDisplay `json:"remaining,omitempty"`
}

const (
	defaultIdle = 30 * time.Minute
)

// LimitQuery is the remaining-limit lookup for q.
func (q *Quote) LimitQuery() models.LimitQuery {
	return models.LimitQuery{
		Type:      string(q.Feature),
		Attribute: "wallet",
		Amount:    q.Calc.Amount.String(),
		Currency:  q.Currency.Code,
		ChargeID:  q.Charges.ID,
	}
}
