package wallet

import (
	"context"

	"orusweb/internal/models"
)

// API is the part of the user client the wallet needs.
type API interface {
	Wallet(ctx context.Context) (*models.Wallet, error)
	Charges(ctx context.Context, feature, currency string) (*models.Currency, error)
	RemainingLimit(ctx context.Context, q models.LimitQuery) (*models.RemainingLimit, error)
}
