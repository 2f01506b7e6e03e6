package withdraw

import (
	"context"

	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/services/wallet"
)

// API is served by both the user and the seller client.
type API interface {
	wallet.API
	WithdrawMethods(ctx context.Context) ([]models.Gateway, error)
	ConfirmWithdraw(ctx context.Context, wr client.WithdrawRequest) (*client.WithdrawReceipt, error)
}
