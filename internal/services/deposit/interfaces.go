package deposit

import (
	"context"
	"encoding/json"

	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/services/wallet"
)

// API is the part of the user client add money needs.
type API interface {
	wallet.API
	DepositGateways(ctx context.Context) ([]models.Gateway, error)
	ConfirmDeposit(ctx context.Context, dr client.DepositRequest) (json.RawMessage, error)
}
