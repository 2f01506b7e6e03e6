package transfer

import (
	"context"

	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/services/wallet"
)

// API is the part of the user client send money needs.
type API interface {
	wallet.API
	SearchRecipients(ctx context.Context, q string) ([]models.Recipient, error)
	ConfirmTransfer(ctx context.Context, tr client.TransferRequest) (*client.Receipt, error)
}

// Service sends money from the wallet to another user.
type Service interface {
	Load(ctx context.Context) (*View, error)
	// Search finds recipients while the user types. Only the newest query
	// of the session is sent; older callers get limit.ErrSuperseded.
	Search(ctx context.Context, q string) ([]models.Recipient, error)
	Preview(ctx context.Context, f Form) (*wallet.Quote, error)
	Submit(ctx context.Context, f Form) (*Result, error)
}
