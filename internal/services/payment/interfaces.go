package payment

import (
	"context"

	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/services/wallet"
)

// API is the part of the user client make payment needs.
type API interface {
	wallet.API
	FindMerchant(ctx context.Context, uid string) (*models.Merchant, error)
	ConfirmPayment(ctx context.Context, pr client.PaymentRequest) (*client.Receipt, error)
}

// Service pays a merchant from the wallet.
type Service interface {
	Load(ctx context.Context) (*View, error)
	// Scan reads the codes the browser decoded from camera frames.
	Scan(ctx context.Context, frames []string) (*Scanned, error)
	Merchant(ctx context.Context, uid string) (*models.Merchant, error)
	Preview(ctx context.Context, f Form) (*wallet.Quote, error)
	Submit(ctx context.Context, f Form) (*Result, error)
}
