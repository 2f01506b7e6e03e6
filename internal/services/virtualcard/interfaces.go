package virtualcard

import (
	"context"

	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/services/wallet"
)

type API interface {
	wallet.API
	VirtualCards(ctx context.Context) ([]models.VirtualCard, error)
	CreateVirtualCard(ctx context.Context, vr client.VirtualCardRequest) (*client.Receipt, error)
	TopUpVirtualCard(ctx context.Context, id uint, amount, currency string) (*client.Receipt, error)
	SetVirtualCardStatus(ctx context.Context, id uint, status string) error
}
