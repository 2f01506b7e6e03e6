package giftcard

import (
	"context"

	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/services/wallet"
)

type API interface {
	wallet.API
	GiftCards(ctx context.Context) ([]models.GiftCard, error)
	MyGiftCards(ctx context.Context) ([]models.OwnedGiftCard, error)
	BuyGiftCard(ctx context.Context, gp client.GiftCardPurchase) (*client.Receipt, error)
	RedeemGiftCard(ctx context.Context, code string) (*client.Receipt, error)
}
