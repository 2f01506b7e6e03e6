package checkout

import (
	"context"
	"encoding/json"

	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/services/wallet"
)

type API interface {
	wallet.API
	CheckoutGateways(ctx context.Context) ([]models.Gateway, error)
	PlaceOrder(ctx context.Context, order client.OrderRequest) (json.RawMessage, error)
	Orders(ctx context.Context, page int) (*models.Page[models.Order], error)
}
