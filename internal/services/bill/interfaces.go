package bill

import (
	"context"

	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/services/wallet"
)

type API interface {
	wallet.API
	BillServices(ctx context.Context) ([]models.BillService, error)
	PayBill(ctx context.Context, br client.BillRequest) (*client.Receipt, error)
}
