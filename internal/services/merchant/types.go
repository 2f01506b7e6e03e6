package merchant

import (
	"context"

	"orusweb/internal/models"
)

// Order statuses a seller works through.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

var statuses = map[string]bool{
	StatusPending: true, StatusProcessing: true, StatusShipped: true, StatusDelivered: true, StatusCancelled: true,
}

// transitions lists where an order may go from each status.
var transitions = map[string][]string{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

type API interface {
	Orders(ctx context.Context, status string, page int) (*models.Page[models.Order], error)
	UpdateOrderStatus(ctx context.Context, id uint, status string) error
	Products(ctx context.Context, page int) (*models.Page[models.Product], error)
}

// StatusChange moves one order. From is the status the seller saw.
type StatusChange struct {
	ID   uint   `json:"id" validate:"required"`
	From string `json:"from" validate:"required"`
	To   string `json:"status" validate:"required,oneof=processing shipped delivered cancelled"`
}
