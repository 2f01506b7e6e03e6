package client

import (
	"context"
	"net/http"
	"strconv"

	"orusweb/internal/models"
)

func (s *SellerClient) Orders(ctx context.Context, status string, page int) (*models.Page[models.Order], error) {
	var out models.Page[models.Order]
	query := map[string]string{"page": strconv.Itoa(page)}
	if status != "" {
		query["status"] = status
	}
	if err := s.c.call(ctx, true, http.MethodGet, "/orders", nil, &out, query); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SellerClient) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	body := map[string]string{"status": status}
	return s.c.call(ctx, true, http.MethodPost, "/orders/"+uintString(id)+"/status", body, nil, nil)
}

func (s *SellerClient) Products(ctx context.Context, page int) (*models.Page[models.Product], error) {
	var out models.Page[models.Product]
	query := map[string]string{"page": strconv.Itoa(page)}
	if err := s.c.call(ctx, true, http.MethodGet, "/products", nil, &out, query); err != nil {
		return nil, err
	}
	return &out, nil
}
