// Package merchant is the seller back office: incoming orders, their
// fulfilment status and the seller's product list.
package merchant

import (
	"context"
	"errors"
	"strings"

	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/services/flow"
	"orusweb/internal/validation"

	"go.uber.org/zap"
)

type Service struct {
	api    API
	n      notify.Notifier
	logger *zap.Logger
}

func NewService(api API, n notify.Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, n: n, logger: logger}
}

func (s *Service) Orders(ctx context.Context, status string, page int) (*models.Page[models.Order], error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" && !statuses[status] {
		return nil, validation.Errors{"status": "unknown order status"}
	}
	if page < 1 {
		page = 1
	}
	return s.api.Orders(ctx, status, page)
}

func (s *Service) Products(ctx context.Context, page int) (*models.Page[models.Product], error) {
	if page < 1 {
		page = 1
	}
	return s.api.Products(ctx, page)
}

// Allowed reports whether an order may move from one status to another.
func Allowed(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Next lists the statuses an order in status can move to.
func Next(status string) []string {
	return append([]string(nil), transitions[status]...)
}

// UpdateStatus moves an order along its fulfilment path. The backend has
// the final say; this only stops moves no seller screen offers.
func (s *Service) UpdateStatus(ctx context.Context, change StatusChange) (flow.Snapshot, error) {
	m := flow.New("order-status", s.n)
	m.EditAll(map[string]string{"status": change.To})

	_, err := flow.Submit(ctx, m, func(map[string]string) error {
		if err := validation.Struct(change); err != nil {
			return err
		}
		if !Allowed(change.From, change.To) {
			return validation.Field("status", ErrInvalidTransition)
		}
		return nil
	}, func(ctx context.Context, _ map[string]string) (struct{}, error) {
		return struct{}{}, s.api.UpdateOrderStatus(ctx, change.ID, change.To)
	})
	if err != nil {
		if !errors.Is(err, apperr.ErrValidation) {
			s.logger.Warn("order status update failed", zap.Uint("order_id", change.ID), zap.Error(err))
		}
		return m.Snapshot(), err
	}
	s.logger.Info("order status updated",
		zap.Uint("order_id", change.ID),
		zap.String("from", change.From),
		zap.String("to", change.To))
	s.n.Toast(notify.LevelSuccess, "order marked as "+change.To)
	return m.Snapshot(), nil
}
