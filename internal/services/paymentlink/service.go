// Package paymentlink manages shareable request-for-payment links.
package paymentlink

import (
	"context"
	"strings"

	"orusweb/internal/client"
	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/services/flow"
	"orusweb/internal/services/preview"
	"orusweb/internal/validation"
)

const Feature = "payment-link"

type API interface {
	PaymentLinks(ctx context.Context) ([]models.PaymentLink, error)
	CreatePaymentLink(ctx context.Context, pr client.PaymentLinkRequest) (*models.PaymentLink, error)
	DeletePaymentLink(ctx context.Context, id uint) error
}

type Form struct {
	Title       string `json:"title" validate:"required,max=100"`
	Amount      string `json:"amount" validate:"required"`
	Currency    string `json:"currency" validate:"required,len=3"`
	Description string `json:"description" validate:"max=500"`
}

func (f Form) Fields() map[string]string {
	return map[string]string{
		"title":       f.Title,
		"amount":      f.Amount,
		"currency":    f.Currency,
		"description": f.Description,
	}
}

type View struct {
	Links []models.PaymentLink `json:"links"`
	Flow  flow.Snapshot        `json:"flow"`
}

type Result struct {
	Link *models.PaymentLink `json:"link,omitempty"`
	Flow flow.Snapshot       `json:"flow"`
}

type Service struct {
	api     API
	n       notify.Notifier
	machine *flow.Machine
}

func NewService(api API, n notify.Notifier) *Service {
	return &Service{api: api, n: n, machine: flow.New(Feature, n)}
}

func (s *Service) Load(ctx context.Context) (*View, error) {
	view := &View{}
	err := s.machine.Load(ctx, func(ctx context.Context) error {
		links, err := s.api.PaymentLinks(ctx)
		view.Links = links
		return err
	})
	view.Flow = s.machine.Snapshot()
	return view, err
}

func (s *Service) Create(ctx context.Context, f Form) (*Result, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Currency = strings.ToUpper(strings.TrimSpace(f.Currency))
	s.machine.EditAll(f.Fields())

	validate := func(map[string]string) error {
		v := validation.New()
		v.Struct(f)
		if _, ok := preview.ParseAmount(f.Amount); !ok {
			v.AddError("amount", apperr.ErrInvalidAmount.Message)
		}
		return v.Err()
	}

	link, err := flow.Submit(ctx, s.machine, validate, func(ctx context.Context, _ map[string]string) (*models.PaymentLink, error) {
		return s.api.CreatePaymentLink(ctx, client.PaymentLinkRequest{
			Title:       f.Title,
			Amount:      f.Amount,
			Currency:    f.Currency,
			Description: strings.TrimSpace(f.Description),
		})
	})
	if err != nil {
		return &Result{Flow: s.machine.Snapshot()}, err
	}
	s.n.Toast(notify.LevelSuccess, "payment link created")
	return &Result{Link: link, Flow: s.machine.Snapshot()}, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.api.DeletePaymentLink(ctx, id); err != nil {
		if !client.IsAuthError(err) {
			s.n.Toast(notify.LevelError, apperr.FirstMessage(err))
		}
		return err
	}
	s.n.Toast(notify.LevelSuccess, "payment link deleted")
	return nil
}
