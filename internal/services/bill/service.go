// Package bill pays utility and other billers from the wallet. Each biller
// brings its own charge schedule and its own set of account fields.
package bill

import (
	"context"

	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/repositories"
	"orusweb/internal/services/flow"
	"orusweb/internal/services/wallet"
	"orusweb/internal/store"
	"orusweb/internal/validation"

	"go.uber.org/zap"
)

type Service struct {
	api     API
	sid     string
	repo    repositories.Store
	wallet  *wallet.Service
	n       notify.Notifier
	machine *flow.Machine
}

func NewService(api API, sid string, repo repositories.Store, n notify.Notifier, deps wallet.Deps) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Service{
		api:     api,
		sid:     sid,
		repo:    repo,
		wallet:  wallet.NewService(api, sid, deps),
		n:       n,
		machine: flow.New(Feature, n),
	}
}

func (s *Service) services(ctx context.Context) ([]models.BillService, error) {
	key := repositories.Key(s.sid, "user", "bill-services")
	return store.Cached(ctx, s.repo, key, servicesTTL, s.api.BillServices)
}

func (s *Service) Load(ctx context.Context) (*View, error) {
	view := &View{}
	err := s.machine.Load(ctx, func(ctx context.Context) error {
		svcs, err := s.services(ctx)
		if err != nil {
			return err
		}
		st, err := s.wallet.Refresh(ctx)
		view.Services, view.Wallet = svcs, st
		return err
	})
	view.Flow = s.machine.Snapshot()
	return view, err
}

func (s *Service) resolve(ctx context.Context, f Form) (*models.BillService, *wallet.Quote, error) {
	svcs, err := s.services(ctx)
	if err != nil {
		return nil, nil, err
	}
	var biller *models.BillService
	for i := range svcs {
		if svcs[i].ID == f.ServiceID {
			biller = &svcs[i]
			break
		}
	}
	if biller == nil {
		return nil, nil, validation.Field("service_id", ErrServiceNotFound)
	}
	wc, err := s.wallet.Currency(ctx, f.Currency)
	if err != nil {
		return nil, nil, validation.Field("currency", err)
	}
	return biller, s.wallet.QuoteWith(wallet.FeatureBill, f.Amount, wc, biller.Currency), nil
}

// Preview prices the amount with the biller's charges.
func (s *Service) Preview(ctx context.Context, f Form) (*wallet.Quote, error) {
	_, q, err := s.resolve(ctx, f)
	if err != nil {
		return nil, err
	}
	if !q.Calc.Valid {
		return q, nil
	}
	if _, err := s.wallet.Remaining(ctx, q); err != nil && client.IsAuthError(err) {
		return nil, err
	}
	return q, nil
}

func (s *Service) Submit(ctx context.Context, f Form) (*Result, error) {
	s.machine.EditAll(f.Values())

	validate := func(map[string]string) error {
		if err := validation.Struct(f); err != nil {
			return err
		}
		biller, q, err := s.resolve(ctx, f)
		if err != nil {
			return err
		}
		if errs := validation.ManualFields(biller.Fields, f.Fields, nil); errs != nil {
			return errs.Prefix(fieldPrefix)
		}
		return validation.Field("amount", s.wallet.Authorize(ctx, q))
	}

	receipt, err := flow.Submit(ctx, s.machine, validate, func(ctx context.Context, _ map[string]string) (*client.Receipt, error) {
		cur, err := s.wallet.Currency(ctx, f.Currency)
		if err != nil {
			return nil, err
		}
		return s.api.PayBill(ctx, client.BillRequest{
			ServiceID: f.ServiceID,
			Amount:    f.Amount,
			Currency:  cur.Code,
			Fields:    f.Fields,
		})
	})
	if err != nil {
		return &Result{Flow: s.machine.Snapshot()}, err
	}
	if receipt == nil {
		receipt = &client.Receipt{}
	}
	s.wallet.Settled(ctx, s.n, receipt.Message, "bill paid")
	return &Result{Receipt: receipt, Flow: s.machine.Snapshot()}, nil
}
