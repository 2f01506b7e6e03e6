// Package withdraw moves money out of the wallet through a withdraw method.
// It runs as three steps, method -> details -> confirm, and keeps the draft
// between requests. Methods without manual fields skip the details step.
package withdraw

import (
	"context"

	"orusweb/internal/client"
	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/repositories"
	"orusweb/internal/services/flow"
	"orusweb/internal/services/wallet"
	"orusweb/internal/session"
	"orusweb/internal/store"
	"orusweb/internal/validation"

	"go.uber.org/zap"
)

type Service struct {
	api     API
	role    session.Role
	sid     string
	repo    repositories.Store
	wallet  *wallet.Service
	deps    Deps
	n       notify.Notifier
	nav     notify.Navigator
	machine *flow.Machine
}

// NewService binds withdraw to one request of the given role.
func NewService(api API, role session.Role, sid string, repo repositories.Store, n notify.Notifier, nav notify.Navigator, deps Deps) *Service {
	if deps.Wallet.Logger == nil {
		deps.Wallet.Logger = zap.NewNop()
	}
	if deps.Drafts == nil {
		deps.Drafts = flow.NewDrafts(repo)
	}
	return &Service{
		api:     api,
		role:    role,
		sid:     sid,
		repo:    repo,
		wallet:  wallet.NewRoleService(api, sid, role, deps.Wallet),
		deps:    deps,
		n:       n,
		nav:     nav,
		machine: flow.New(Feature, n, steps...),
	}
}

func (s *Service) logger() *zap.Logger {
	return s.deps.Wallet.Logger
}

// HistoryRoute is where a confirmed withdrawal lands.
func (s *Service) HistoryRoute() string {
	return "/" + string(s.role) + "/withdraw/history"
}

func (s *Service) methods(ctx context.Context) ([]models.Gateway, error) {
	key := repositories.Key(s.sid, string(s.role), "gateways", Feature)
	return store.Cached(ctx, s.repo, key, methodsTTL, s.api.WithdrawMethods)
}

func (s *Service) restore(ctx context.Context) error {
	return s.deps.Drafts.Load(ctx, s.sid, string(s.role), s.machine)
}

func (s *Service) save(ctx context.Context) {
	if err := s.deps.Drafts.Save(ctx, s.sid, string(s.role), s.machine); err != nil {
		s.logger().Warn("failed to save withdraw draft", zap.Error(err))
	}
}

// Load fetches the methods and the wallet and resumes a saved draft.
func (s *Service) Load(ctx context.Context) (*View, error) {
	view := &View{}
	err := s.machine.Load(ctx, func(ctx context.Context) error {
		if err := s.restore(ctx); err != nil {
			return err
		}
		ms, err := s.methods(ctx)
		if err != nil {
			return err
		}
		st, err := s.wallet.Refresh(ctx)
		if err != nil {
			return err
		}
		view.Methods, view.Wallet = ms, st
		return nil
	})
	view.Step = s.stepView(ctx)
	return view, err
}

func (s *Service) resolve(ctx context.Context, f Form) (*models.Gateway, *wallet.Quote, error) {
	ms, err := s.methods(ctx)
	if err != nil {
		return nil, nil, err
	}
	m, ok := models.FindGateway(ms, f.MethodID)
	if !ok {
		return nil, nil, validation.Field("method_id", ErrMethodNotFound)
	}
	cur, ok := m.Currency(f.CurrencyID)
	if !ok {
		return nil, nil, validation.Field("currency_id", apperr.ErrCurrencyNotFound)
	}
	wc, err := s.wallet.Currency(ctx, f.WalletCurrency)
	if err != nil {
		return nil, nil, validation.Field("wallet_currency", err)
	}
	return m, s.wallet.QuoteWith(wallet.FeatureWithdraw, f.Amount, wc, cur), nil
}

// Preview prices the typed amount and looks up the remaining limit with
// the keystroke debounce.
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

func (s *Service) stepView(ctx context.Context) *StepView {
	_, name := s.machine.Step()
	view := &StepView{Name: name, Flow: s.machine.Snapshot()}
	f := formFrom(s.machine.Fields())
	if f.MethodID == 0 {
		return view
	}
	if m, q, err := s.resolve(ctx, f); err == nil {
		view.Method, view.Quote = m, q
	}
	return view
}

func (s *Service) validateMethod(ctx context.Context) flow.Validate {
	return func(fields map[string]string) error {
		f := formFrom(fields)
		if err := validation.Struct(f); err != nil {
			return err
		}
		_, q, err := s.resolve(ctx, f)
		if err != nil {
			return err
		}
		return validation.Field("amount", s.wallet.Authorize(ctx, q))
	}
}

// validateDetails checks the typed manual fields. Uploads cannot be kept in
// a draft, so file fields are checked when the withdrawal is confirmed.
func (s *Service) validateDetails(ctx context.Context) flow.Validate {
	return func(fields map[string]string) error {
		f := formFrom(fields)
		m, _, err := s.resolve(ctx, f)
		if err != nil {
			return err
		}
		typed := make([]models.ManualField, 0, len(m.Fields))
		for _, mf := range m.Fields {
			if mf.Type != validation.FieldFile {
				typed = append(typed, mf)
			}
		}
		if errs := validation.ManualFields(typed, f.Fields, nil); errs != nil {
			return errs.Prefix(fieldPrefix)
		}
		return nil
	}
}

func (s *Service) hasDetails(ctx context.Context) bool {
	m, _, err := s.resolve(ctx, formFrom(s.machine.Fields()))
	return err == nil && len(m.Fields) > 0
}

// Next saves values into the draft, validates the current step and moves
// on. The draft is kept whether or not the step passed.
func (s *Service) Next(ctx context.Context, values map[string]string) (*StepView, error) {
	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	s.machine.EditAll(values)

	_, name := s.machine.Step()
	var validate flow.Validate
	switch name {
	case StepMethod:
		validate = s.validateMethod(ctx)
	case StepDetails:
		validate = s.validateDetails(ctx)
	}

	err := s.machine.Next(validate)
	if err == nil && name == StepMethod && !s.hasDetails(ctx) {
		err = s.machine.Next(nil)
	}
	s.save(ctx)
	return s.stepView(ctx), err
}

// Back returns to the previous step, skipping details when the method has
// none.
func (s *Service) Back(ctx context.Context) (*StepView, error) {
	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	err := s.machine.Back()
	if _, name := s.machine.Step(); err == nil && name == StepDetails && !s.hasDetails(ctx) {
		err = s.machine.Back()
	}
	s.save(ctx)
	return s.stepView(ctx), err
}

// Cancel drops the draft.
func (s *Service) Cancel(ctx context.Context) error {
	return s.deps.Drafts.Discard(ctx, s.sid, string(s.role), Feature)
}

// Submit confirms the draft. files are the uploads for the method's file
// fields.
func (s *Service) Submit(ctx context.Context, files []models.KYCFile) (*Result, error) {
	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	if _, name := s.machine.Step(); name != StepConfirm {
		return &Result{Flow: s.machine.Snapshot()}, apperr.ErrInvalidStep
	}

	validate := func(fields map[string]string) error {
		f := formFrom(fields)
		if err := validation.Struct(f); err != nil {
			return err
		}
		m, q, err := s.resolve(ctx, f)
		if err != nil {
			return err
		}
		if errs := validation.ManualFields(m.Fields, f.Fields, files); errs != nil {
			return errs.Prefix(fieldPrefix)
		}
		return validation.Field("amount", s.wallet.Authorize(ctx, q))
	}

	receipt, err := flow.Submit(ctx, s.machine, validate, func(ctx context.Context, fields map[string]string) (*client.WithdrawReceipt, error) {
		f := formFrom(fields)
		return s.api.ConfirmWithdraw(ctx, client.WithdrawRequest{
			MethodID:   f.MethodID,
			CurrencyID: f.CurrencyID,
			Amount:     f.Amount,
			Fields:     f.Fields,
			Files:      files,
		})
	})
	if err != nil {
		s.save(ctx)
		return &Result{Flow: s.machine.Snapshot()}, err
	}

	if err := s.Cancel(ctx); err != nil {
		s.logger().Warn("failed to discard withdraw draft", zap.Error(err))
	}
	if receipt == nil {
		receipt = &client.WithdrawReceipt{}
	}
	s.wallet.Settled(ctx, s.n, receipt.Message, "withdraw request submitted")
	route := s.HistoryRoute()
	s.nav.Navigate(route)
	return &Result{Receipt: receipt, Route: route, Flow: s.machine.Snapshot()}, nil
}
