// Package transfer is send money: find a recipient, price the amount with
// the send-money charges and confirm from the wallet.
package transfer

import (
	"context"
	"strings"

	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/repositories"
	"orusweb/internal/services/flow"
	"orusweb/internal/services/wallet"
	"orusweb/internal/session"
	"orusweb/internal/validation"

	"go.uber.org/zap"
)

// service implements the transfer Service interface.
type service struct {
	api     API
	sess    *session.Session
	wallet  *wallet.Service
	deps    Deps
	n       notify.Notifier
	machine *flow.Machine
}

// NewService creates a send money service for one request.
func NewService(api API, sess *session.Session, n notify.Notifier, deps Deps) Service {
	if deps.Wallet.Logger == nil {
		deps.Wallet.Logger = zap.NewNop()
	}
	return &service{
		api:     api,
		sess:    sess,
		wallet:  wallet.NewService(api, sess.ID(), deps.Wallet),
		deps:    deps,
		n:       n,
		machine: flow.New(Feature, n),
	}
}

func (s *service) Load(ctx context.Context) (*View, error) {
	view := &View{}
	err := s.machine.Load(ctx, func(ctx context.Context) error {
		st, err := s.wallet.Refresh(ctx)
		view.Wallet = st
		return err
	})
	view.Flow = s.machine.Snapshot()
	return view, err
}

func (s *service) Search(ctx context.Context, q string) ([]models.Recipient, error) {
	q = strings.TrimSpace(q)
	if len(q) < MinQueryLength {
		return nil, nil
	}
	key := repositories.Key(s.sess.ID(), "search", "recipients")
	res, err := s.deps.Search.Get(key).AwaitWith(ctx, q, s.api.SearchRecipients)
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}

func (s *service) Preview(ctx context.Context, f Form) (*wallet.Quote, error) {
	q, err := s.wallet.Quote(ctx, wallet.FeatureTransfer, f.Amount, f.Currency)
	if err != nil {
		return nil, validation.Field("currency", err)
	}
	if !q.Calc.Valid {
		return q, nil
	}
	if _, err := s.wallet.Remaining(ctx, q); err != nil && client.IsAuthError(err) {
		return nil, err
	}
	return q, nil
}

// self reports whether recipient names the logged-in user.
func (s *service) self(ctx context.Context, recipient string) bool {
	p, err := s.sess.Profile(ctx)
	if err != nil || p == nil {
		return false
	}
	r := strings.TrimSpace(recipient)
	return strings.EqualFold(r, p.Username) || strings.EqualFold(r, p.Email) || (p.Phone != "" && r == p.Phone)
}

func (s *service) Submit(ctx context.Context, f Form) (*Result, error) {
	s.machine.EditAll(f.Fields())

	validate := func(map[string]string) error {
		if err := validation.Struct(f); err != nil {
			return err
		}
		if s.self(ctx, f.Recipient) {
			return validation.Field("recipient", ErrSelfTransfer)
		}
		q, err := s.wallet.Quote(ctx, wallet.FeatureTransfer, f.Amount, f.Currency)
		if err != nil {
			return validation.Field("currency", err)
		}
		return validation.Field("amount", s.wallet.Authorize(ctx, q))
	}

	receipt, err := flow.Submit(ctx, s.machine, validate, func(ctx context.Context, _ map[string]string) (*client.Receipt, error) {
		cur, err := s.wallet.Currency(ctx, f.Currency)
		if err != nil {
			return nil, err
		}
		return s.api.ConfirmTransfer(ctx, client.TransferRequest{
			Recipient: strings.TrimSpace(f.Recipient),
			Amount:    f.Amount,
			Currency:  cur.Code,
			Remark:    f.Remark,
		})
	})
	if err != nil {
		return &Result{Flow: s.machine.Snapshot()}, err
	}
	if receipt == nil {
		receipt = &client.Receipt{}
	}
	s.wallet.Settled(ctx, s.n, receipt.Message, "money sent")
	return &Result{Receipt: receipt, Flow: s.machine.Snapshot()}, nil
}
