// Package handlers adapts the feature services to fiber. Services are built
// per request around the browser session and the request's effect recorder;
// everything shared between requests lives in Deps.
package handlers

import (
	"context"
	"time"

	"orusweb/internal/client"
	"orusweb/internal/config"
	"orusweb/internal/middleware"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/repositories"
	"orusweb/internal/services/card"
	"orusweb/internal/services/checkout"
	"orusweb/internal/services/deposit"
	"orusweb/internal/services/flow"
	"orusweb/internal/services/gateway"
	"orusweb/internal/services/limit"
	"orusweb/internal/services/payment"
	"orusweb/internal/services/qr"
	"orusweb/internal/services/shop"
	"orusweb/internal/services/transfer"
	"orusweb/internal/services/wallet"
	"orusweb/internal/services/withdraw"
	"orusweb/internal/session"
	"orusweb/internal/store"
	"orusweb/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	qrScheme  = "orus"
	storeIdle = 30 * time.Minute
	homeTTL   = 5 * time.Minute
)

// Deps are built once at startup.
type Deps struct {
	Config   config.Config
	Logger   *zap.Logger
	Repo     repositories.Store
	Backends *client.Backends

	Wallet   wallet.Deps
	Deposit  deposit.Deps
	Withdraw withdraw.Deps
	Transfer transfer.Deps
	Payment  payment.Deps
	Checkout checkout.Deps
	Shop     shop.Deps
}

func NewDeps(cfg config.Config, repo repositories.Store, backends *client.Backends, logger *zap.Logger) *Deps {
	if logger == nil {
		logger = zap.NewNop()
	}
	limits := limit.NewRegistry[models.LimitQuery, *models.RemainingLimit](cfg.LimitDebounce, storeIdle)
	search := limit.NewRegistry[string, []models.Recipient](cfg.SearchDebounce, storeIdle)
	walletDeps := wallet.NewDeps(repo, limits, logger)
	decoder := gateway.NewDecoder(cfg.CryptoIdentifiers)
	drafts := flow.NewDrafts(repo)
	carts := store.NewCarts(repo, storeIdle, logger)

	return &Deps{
		Config:   cfg,
		Logger:   logger,
		Repo:     repo,
		Backends: backends,
		Wallet:   walletDeps,
		Deposit:  deposit.Deps{Wallet: walletDeps, Decoder: decoder},
		Withdraw: withdraw.Deps{Wallet: walletDeps, Drafts: drafts},
		Transfer: transfer.Deps{Wallet: walletDeps, Search: search},
		Payment:  payment.Deps{Wallet: walletDeps, Parser: qr.NewParser(qrScheme)},
		Checkout: checkout.Deps{
			Wallet:    walletDeps,
			Carts:     carts,
			Decoder:   decoder,
			Tokenizer: card.NewStripeTokenizer(cfg.StripeKey, logger),
			Drafts:    drafts,
		},
		Shop: shop.Deps{
			Home:      store.NewHome(homeTTL),
			Carts:     carts,
			Wishlists: store.NewWishlists(repo, storeIdle, logger),
			Repo:      repo,
			Logger:    logger,
		},
	}
}

// Close stops every per-session store.
func (d *Deps) Close() {
	d.Wallet.Wallets.Close()
	d.Shop.Carts.Close()
	d.Shop.Wishlists.Close()
	d.Shop.Home.Close()
}

// call is what one request hands to the services it builds.
type call struct {
	ctx context.Context
	sid string
	fx  *notify.Effects
	n   notify.Notifier
}

func (d *Deps) call(c *fiber.Ctx) call {
	fx := utils.Effects(c)
	return call{
		ctx: c.UserContext(),
		sid: utils.SID(c),
		fx:  fx,
		n:   notify.Logged{Next: fx, Logger: d.Logger},
	}
}

// session returns the session the auth gate stored, or a fresh one for
// routes the gate does not cover.
func (d *Deps) session(c *fiber.Ctx, role session.Role) *session.Session {
	if sess, ok := middleware.Session(c); ok && sess.Role() == role {
		return sess
	}
	return session.New(d.Repo, utils.SID(c), role)
}

// account returns the client of the role bound to this request.
func (d *Deps) account(c *fiber.Ctx, role session.Role) (*client.Account, *session.Session, call) {
	r := d.call(c)
	sess := d.session(c, role)
	if role == session.RoleSeller {
		return &d.Backends.Seller(sess, r.n, r.fx).Account, sess, r
	}
	return &d.Backends.User(sess, r.n, r.fx).Account, sess, r
}

func (d *Deps) user(c *fiber.Ctx) (*client.UserClient, *session.Session, call) {
	r := d.call(c)
	sess := d.session(c, session.RoleUser)
	return d.Backends.User(sess, r.n, r.fx), sess, r
}

func (d *Deps) seller(c *fiber.Ctx) (*client.SellerClient, *session.Session, call) {
	r := d.call(c)
	sess := d.session(c, session.RoleSeller)
	return d.Backends.Seller(sess, r.n, r.fx), sess, r
}

// parse reads the request body into v.
func parse(c *fiber.Ctx, v interface{}) bool {
	return c.BodyParser(v) == nil
}

func badBody(c *fiber.Ctx) error {
	return utils.BadRequest(c, "invalid request body")
}
