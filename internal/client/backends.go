package client

import (
	"orusweb/internal/config"
	"orusweb/internal/notify"
	"orusweb/internal/session"

	"go.uber.org/zap"
)

// Backends holds the three preconfigured transports.
type Backends struct {
	frontend *Transport
	user     *Transport
	seller   *Transport
}

func NewBackends(cfg config.Config, logger *zap.Logger) *Backends {
	return &Backends{
		frontend: NewTransport(NameFrontend, Options{BaseURL: cfg.FrontendAPIURL, Timeout: cfg.HTTPTimeout, Logger: logger}),
		user:     NewTransport(NameUser, Options{BaseURL: cfg.UserAPIURL, Timeout: cfg.HTTPTimeout, Logger: logger}),
		seller:   NewTransport(NameSeller, Options{BaseURL: cfg.SellerAPIURL, Timeout: cfg.HTTPTimeout, Logger: logger}),
	}
}

// NewBackendsFrom assembles Backends from existing transports.
func NewBackendsFrom(frontend, user, seller *Transport) *Backends {
	return &Backends{frontend: frontend, user: user, seller: seller}
}

// Frontend returns the public storefront client. It never sends a token.
func (b *Backends) Frontend() *FrontendClient {
	return &FrontendClient{c: b.frontend.bind(nil, nil, nil)}
}

// User returns the user API client bound to a user session.
func (b *Backends) User(sess *session.Session, n notify.Notifier, nav notify.Navigator) *UserClient {
	return &UserClient{Account{c: b.user.bind(sess, n, nav)}}
}

// Seller returns the seller API client bound to a seller session.
func (b *Backends) Seller(sess *session.Session, n notify.Notifier, nav notify.Navigator) *SellerClient {
	return &SellerClient{Account{c: b.seller.bind(sess, n, nav)}}
}

// FrontendClient calls the public storefront API.
type FrontendClient struct {
	c *Client
}

// Account holds the endpoints user and seller APIs share.
type Account struct {
	c *Client
}

// UserClient calls the user API.
type UserClient struct {
	Account
}

// SellerClient calls the seller API.
type SellerClient struct {
	Account
}
