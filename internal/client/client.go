// Package client is the HTTP layer between the web client and the platform
// REST backend. There are three backends: the public storefront, the user
// API and the seller API. A Transport is built once per backend; a Client
// binds a transport to one browser session and its side-effect sinks.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperr "orusweb/internal/errors"
	"orusweb/internal/metrics"
	"orusweb/internal/notify"
	"orusweb/internal/session"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Transport names, also used as metric labels.
const (
	NameFrontend = "frontend"
	NameUser     = "user"
	NameSeller   = "seller"
)

// Options configures a Transport.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Transport is a preconfigured resty client for one backend.
type Transport struct {
	name   string
	http   *resty.Client
	logger *zap.Logger
}

func NewTransport(name string, opts Options) *Transport {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	cli := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json")

	return &Transport{
		name:   name,
		http:   cli,
		logger: opts.Logger.With(zap.String("client", name)),
	}
}

// Client issues calls on behalf of one browser session.
type Client struct {
	transport *Transport
	session   *session.Session
	notifier  notify.Notifier
	navigator notify.Navigator
}

func (t *Transport) bind(sess *session.Session, n notify.Notifier, nav notify.Navigator) *Client {
	return &Client{transport: t, session: sess, notifier: n, navigator: nav}
}

func (c *Client) logger() *zap.Logger {
	return c.transport.logger
}

// request prepares a call. Authenticated calls read the token first and fail
// with ErrMissingToken without touching the network.
func (c *Client) request(ctx context.Context, auth bool) (*resty.Request, error) {
	req := c.transport.http.R().SetContext(ctx).SetHeader("X-Request-ID", ulid.Make().String())
	if !auth {
		return req, nil
	}
	if c.session == nil {
		return nil, apperr.ErrMissingToken
	}
	token, err := c.session.Token(ctx)
	if err != nil {
		return nil, err
	}
	req.SetHeader("Authorization", c.session.TokenType(ctx)+" "+token)
	return req, nil
}

// idempotent marks a state-changing confirm call.
func idempotent(req *resty.Request) *resty.Request {
	return req.SetHeader("Idempotency-Key", uuid.NewString())
}

// send executes req and returns the payload (the "data" member when the
// backend wraps it). Only authenticated calls end the session on a 401; an
// anonymous 401 such as a wrong password is an ordinary API error.
func (c *Client) send(req *resty.Request, auth bool, method, endpoint string) (json.RawMessage, error) {
	start := time.Now()
	resp, err := req.Execute(method, endpoint)
	if err != nil {
		metrics.ObserveRequest(c.transport.name, endpoint, 0, time.Since(start))
		c.logger().Warn("backend call failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	metrics.ObserveRequest(c.transport.name, endpoint, resp.StatusCode(), time.Since(start))

	if auth && resp.StatusCode() == http.StatusUnauthorized && c.session != nil {
		return nil, c.unauthorized(req.Context())
	}
	if resp.IsError() {
		apiErr := apperr.ParseAPIError(resp.StatusCode(), resp.Body())
		c.logger().Info("backend rejected call",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode()),
			zap.Strings("messages", apiErr.Messages))
		return nil, apiErr
	}
	return unwrap(resp.Body()), nil
}

// unauthorized ends the session of this client's role only.
func (c *Client) unauthorized(ctx context.Context) error {
	metrics.IncSessionExpired(c.transport.name)
	if err := c.session.Clear(ctx); err != nil {
		c.logger().Error("failed to clear session", zap.Error(err))
	}
	if c.notifier != nil {
		c.notifier.Toast(notify.LevelError, apperr.ErrSessionExpired.Message)
	}
	if c.navigator != nil {
		c.navigator.Navigate(c.session.Role().LoginRoute())
	}
	return apperr.ErrSessionExpired
}

// unwrap returns the "data" member of a wrapped payload. A bare paginator
// also has "data", next to "current_page", and is returned whole.
func unwrap(body []byte) json.RawMessage {
	var envelope struct {
		Data        json.RawMessage `json:"data"`
		CurrentPage json.RawMessage `json:"current_page"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.CurrentPage != nil {
		return body
	}
	if len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		return envelope.Data
	}
	return body
}

// call runs a JSON request and decodes the payload into out (when non-nil).
func (c *Client) call(ctx context.Context, auth bool, method, endpoint string, body, out interface{}, query map[string]string) error {
	req, err := c.request(ctx, auth)
	if err != nil {
		return err
	}
	if body != nil {
		req.SetBody(body)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	payload, err := c.send(req, auth, method, endpoint)
	if err != nil {
		return err
	}
	return decode(payload, out, endpoint)
}

// confirm runs an idempotent POST and hands back the raw payload, which the
// caller decodes into a typed outcome.
func (c *Client) confirm(ctx context.Context, endpoint string, body interface{}) (json.RawMessage, error) {
	req, err := c.request(ctx, true)
	if err != nil {
		return nil, err
	}
	return c.send(idempotent(req).SetBody(body), true, http.MethodPost, endpoint)
}

func decode(payload json.RawMessage, out interface{}, endpoint string) error {
	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return apperr.Wrap(apperr.ErrMalformedResponse, fmt.Errorf("%s: %w", endpoint, err))
	}
	return nil
}

// IsAuthError reports whether err means the user has to log in again.
func IsAuthError(err error) bool {
	return errors.Is(err, apperr.ErrMissingToken) || errors.Is(err, apperr.ErrSessionExpired)
}
