// Package auth logs users and sellers in and out. Tokens land in the
// session of the role the service is bound to; the other role's session is
// never touched.
package auth

import (
	"context"
	"errors"

	"orusweb/internal/client"
	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/services/flow"
	"orusweb/internal/session"
	"orusweb/internal/validation"

	"go.uber.org/zap"
)

type service struct {
	api    API
	sess   *session.Session
	n      notify.Notifier
	nav    notify.Navigator
	logger *zap.Logger
}

func NewService(api API, sess *session.Session, n notify.Notifier, nav notify.Navigator, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		api:    api,
		sess:   sess,
		n:      n,
		nav:    nav,
		logger: logger.With(zap.String("role", string(sess.Role()))),
	}
}

func (s *service) route(page string) string {
	return "/" + string(s.sess.Role()) + "/" + page
}

// DashboardRoute is where a completed login lands.
func DashboardRoute(role session.Role) string {
	return "/" + string(role) + "/dashboard"
}

func (s *service) Login(ctx context.Context, cred client.Credentials) (*Result, error) {
	m := flow.New("login", s.n)
	m.EditAll(map[string]string{"username": cred.Username})

	res, err := flow.Submit(ctx, m, func(map[string]string) error {
		return validation.Struct(cred)
	}, func(ctx context.Context, _ map[string]string) (*models.AuthResult, error) {
		return s.api.Login(ctx, cred)
	})
	if err != nil {
		return &Result{Flow: m.Snapshot()}, err
	}
	if err := s.sess.SetRemember(ctx, cred.Remember); err != nil {
		s.logger.Warn("failed to store remember-me", zap.Error(err))
	}
	return s.signedIn(ctx, res, m, "logged in")
}

func (s *service) Register(ctx context.Context, reg client.Registration) (*Result, error) {
	m := flow.New("register", s.n)
	m.EditAll(map[string]string{
		"firstname": reg.FirstName,
		"lastname":  reg.LastName,
		"username":  reg.Username,
		"email":     reg.Email,
		"mobile":    reg.Phone,
		"country":   reg.Country,
	})

	res, err := flow.Submit(ctx, m, func(map[string]string) error {
		if err := validation.Struct(reg); err != nil {
			return err
		}
		v := validation.New()
		v.Password("password", reg.Password)
		v.Phone("mobile", reg.Phone)
		return v.Err()
	}, func(ctx context.Context, _ map[string]string) (*models.AuthResult, error) {
		return s.api.Register(ctx, reg)
	})
	if err != nil {
		return &Result{Flow: m.Snapshot()}, err
	}
	// accounts that must verify their email first get no token
	if res.Token == "" {
		route := s.sess.Role().LoginRoute()
		s.n.Toast(notify.LevelSuccess, "account created, please log in")
		s.nav.Navigate(route)
		return &Result{Route: route, Flow: m.Snapshot()}, nil
	}
	return s.signedIn(ctx, res, m, "account created")
}

// signedIn replaces whatever this role had stored with the new login.
func (s *service) signedIn(ctx context.Context, res *models.AuthResult, m *flow.Machine, message string) (*Result, error) {
	if res == nil || res.Token == "" {
		s.logger.Error("login response without a token")
		return &Result{Flow: m.Snapshot()}, apperr.ErrMalformedResponse
	}
	if err := s.sess.Clear(ctx); err != nil {
		return nil, err
	}
	if err := s.sess.SetToken(ctx, res.Token, res.TokenType); err != nil {
		return nil, err
	}

	if res.RequiresTwoFactor {
		if err := s.sess.SetPendingTwoFactor(ctx, true); err != nil {
			return nil, err
		}
		route := s.route("auth/2fa")
		s.n.Toast(notify.LevelInfo, "enter the code from your authenticator app")
		s.nav.Navigate(route)
		return &Result{RequiresTwoFactor: true, Route: route, Flow: m.Snapshot()}, nil
	}

	if res.User != nil {
		if err := s.sess.SetProfile(ctx, res.User); err != nil {
			return nil, err
		}
	}
	route := DashboardRoute(s.sess.Role())
	s.n.Toast(notify.LevelSuccess, message)
	s.nav.Navigate(route)
	s.logger.Info("signed in")
	return &Result{Profile: res.User, Route: route, Flow: m.Snapshot()}, nil
}

// VerifyTwoFactor finishes a login that asked for a second factor.
func (s *service) VerifyTwoFactor(ctx context.Context, code string) (*Result, error) {
	if !s.sess.PendingTwoFactor(ctx) {
		return nil, ErrNoPendingLogin
	}

	m := flow.New("two-factor", s.n)
	res, err := flow.Submit(ctx, m, func(map[string]string) error {
		return validation.Struct(codeForm{Code: code})
	}, func(ctx context.Context, _ map[string]string) (*models.AuthResult, error) {
		return s.api.VerifyTwoFactor(ctx, code)
	})
	if err != nil {
		return &Result{Flow: m.Snapshot()}, err
	}

	if res != nil && res.Token != "" {
		if err := s.sess.SetToken(ctx, res.Token, res.TokenType); err != nil {
			return nil, err
		}
	}
	if err := s.sess.SetPendingTwoFactor(ctx, false); err != nil {
		return nil, err
	}
	var profile *models.Profile
	if res != nil && res.User != nil {
		profile = res.User
		if err := s.sess.SetProfile(ctx, profile); err != nil {
			return nil, err
		}
	}

	route := DashboardRoute(s.sess.Role())
	s.n.Toast(notify.LevelSuccess, "logged in")
	s.nav.Navigate(route)
	return &Result{Profile: profile, Route: route, Flow: m.Snapshot()}, nil
}

func (s *service) ForgotPassword(ctx context.Context, email string) error {
	if err := validation.Struct(emailForm{Email: email}); err != nil {
		return err
	}
	if err := s.api.ForgotPassword(ctx, email); err != nil {
		s.n.Toast(notify.LevelError, apperr.FirstMessage(err))
		return err
	}
	s.n.Toast(notify.LevelSuccess, "we sent a password reset link to your email")
	return nil
}

// Logout always ends the local session, even when the backend call fails.
func (s *service) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)
	if err != nil && !client.IsAuthError(err) {
		s.logger.Warn("backend logout failed", zap.Error(err))
	}
	if errors.Is(err, apperr.ErrSessionExpired) {
		// the client already cleared the session and redirected
		return nil
	}
	if err := s.sess.Clear(ctx); err != nil {
		return err
	}
	s.n.Toast(notify.LevelSuccess, "logged out")
	s.nav.Navigate(s.sess.Role().LoginRoute())
	return nil
}
