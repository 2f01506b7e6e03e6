// Package middleware provides the fiber middleware of the web client: the
// browser session cookie and the per-role sign-in gate.
package middleware

import (
	"errors"

	apperr "orusweb/internal/errors"
	"orusweb/internal/notify"
	"orusweb/internal/repositories"
	"orusweb/internal/session"
	"orusweb/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthMiddleware lets a request through only when the browser is signed in
// as the role. It checks for:
// - a stored token for the role
// - a token whose expiry has not passed
// - no 2FA challenge left unanswered
type AuthMiddleware struct {
	repo   repositories.Store
	role   session.Role
	logger *zap.Logger
}

func NewAuthMiddleware(repo repositories.Store, role session.Role, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{repo: repo, role: role, logger: logger}
}

// TwoFactorRoute is where a pending login is finished.
func TwoFactorRoute(role session.Role) string {
	return "/" + string(role) + "/auth/2fa"
}

// Handler stores the role's session in the request locals.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	sid := utils.SID(c)
	if sid == "" {
		return utils.Fail(c, apperr.ErrInvalidSession)
	}
	sess := session.New(m.repo, sid, m.role)
	fx := utils.Effects(c)

	if _, err := sess.Token(c.UserContext()); err != nil {
		var domainErr *apperr.DomainError
		if !errors.As(err, &domainErr) {
			m.logger.Error("failed to read session token", zap.String("role", string(m.role)), zap.Error(err))
			return utils.InternalError(c, "failed to read session")
		}
		if errors.Is(err, apperr.ErrSessionExpired) {
			fx.Toast(notify.LevelError, domainErr.Message)
		}
		fx.Navigate(m.role.LoginRoute())
		return utils.Fail(c, err)
	}

	if sess.PendingTwoFactor(c.UserContext()) {
		fx.Navigate(TwoFactorRoute(m.role))
		return utils.Fail(c, apperr.ErrTwoFactorPending)
	}

	c.Locals(utils.LocalSession, sess)
	return c.Next()
}

// Session returns the session stored by Handler.
func Session(c *fiber.Ctx) (*session.Session, bool) {
	sess, ok := c.Locals(utils.LocalSession).(*session.Session)
	return sess, ok
}
