package middleware

import (
	"time"

	"orusweb/internal/notify"
	"orusweb/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CookieName holds the signed browser session.
const CookieName = "orusweb_session"

// SessionMiddleware gives every browser a stable session id. The id lives
// in a signed cookie; everything keyed by it stays server-side.
type SessionMiddleware struct {
	secret []byte
	ttl    time.Duration
	secure bool
	logger *zap.Logger
}

func NewSessionMiddleware(secret string, ttl time.Duration, secure bool, logger *zap.Logger) *SessionMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionMiddleware{secret: []byte(secret), ttl: ttl, secure: secure, logger: logger}
}

// Handler reads the session cookie, issuing a new one when it is missing,
// tampered with or expired, and starts the request's effect recorder.
func (m *SessionMiddleware) Handler(c *fiber.Ctx) error {
	var sid string
	if raw := c.Cookies(CookieName); raw != "" {
		claims, err := utils.ParseSessionToken(raw, m.secret)
		if err != nil {
			m.logger.Debug("discarding session cookie", zap.Error(err))
		} else {
			sid = claims.SID
		}
	}

	if sid == "" {
		sid = uuid.NewString()
		token, err := utils.GenerateSessionToken(sid, m.secret, m.ttl)
		if err != nil {
			m.logger.Error("failed to sign session cookie", zap.Error(err))
			return utils.InternalError(c, "failed to start session")
		}
		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(m.ttl),
			HTTPOnly: true,
			Secure:   m.secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	c.Locals(utils.LocalSID, sid)
	c.Locals(utils.LocalEffects, notify.NewEffects())
	return c.Next()
}
