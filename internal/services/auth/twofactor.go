package auth

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"

	"orusweb/internal/client"
	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/validation"

	"github.com/pquerna/otp"
	"go.uber.org/zap"
)

// TwoFactorSetup reads the otpauth key the backend issued and renders it as
// a QR code for the authenticator app.
func (s *service) TwoFactorSetup(ctx context.Context) (*Enrollment, error) {
	setup, err := s.api.TwoFactorSetup(ctx)
	if err != nil {
		return nil, err
	}
	return enrollment(setup)
}

func enrollment(setup *models.TwoFactorSetup) (*Enrollment, error) {
	if setup == nil || setup.URL == "" {
		return nil, ErrBadEnrollment
	}
	key, err := otp.NewKeyFromURL(setup.URL)
	if err != nil {
		return nil, apperr.Wrap(ErrBadEnrollment, err)
	}
	if key.Type() != "totp" {
		return nil, ErrBadEnrollment
	}

	img, err := key.Image(qrSize, qrSize)
	if err != nil {
		return nil, apperr.Wrap(ErrBadEnrollment, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	secret := key.Secret()
	if secret == "" {
		secret = setup.Secret
	}
	return &Enrollment{
		Secret:  secret,
		Issuer:  key.Issuer(),
		Account: key.AccountName(),
		URL:     key.URL(),
		QRCode:  "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

func (s *service) EnableTwoFactor(ctx context.Context, code string) error {
	return s.toggleTwoFactor(ctx, code, true)
}

func (s *service) DisableTwoFactor(ctx context.Context, code string) error {
	return s.toggleTwoFactor(ctx, code, false)
}

func (s *service) toggleTwoFactor(ctx context.Context, code string, enable bool) error {
	if err := validation.Struct(codeForm{Code: code}); err != nil {
		return err
	}

	call, message := s.api.DisableTwoFactor, "two-factor authentication disabled"
	if enable {
		call, message = s.api.EnableTwoFactor, "two-factor authentication enabled"
	}
	if err := call(ctx, code); err != nil {
		if !client.IsAuthError(err) {
			s.n.Toast(notify.LevelError, apperr.FirstMessage(err))
		}
		return err
	}

	if p, err := s.sess.Profile(ctx); err == nil && p != nil {
		p.TwoFactor = enable
		if err := s.sess.SetProfile(ctx, p); err != nil {
			s.logger.Warn("failed to update cached profile", zap.Error(err))
		}
	}
	s.n.Toast(notify.LevelSuccess, message)
	return nil
}
