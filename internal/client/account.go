package client

import (
	"bytes"
	"context"
	"net/http"
	"strconv"

	"orusweb/internal/models"
	"orusweb/internal/session"
)

// Credentials is the login form.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

// Registration is the sign-up form.
type Registration struct {
	FirstName       string `json:"firstname" validate:"required"`
	LastName        string `json:"lastname" validate:"required"`
	Username        string `json:"username" validate:"required,min=3"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"mobile" validate:"required"`
	Country         string `json:"country" validate:"required"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// Session exposes the session the client is bound to.
func (a *Account) Session() *session.Session {
	return a.c.session
}

func (a *Account) Login(ctx context.Context, cred Credentials) (*models.AuthResult, error) {
	var out models.AuthResult
	if err := a.c.call(ctx, false, http.MethodPost, "/login", cred, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Account) Register(ctx context.Context, reg Registration) (*models.AuthResult, error) {
	var out models.AuthResult
	if err := a.c.call(ctx, false, http.MethodPost, "/register", reg, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Account) VerifyTwoFactor(ctx context.Context, code string) (*models.AuthResult, error) {
	var out models.AuthResult
	body := map[string]string{"code": code}
	if err := a.c.call(ctx, true, http.MethodPost, "/2fa/verify", body, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Account) ForgotPassword(ctx context.Context, email string) error {
	return a.c.call(ctx, false, http.MethodPost, "/password/email", map[string]string{"email": email}, nil, nil)
}

func (a *Account) Logout(ctx context.Context) error {
	return a.c.call(ctx, true, http.MethodPost, "/logout", nil, nil, nil)
}

func (a *Account) Profile(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := a.c.call(ctx, true, http.MethodGet, "/profile", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProfileUpdate is the editable part of the profile.
type ProfileUpdate struct {
	FirstName string `json:"firstname" validate:"required"`
	LastName  string `json:"lastname" validate:"required"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
}

func (a *Account) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*models.Profile, error) {
	var out models.Profile
	if err := a.c.call(ctx, true, http.MethodPost, "/profile", upd, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// PasswordChange is the change-password form.
type PasswordChange struct {
	Current         string `json:"current_password" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

func (a *Account) ChangePassword(ctx context.Context, pc PasswordChange) error {
	return a.c.call(ctx, true, http.MethodPost, "/change-password", pc, nil, nil)
}

func (a *Account) KYCForm(ctx context.Context) (*models.KYCForm, error) {
	var out models.KYCForm
	if err := a.c.call(ctx, true, http.MethodGet, "/kyc-form", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitKYC uploads the KYC form as multipart form data.
func (a *Account) SubmitKYC(ctx context.Context, values map[string]string, files []models.KYCFile) error {
	req, err := a.c.request(ctx, true)
	if err != nil {
		return err
	}
	req.SetFormData(values)
	for _, f := range files {
		req.SetFileReader(f.Field, f.FileName, bytes.NewReader(f.Content))
	}
	_, err = a.c.send(req, true, http.MethodPost, "/kyc-submit")
	return err
}

func (a *Account) Wallet(ctx context.Context) (*models.Wallet, error) {
	var out models.Wallet
	if err := a.c.call(ctx, true, http.MethodGet, "/wallet", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Account) Transactions(ctx context.Context, txType string, page int) (*models.Page[models.Transaction], error) {
	var out models.Page[models.Transaction]
	query := map[string]string{"page": strconv.Itoa(page)}
	if txType != "" {
		query["type"] = txType
	}
	if err := a.c.call(ctx, true, http.MethodGet, "/transactions", nil, &out, query); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemainingLimit asks the backend how much allowance is left for a
// transaction of this shape.
func (a *Account) RemainingLimit(ctx context.Context, q models.LimitQuery) (*models.RemainingLimit, error) {
	var out models.RemainingLimit
	query := map[string]string{
		"type":      q.Type,
		"attribute": q.Attribute,
		"amount":    q.Amount,
		"currency":  q.Currency,
		"charge_id": strconv.FormatUint(uint64(q.ChargeID), 10),
	}
	if err := a.c.call(ctx, true, http.MethodGet, "/remaining-limit", nil, &out, query); err != nil {
		return nil, err
	}
	return &out, nil
}

// Charges returns the fee schedule for a wallet-funded feature
// (send-money, make-payment, bill-pay, gift-card, virtual-card, withdraw).
func (a *Account) Charges(ctx context.Context, feature, currency string) (*models.Currency, error) {
	var out models.Currency
	query := map[string]string{"currency": currency}
	if err := a.c.call(ctx, true, http.MethodGet, "/"+feature+"/charges", nil, &out, query); err != nil {
		return nil, err
	}
	return &out, nil
}

// TwoFactorSetup returns the authenticator secret for an account that has
// not enabled 2FA yet.
func (a *Account) TwoFactorSetup(ctx context.Context) (*models.TwoFactorSetup, error) {
	var out models.TwoFactorSetup
	if err := a.c.call(ctx, true, http.MethodGet, "/2fa/setup", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Account) EnableTwoFactor(ctx context.Context, code string) error {
	return a.c.call(ctx, true, http.MethodPost, "/2fa/enable", map[string]string{"code": code}, nil, nil)
}

func (a *Account) DisableTwoFactor(ctx context.Context, code string) error {
	return a.c.call(ctx, true, http.MethodPost, "/2fa/disable", map[string]string{"code": code}, nil, nil)
}
