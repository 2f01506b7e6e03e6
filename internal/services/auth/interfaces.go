package auth

import (
	"context"

	"orusweb/internal/client"
	"orusweb/internal/models"
)

// API is the account part of the user and seller backends.
type API interface {
	Login(ctx context.Context, cred client.Credentials) (*models.AuthResult, error)
	Register(ctx context.Context, reg client.Registration) (*models.AuthResult, error)
	VerifyTwoFactor(ctx context.Context, code string) (*models.AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	Logout(ctx context.Context) error
	TwoFactorSetup(ctx context.Context) (*models.TwoFactorSetup, error)
	EnableTwoFactor(ctx context.Context, code string) error
	DisableTwoFactor(ctx context.Context, code string) error
}

type Service interface {
	Login(ctx context.Context, cred client.Credentials) (*Result, error)
	Register(ctx context.Context, reg client.Registration) (*Result, error)
	VerifyTwoFactor(ctx context.Context, code string) (*Result, error)
	ForgotPassword(ctx context.Context, email string) error
	Logout(ctx context.Context) error
	TwoFactorSetup(ctx context.Context) (*Enrollment, error)
	EnableTwoFactor(ctx context.Context, code string) error
	DisableTwoFactor(ctx context.Context, code string) error
}
