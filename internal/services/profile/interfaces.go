package profile

import (
	"context"

	"orusweb/internal/client"
	"orusweb/internal/models"
)

type API interface {
	Profile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, upd client.ProfileUpdate) (*models.Profile, error)
	ChangePassword(ctx context.Context, pc client.PasswordChange) error
	KYCForm(ctx context.Context) (*models.KYCForm, error)
	SubmitKYC(ctx context.Context, values map[string]string, files []models.KYCFile) error
}
