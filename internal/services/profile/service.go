// Package profile serves the signed-in account page: profile details,
// password change and KYC verification. It works for users and sellers.
package profile

import (
	"context"

	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/services/flow"
	"orusweb/internal/session"
	"orusweb/internal/validation"

	"go.uber.org/zap"
)

type Service struct {
	api    API
	sess   *session.Session
	n      notify.Notifier
	nav    notify.Navigator
	logger *zap.Logger
}

type Result struct {
	Profile *models.Profile `json:"profile,omitempty"`
	Flow    flow.Snapshot   `json:"flow"`
}

// KYCView is the verification page. Form is nil once a submission is
// pending or approved.
type KYCView struct {
	Status string          `json:"status"`
	Form   *models.KYCForm `json:"form,omitempty"`
}

func NewService(api API, sess *session.Session, n notify.Notifier, nav notify.Navigator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, sess: sess, n: n, nav: nav, logger: logger}
}

func (s *Service) remember(ctx context.Context, p *models.Profile) {
	if p == nil {
		return
	}
	if err := s.sess.SetProfile(ctx, p); err != nil {
		s.logger.Warn("failed to cache profile", zap.Error(err))
	}
}

// Load fetches the profile and refreshes the cached copy.
func (s *Service) Load(ctx context.Context) (*models.Profile, error) {
	var p *models.Profile
	m := flow.New("profile", s.n)
	err := m.Load(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.api.Profile(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.remember(ctx, p)
	return p, nil
}

// Cached returns the stored profile without a backend call, loading it when
// nothing is stored yet.
func (s *Service) Cached(ctx context.Context) (*models.Profile, error) {
	if p, err := s.sess.Profile(ctx); err == nil && p != nil {
		return p, nil
	}
	return s.Load(ctx)
}

func (s *Service) Update(ctx context.Context, upd client.ProfileUpdate) (*Result, error) {
	m := flow.New("profile", s.n)
	m.EditAll(map[string]string{
		"firstname": upd.FirstName,
		"lastname":  upd.LastName,
		"address":   upd.Address,
		"city":      upd.City,
		"zip":       upd.Zip,
	})
	p, err := flow.Submit(ctx, m, func(map[string]string) error {
		return validation.Struct(upd)
	}, func(ctx context.Context, _ map[string]string) (*models.Profile, error) {
		return s.api.UpdateProfile(ctx, upd)
	})
	if err != nil {
		return &Result{Flow: m.Snapshot()}, err
	}
	s.remember(ctx, p)
	s.n.Toast(notify.LevelSuccess, "profile updated")
	return &Result{Profile: p, Flow: m.Snapshot()}, nil
}

// ChangePassword never echoes the passwords back in the flow snapshot.
func (s *Service) ChangePassword(ctx context.Context, pc client.PasswordChange) (*Result, error) {
	m := flow.New("change-password", s.n)
	_, err := flow.Submit(ctx, m, func(map[string]string) error {
		if err := validation.Struct(pc); err != nil {
			return err
		}
		if pc.Password == pc.Current {
			return validation.Field("password", ErrSamePassword)
		}
		return nil
	}, func(ctx context.Context, _ map[string]string) (struct{}, error) {
		return struct{}{}, s.api.ChangePassword(ctx, pc)
	})
	if err != nil {
		return &Result{Flow: m.Snapshot()}, err
	}
	s.n.Toast(notify.LevelSuccess, "password changed")
	return &Result{Flow: m.Snapshot()}, nil
}

func locked(status string) bool {
	return status == models.KYCPending || status == models.KYCVerified
}

// KYC returns the verification form unless a submission is already in.
func (s *Service) KYC(ctx context.Context) (*KYCView, error) {
	p, err := s.Cached(ctx)
	if err != nil {
		return nil, err
	}
	view := &KYCView{Status: p.KYCStatus}
	if view.Status == "" {
		view.Status = models.KYCUnverified
	}
	if locked(p.KYCStatus) {
		return view, nil
	}
	if view.Form, err = s.api.KYCForm(ctx); err != nil {
		return nil, err
	}
	return view, nil
}

// SubmitKYC checks values and files against the form the platform
// configured and uploads them.
func (s *Service) SubmitKYC(ctx context.Context, values map[string]string, files []models.KYCFile) (*Result, error) {
	view, err := s.KYC(ctx)
	if err != nil {
		return nil, err
	}
	if view.Form == nil {
		return nil, ErrKYCLocked
	}

	m := flow.New("kyc", s.n)
	m.EditAll(known(view.Form.Fields, values))
	_, err = flow.Submit(ctx, m, func(fields map[string]string) error {
		if errs := validation.ManualFields(view.Form.Fields, fields, files); errs != nil {
			return errs
		}
		return nil
	}, func(ctx context.Context, fields map[string]string) (struct{}, error) {
		return struct{}{}, s.api.SubmitKYC(ctx, fields, files)
	})
	if err != nil {
		return &Result{Flow: m.Snapshot()}, err
	}

	p, _ := s.sess.Profile(ctx)
	if p != nil {
		p.KYCStatus = models.KYCPending
		s.remember(ctx, p)
	}
	s.n.Toast(notify.LevelSuccess, "verification submitted")
	s.nav.Navigate("/" + string(s.sess.Role()) + "/profile")
	return &Result{Profile: p, Flow: m.Snapshot()}, nil
}

// known keeps only the typed fields the form declares.
func known(fields []models.ManualField, values map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		if f.Type == validation.FieldFile {
			continue
		}
		if v, ok := values[f.Name]; ok {
			out[f.Name] = v
		}
	}
	return out
}
