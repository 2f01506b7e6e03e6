package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"orusweb/internal/models"
)

// WithdrawRequest confirms a withdrawal.
type WithdrawRequest struct {
	MethodID   uint              `json:"method_id"`
	CurrencyID uint              `json:"currency_id"`
	Amount     string            `json:"amount"`
	Fields     map[string]string `json:"fields,omitempty"`
	Files      []models.KYCFile  `json:"-"`
}

// WithdrawReceipt is the backend's acknowledgement.
type WithdrawReceipt struct {
	TrxID   string `json:"trx"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (a *Account) WithdrawMethods(ctx context.Context) ([]models.Gateway, error) {
	var out []models.Gateway
	if err := a.c.call(ctx, true, http.MethodGet, "/withdraw/methods", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// ConfirmWithdraw submits JSON, or multipart when the method asked for files.
func (a *Account) ConfirmWithdraw(ctx context.Context, wr WithdrawRequest) (*WithdrawReceipt, error) {
	var (
		payload json.RawMessage
		err     error
	)
	if len(wr.Files) == 0 {
		payload, err = a.c.confirm(ctx, "/withdraw/confirm", wr)
	} else {
		payload, err = a.confirmMultipart(ctx, "/withdraw/confirm", withdrawForm(wr), wr.Files)
	}
	if err != nil {
		return nil, err
	}
	var out WithdrawReceipt
	if err := decode(payload, &out, "/withdraw/confirm"); err != nil {
		return nil, err
	}
	return &out, nil
}

func withdrawForm(wr WithdrawRequest) map[string]string {
	form := map[string]string{
		"method_id":   uintString(wr.MethodID),
		"currency_id": uintString(wr.CurrencyID),
		"amount":      wr.Amount,
	}
	for k, v := range wr.Fields {
		form["fields["+k+"]"] = v
	}
	return form
}

func (a *Account) confirmMultipart(ctx context.Context, endpoint string, form map[string]string, files []models.KYCFile) (json.RawMessage, error) {
	req, err := a.c.request(ctx, true)
	if err != nil {
		return nil, err
	}
	idempotent(req).SetFormData(form)
	for _, f := range files {
		req.SetFileReader(f.Field, f.FileName, bytes.NewReader(f.Content))
	}
	return a.c.send(req, true, http.MethodPost, endpoint)
}
