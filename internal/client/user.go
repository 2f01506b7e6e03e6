package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"orusweb/internal/models"
)

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

// DepositRequest confirms an add-money attempt.
type DepositRequest struct {
	GatewayID  uint   `json:"gateway_id"`
	CurrencyID uint   `json:"currency_id"`
	Amount     string `json:"amount"`
	Wallet     string `json:"wallet_currency"`
}

func (u *UserClient) DepositGateways(ctx context.Context) ([]models.Gateway, error) {
	var out []models.Gateway
	if err := u.c.call(ctx, true, http.MethodGet, "/add-money/gateways", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// ConfirmDeposit returns the raw gateway handoff payload.
func (u *UserClient) ConfirmDeposit(ctx context.Context, dr DepositRequest) (json.RawMessage, error) {
	return u.c.confirm(ctx, "/add-money/confirm", dr)
}

// TransferRequest confirms a peer-to-peer transfer.
type TransferRequest struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Remark    string `json:"remark,omitempty"`
}

// Receipt acknowledges a wallet-funded operation.
type Receipt struct {
	TrxID   string `json:"trx"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (u *UserClient) SearchRecipients(ctx context.Context, q string) ([]models.Recipient, error) {
	var out []models.Recipient
	if err := u.c.call(ctx, true, http.MethodGet, "/users/search", nil, &out, map[string]string{"q": q}); err != nil {
		return nil, err
	}
	return out, nil
}

func (u *UserClient) ConfirmTransfer(ctx context.Context, tr TransferRequest) (*Receipt, error) {
	return u.receipt(ctx, "/send-money/confirm", tr)
}

func (u *UserClient) receipt(ctx context.Context, endpoint string, body interface{}) (*Receipt, error) {
	payload, err := u.c.confirm(ctx, endpoint, body)
	if err != nil {
		return nil, err
	}
	var out Receipt
	if err := decode(payload, &out, endpoint); err != nil {
		return nil, err
	}
	return &out, nil
}

// PaymentRequest pays a merchant from the wallet.
type PaymentRequest struct {
	Merchant string `json:"merchant"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Remark   string `json:"remark,omitempty"`
}

func (u *UserClient) FindMerchant(ctx context.Context, uid string) (*models.Merchant, error) {
	var out models.Merchant
	if err := u.c.call(ctx, true, http.MethodGet, "/merchants/"+url.PathEscape(uid), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *UserClient) ConfirmPayment(ctx context.Context, pr PaymentRequest) (*Receipt, error) {
	return u.receipt(ctx, "/make-payment/confirm", pr)
}

// BillRequest pays a biller.
type BillRequest struct {
	ServiceID uint              `json:"service_id"`
	Amount    string            `json:"amount"`
	Currency  string            `json:"currency"`
	Fields    map[string]string `json:"fields"`
}

func (u *UserClient) BillServices(ctx context.Context) ([]models.BillService, error) {
	var out []models.BillService
	if err := u.c.call(ctx, true, http.MethodGet, "/bill-pay/services", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (u *UserClient) PayBill(ctx context.Context, br BillRequest) (*Receipt, error) {
	return u.receipt(ctx, "/bill-pay/confirm", br)
}

// GiftCardPurchase buys a gift card.
type GiftCardPurchase struct {
	GiftCardID uint   `json:"gift_card_id"`
	Amount     string `json:"amount"`
	Quantity   int    `json:"quantity"`
	Currency   string `json:"currency"`
	Recipient  string `json:"recipient_email,omitempty"`
}

func (u *UserClient) GiftCards(ctx context.Context) ([]models.GiftCard, error) {
	var out []models.GiftCard
	if err := u.c.call(ctx, true, http.MethodGet, "/gift-cards", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (u *UserClient) MyGiftCards(ctx context.Context) ([]models.OwnedGiftCard, error) {
	var out []models.OwnedGiftCard
	if err := u.c.call(ctx, true, http.MethodGet, "/gift-cards/mine", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (u *UserClient) BuyGiftCard(ctx context.Context, gp GiftCardPurchase) (*Receipt, error) {
	return u.receipt(ctx, "/gift-cards/buy", gp)
}

func (u *UserClient) RedeemGiftCard(ctx context.Context, code string) (*Receipt, error) {
	return u.receipt(ctx, "/gift-cards/redeem", map[string]string{"code": code})
}

// VirtualCardRequest issues a new virtual card.
type VirtualCardRequest struct {
	NameOnCard string `json:"name_on_card"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
}

func (u *UserClient) VirtualCards(ctx context.Context) ([]models.VirtualCard, error) {
	var out []models.VirtualCard
	if err := u.c.call(ctx, true, http.MethodGet, "/virtual-cards", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (u *UserClient) CreateVirtualCard(ctx context.Context, vr VirtualCardRequest) (*Receipt, error) {
	return u.receipt(ctx, "/virtual-cards", vr)
}

func (u *UserClient) TopUpVirtualCard(ctx context.Context, id uint, amount, currency string) (*Receipt, error) {
	body := map[string]string{"amount": amount, "currency": currency}
	return u.receipt(ctx, "/virtual-cards/"+uintString(id)+"/top-up", body)
}

func (u *UserClient) SetVirtualCardStatus(ctx context.Context, id uint, status string) error {
	body := map[string]string{"status": status}
	return u.c.call(ctx, true, http.MethodPost, "/virtual-cards/"+uintString(id)+"/status", body, nil, nil)
}

// PaymentLinkRequest creates a payment link.
type PaymentLinkRequest struct {
	Title       string `json:"title"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
}

func (u *UserClient) PaymentLinks(ctx context.Context) ([]models.PaymentLink, error) {
	var out []models.PaymentLink
	if err := u.c.call(ctx, true, http.MethodGet, "/payment-links", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (u *UserClient) CreatePaymentLink(ctx context.Context, pr PaymentLinkRequest) (*models.PaymentLink, error) {
	var out models.PaymentLink
	if err := u.c.call(ctx, true, http.MethodPost, "/payment-links", pr, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *UserClient) DeletePaymentLink(ctx context.Context, id uint) error {
	return u.c.call(ctx, true, http.MethodDelete, "/payment-links/"+uintString(id), nil, nil, nil)
}

// OrderRequest places a storefront order.
type OrderRequest struct {
	Items     []models.CartItem `json:"items"`
	Address   models.Address    `json:"address"`
	Method    string            `json:"payment_method"`
	GatewayID uint              `json:"gateway_id,omitempty"`
	Currency  uint              `json:"currency_id,omitempty"`
	CardToken string            `json:"card_token,omitempty"`
}

func (u *UserClient) CheckoutGateways(ctx context.Context) ([]models.Gateway, error) {
	var out []models.Gateway
	if err := u.c.call(ctx, true, http.MethodGet, "/checkout/gateways", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// PlaceOrder returns the raw payload; gateway orders carry a handoff.
func (u *UserClient) PlaceOrder(ctx context.Context, order OrderRequest) (json.RawMessage, error) {
	return u.c.confirm(ctx, "/checkout/confirm", order)
}

func (u *UserClient) Orders(ctx context.Context, page int) (*models.Page[models.Order], error) {
	var out models.Page[models.Order]
	query := map[string]string{"page": strconv.Itoa(page)}
	if err := u.c.call(ctx, true, http.MethodGet, "/orders", nil, &out, query); err != nil {
		return nil, err
	}
	return &out, nil
}
