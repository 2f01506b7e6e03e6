package models

import "github.com/shopspring/decimal"

// Product is a storefront listing.
type Product struct {
	ID         uint            `json:"id"`
	Slug       string          `json:"slug"`
	Name       string          `json:"name"`
	Image      string          `json:"image"`
	Price      decimal.Decimal `json:"price"`
	SalePrice  decimal.Decimal `json:"sale_price"`
	Stock      int             `json:"stock"`
	SellerID   uint            `json:"seller_id"`
	CategoryID uint            `json:"category_id"`
}

// UnitPrice is the sale price when one is set.
func (p Product) UnitPrice() decimal.Decimal {
	if p.SalePrice.IsPositive() {
		return p.SalePrice
	}
	return p.Price
}

type Category struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
}

// CartItem is one line in the cart kept in client storage.
type CartItem struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is price times quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type WishlistItem struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
}

// Address is a shipping address collected during checkout.
type Address struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Line    string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country" validate:"required"`
}

// Order is a placed storefront order.
type Order struct {
	ID       uint            `json:"id"`
	OrderNo  string          `json:"order_no"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
	Status   string          `json:"status"`
	Items    []CartItem      `json:"items"`
}

// HomeData is the storefront landing payload cached per browser session.
type HomeData struct {
	Settings   Settings   `json:"settings"`
	Categories []Category `json:"categories"`
	Featured   []Product  `json:"featured"`
	Banners    []string   `json:"banners"`
}

// Settings are the platform's public display settings.
type Settings struct {
	SiteName       string `json:"site_name"`
	BaseCurrency   string `json:"base_currency"`
	CurrencySymbol string `json:"currency_symbol"`
	KYCRequired    bool   `json:"kyc_required"`
}
