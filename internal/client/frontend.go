package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"orusweb/internal/models"
)

// ProductQuery filters the storefront catalogue.
type ProductQuery struct {
	Search   string
	Category string
	Sort     string
	Page     int
}

func (q ProductQuery) params() map[string]string {
	p := map[string]string{}
	if q.Search != "" {
		p["search"] = q.Search
	}
	if q.Category != "" {
		p["category"] = q.Category
	}
	if q.Sort != "" {
		p["sort"] = q.Sort
	}
	if q.Page > 0 {
		p["page"] = strconv.Itoa(q.Page)
	}
	return p
}

func (f *FrontendClient) Home(ctx context.Context) (*models.HomeData, error) {
	var out models.HomeData
	if err := f.c.call(ctx, false, http.MethodGet, "/home", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *FrontendClient) Settings(ctx context.Context) (*models.Settings, error) {
	var out models.Settings
	if err := f.c.call(ctx, false, http.MethodGet, "/settings", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *FrontendClient) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := f.c.call(ctx, false, http.MethodGet, "/categories", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *FrontendClient) Products(ctx context.Context, q ProductQuery) (*models.Page[models.Product], error) {
	var out models.Page[models.Product]
	if err := f.c.call(ctx, false, http.MethodGet, "/products", nil, &out, q.params()); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *FrontendClient) Product(ctx context.Context, slug string) (*models.Product, error) {
	var out models.Product
	if err := f.c.call(ctx, false, http.MethodGet, "/products/"+url.PathEscape(slug), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
