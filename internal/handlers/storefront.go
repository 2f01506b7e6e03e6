package handlers

import (
	"errors"

	"orusweb/internal/client"
	"orusweb/internal/services/shop"
	"orusweb/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// StorefrontHandler serves the public shop, cart and wishlist. None of it
// needs a signed-in role.
type StorefrontHandler struct {
	deps *Deps
}

func NewStorefrontHandler(deps *Deps) *StorefrontHandler {
	return &StorefrontHandler{deps: deps}
}

func (h *StorefrontHandler) service(c *fiber.Ctx) (*shop.Service, call) {
	r := h.deps.call(c)
	return shop.NewService(h.deps.Backends.Frontend(), r.sid, r.n, h.deps.Shop), r
}

func failShop(c *fiber.Ctx, err error, data interface{}) error {
	if errors.Is(err, shop.ErrProductNotFound) {
		return utils.NotFound(c, shop.ErrProductNotFound.Message)
	}
	return utils.FailWith(c, err, data)
}

func (h *StorefrontHandler) Home(c *fiber.Ctx) error {
	svc, r := h.service(c)
	view, err := svc.Home(r.ctx)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, view)
}

func (h *StorefrontHandler) Settings(c *fiber.Ctx) error {
	svc, r := h.service(c)
	settings, err := svc.Settings(r.ctx)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, settings)
}

func (h *StorefrontHandler) Categories(c *fiber.Ctx) error {
	svc, r := h.service(c)
	cats, err := svc.Categories(r.ctx)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, cats)
}

func (h *StorefrontHandler) Products(c *fiber.Ctx) error {
	svc, r := h.service(c)
	page, err := svc.Products(r.ctx, client.ProductQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		Page:     utils.PageParam(c),
	})
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, page)
}

func (h *StorefrontHandler) Product(c *fiber.Ctx) error {
	svc, r := h.service(c)
	view, err := svc.Product(r.ctx, c.Params("slug"))
	if err != nil {
		return failShop(c, err, nil)
	}
	return utils.Success(c, view)
}

func (h *StorefrontHandler) Cart(c *fiber.Ctx) error {
	svc, r := h.service(c)
	view, err := svc.Cart(r.ctx)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, view)
}

type cartLine struct {
	Slug     string `json:"slug"`
	Quantity int    `json:"quantity"`
}

func (h *StorefrontHandler) AddToCart(c *fiber.Ctx) error {
	var in cartLine
	if !parse(c, &in) {
		return badBody(c)
	}
	svc, r := h.service(c)
	view, err := svc.AddToCart(r.ctx, in.Slug, in.Quantity)
	if err != nil {
		return failShop(c, err, view)
	}
	return utils.Success(c, view)
}

func (h *StorefrontHandler) SetQuantity(c *fiber.Ctx) error {
	id, ok := utils.IDParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "invalid product id")
	}
	var in cartLine
	if !parse(c, &in) {
		return badBody(c)
	}
	svc, r := h.service(c)
	view, err := svc.SetQuantity(r.ctx, id, in.Quantity)
	if err != nil {
		return utils.FailWith(c, err, view)
	}
	return utils.Success(c, view)
}

func (h *StorefrontHandler) RemoveFromCart(c *fiber.Ctx) error {
	id, ok := utils.IDParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "invalid product id")
	}
	svc, r := h.service(c)
	view, err := svc.RemoveFromCart(r.ctx, id)
	if err != nil {
		return utils.FailWith(c, err, view)
	}
	return utils.Success(c, view)
}

func (h *StorefrontHandler) Wishlist(c *fiber.Ctx) error {
	svc, r := h.service(c)
	st, err := svc.Wishlist(r.ctx)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, st)
}

func (h *StorefrontHandler) ToggleWishlist(c *fiber.Ctx) error {
	svc, r := h.service(c)
	st, err := svc.ToggleWishlist(r.ctx, c.Params("slug"))
	if err != nil {
		return failShop(c, err, nil)
	}
	return utils.Success(c, st)
}
