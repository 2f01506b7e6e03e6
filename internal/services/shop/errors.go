package shop

import apperr "orusweb/internal/errors"

var (
	ErrProductNotFound = &apperr.DomainError{Code: "PRODUCT_NOT_FOUND", Message: "product not found"}
	ErrOutOfStock      = &apperr.DomainError{Code: "OUT_OF_STOCK", Message: "not enough stock for this quantity"}
	ErrNotInCart       = &apperr.DomainError{Code: "NOT_IN_CART", Message: "this product is not in your cart"}
)
