package giftcard

import apperr "orusweb/internal/errors"

var (
	ErrCardNotFound        = &apperr.DomainError{Code: "GIFT_CARD_NOT_FOUND", Message: "gift card not found"}
	ErrInvalidDenomination = &apperr.DomainError{Code: "INVALID_DENOMINATION", Message: "choose one of the listed values"}
	ErrInvalidCode         = &apperr.DomainError{Code: "INVALID_GIFT_CODE", Message: "invalid gift card code"}
)
