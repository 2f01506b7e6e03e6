package virtualcard

import apperr "orusweb/internal/errors"

var (
	ErrCardNotFound = &apperr.DomainError{Code: "VIRTUAL_CARD_NOT_FOUND", Message: "card not found"}
	ErrCardFrozen   = &apperr.DomainError{Code: "VIRTUAL_CARD_FROZEN", Message: "unfreeze the card before topping it up"}
)
