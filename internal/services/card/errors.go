package card

import apperr "orusweb/internal/errors"

var (
	ErrInvalidNumber = &apperr.DomainError{Code: "INVALID_CARD_NUMBER", Message: "invalid card number"}
	ErrInvalidExpiry = &apperr.DomainError{Code: "INVALID_CARD_EXPIRY", Message: "invalid expiry date"}
	ErrCardExpired   = &apperr.DomainError{Code: "CARD_EXPIRED", Message: "card has expired"}
	ErrTokenization  = &apperr.DomainError{Code: "CARD_TOKENIZATION_FAILED", Message: "your card could not be verified"}
)
