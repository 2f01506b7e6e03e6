package payment

import apperr "orusweb/internal/errors"

var ErrMerchantNotFound = &apperr.DomainError{Code: "MERCHANT_NOT_FOUND", Message: "merchant not found"}
