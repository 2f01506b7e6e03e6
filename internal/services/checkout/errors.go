package checkout

import apperr "orusweb/internal/errors"

var ErrWalletBalance = &apperr.DomainError{Code: "CHECKOUT_BALANCE", Message: "your wallet balance does not cover this order"}
