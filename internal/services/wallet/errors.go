package wallet

import apperr "orusweb/internal/errors"

var (
	ErrWalletNotLoaded   = &apperr.DomainError{Code: "WALLET_NOT_LOADED", Message: "wallet is not available right now"}
	ErrInsufficientFunds = &apperr.DomainError{Code: "INSUFFICIENT_FUNDS", Message: "insufficient balance"}
)
