package errors

var (
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "invalid amount",
	}
	ErrBelowMinimum = &DomainError{
		Code:    "BELOW_MINIMUM",
		Message: "amount is below the minimum limit",
	}
	ErrAboveMaximum = &DomainError{
		Code:    "ABOVE_MAXIMUM",
		Message: "amount exceeds the maximum limit",
	}
	ErrLimitExhausted = &DomainError{
		Code:    "LIMIT_EXHAUSTED",
		Message: "amount exceeds your remaining limit",
	}
	ErrCurrencyNotFound = &DomainError{
		Code:    "CURRENCY_NOT_FOUND",
		Message: "currency not found",
	}
	ErrGatewayNotFound = &DomainError{
		Code:    "GATEWAY_NOT_FOUND",
		Message: "gateway not found",
	}
)
