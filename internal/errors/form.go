package errors

var (
	ErrValidation = &DomainError{
		Code:    "VALIDATION_FAILED",
		Message: "please correct the highlighted fields",
	}
	ErrMalformedResponse = &DomainError{
		Code:    "MALFORMED_RESPONSE",
		Message: "unexpected response from server",
	}
	ErrBusy = &DomainError{
		Code:    "BUSY",
		Message: "a request is already in progress",
	}
	ErrInvalidStep = &DomainError{
		Code:    "INVALID_STEP",
		Message: "this step is not available yet",
	}
	ErrEmptyCart = &DomainError{
		Code:    "EMPTY_CART",
		Message: "your cart is empty",
	}
	ErrInvalidQR = &DomainError{
		Code:    "INVALID_QR",
		Message: "invalid QR code",
	}
	ErrScanClosed = &DomainError{
		Code:    "SCAN_CLOSED",
		Message: "scanner is closed",
	}
)
