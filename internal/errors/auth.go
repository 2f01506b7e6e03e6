package errors

var (
	ErrMissingToken = &DomainError{
		Code:    "MISSING_TOKEN",
		Message: "you are not logged in",
	}
	ErrSessionExpired = &DomainError{
		Code:    "SESSION_EXPIRED",
		Message: "your session has expired, please log in again",
	}
	ErrInvalidSession = &DomainError{
		Code:    "INVALID_SESSION",
		Message: "invalid browser session",
	}
	ErrTwoFactorPending = &DomainError{
		Code:    "TWO_FACTOR_PENDING",
		Message: "enter your verification code to continue",
	}
)
