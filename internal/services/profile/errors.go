package profile

import apperr "orusweb/internal/errors"

var (
	ErrKYCLocked    = &apperr.DomainError{Code: "KYC_LOCKED", Message: "your verification is already submitted"}
	ErrSamePassword = &apperr.DomainError{Code: "SAME_PASSWORD", Message: "the new password must differ from the current one"}
)
