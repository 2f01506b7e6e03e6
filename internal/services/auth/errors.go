package auth

import apperr "orusweb/internal/errors"

var (
	ErrNoPendingLogin = &apperr.DomainError{Code: "NO_PENDING_LOGIN", Message: "no login is waiting for a code"}
	ErrBadEnrollment  = &apperr.DomainError{Code: "BAD_2FA_ENROLLMENT", Message: "the authenticator setup could not be read"}
)
