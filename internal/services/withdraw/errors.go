package withdraw

import apperr "orusweb/internal/errors"

var ErrMethodNotFound = &apperr.DomainError{Code: "WITHDRAW_METHOD_NOT_FOUND", Message: "withdraw method not found"}
