package bill

import apperr "orusweb/internal/errors"

var ErrServiceNotFound = &apperr.DomainError{Code: "BILL_SERVICE_NOT_FOUND", Message: "biller not found"}
