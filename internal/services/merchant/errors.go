package merchant

import apperr "orusweb/internal/errors"

var ErrInvalidTransition = &apperr.DomainError{Code: "INVALID_ORDER_TRANSITION", Message: "the order cannot move to this status"}
