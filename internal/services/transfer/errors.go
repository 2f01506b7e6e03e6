package transfer

import apperr "orusweb/internal/errors"

var ErrSelfTransfer = &apperr.DomainError{Code: "SELF_TRANSFER", Message: "you cannot send money to yourself"}
