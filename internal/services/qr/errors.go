package qr

import (
	"errors"

	apperr "orusweb/internal/errors"
)

var (
	ErrInvalidPayload = apperr.ErrInvalidQR
	ErrClosed         = apperr.ErrScanClosed
	// ErrNoCode is returned by a stream when a frame held no readable code.
	ErrNoCode = errors.New("no code in frame")
)
