package gateway

import (
	"encoding/json"
	"fmt"

	apperr "orusweb/internal/errors"
)

func malformed(format string, args ...any) error {
	return apperr.Wrap(apperr.ErrMalformedResponse, fmt.Errorf(format, args...))
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}
