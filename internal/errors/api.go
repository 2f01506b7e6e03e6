package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is a non-2xx response from the platform backend.
type APIError struct {
	Status   int
	Messages []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Messages[0]
}

// ParseAPIError builds an APIError from a backend error body.
// The canonical body is {"message":{"error":["..."]}}.
func ParseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var envelope struct {
		Message json.RawMessage            `json:"message"`
		Error   json.RawMessage            `json:"error"`
		Errors  map[string]json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		apiErr.Messages = fallbackMessage(status)
		return apiErr
	}

	if len(envelope.Message) > 0 {
		var nested struct {
			Error json.RawMessage `json:"error"`
		}
		if err := json.Unmarshal(envelope.Message, &nested); err == nil && len(nested.Error) > 0 {
			apiErr.Messages = append(apiErr.Messages, stringsOf(nested.Error)...)
		} else {
			apiErr.Messages = append(apiErr.Messages, stringsOf(envelope.Message)...)
		}
	}
	if len(envelope.Error) > 0 {
		apiErr.Messages = append(apiErr.Messages, stringsOf(envelope.Error)...)
	}
	if len(envelope.Errors) > 0 {
		fields := make([]string, 0, len(envelope.Errors))
		for field := range envelope.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			apiErr.Messages = append(apiErr.Messages, stringsOf(envelope.Errors[field])...)
		}
	}

	if len(apiErr.Messages) == 0 {
		apiErr.Messages = fallbackMessage(status)
	}
	return apiErr
}

// stringsOf accepts a string or an array of strings.
func stringsOf(raw json.RawMessage) []string {
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		if one = strings.TrimSpace(one); one != "" {
			return []string{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		out := many[:0]
		for _, m := range many {
			if m = strings.TrimSpace(m); m != "" {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

func fallbackMessage(status int) []string {
	if text := http.StatusText(status); text != "" {
		return []string{text}
	}
	return nil
}

// FirstMessage returns the message a toast should show for err.
func FirstMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Error()
	}
	var domainErr *DomainError
	if stderrors.As(err, &domainErr) {
		return domainErr.Message
	}
	return "something went wrong, please try again"
}
