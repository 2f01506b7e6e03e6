package errors

import "fmt"

// DomainError is a stable, code-addressable error shown to the browser.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap attaches a cause to a domain error while keeping it matchable.
func Wrap(e *DomainError, cause error) error {
	return fmt.Errorf("%w: %v", e, cause)
}
