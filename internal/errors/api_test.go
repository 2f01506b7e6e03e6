package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAPIError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   []string
	}{
		{
			name:   "nested error list",
			status: 422,
			body:   `{"message":{"error":["Amount is required","Gateway is invalid"]}}`,
			want:   []string{"Amount is required", "Gateway is invalid"},
		},
		{
			name:   "nested single error",
			status: 400,
			body:   `{"message":{"error":"Insufficient balance"}}`,
			want:   []string{"Insufficient balance"},
		},
		{
			name:   "plain message",
			status: 400,
			body:   `{"message":"Something broke"}`,
			want:   []string{"Something broke"},
		},
		{
			name:   "field errors sorted by field",
			status: 422,
			body:   `{"errors":{"phone":["Phone is taken"],"email":["Email is taken"]}}`,
			want:   []string{"Email is taken", "Phone is taken"},
		},
		{
			name:   "non json body falls back to status text",
			status: 502,
			body:   `<html>bad gateway</html>`,
			want:   []string{"Bad Gateway"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ParseAPIError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.status, err.Status)
			assert.Equal(t, tt.want, err.Messages)
		})
	}
}

func TestFirstMessage(t *testing.T) {
	apiErr := ParseAPIError(422, []byte(`{"message":{"error":["first","second"]}}`))
	assert.Equal(t, "first", FirstMessage(fmt.Errorf("confirm: %w", apiErr)))
	assert.Equal(t, ErrMissingToken.Message, FirstMessage(ErrMissingToken))
	assert.NotEmpty(t, FirstMessage(stderrors.New("dial tcp: refused")))
	assert.Empty(t, FirstMessage(nil))
}

func TestDomainErrorIs(t *testing.T) {
	wrapped := Wrap(ErrMalformedResponse, stderrors.New("missing redirect_url"))
	assert.True(t, stderrors.Is(wrapped, ErrMalformedResponse))
	assert.False(t, stderrors.Is(wrapped, ErrMissingToken))
}
