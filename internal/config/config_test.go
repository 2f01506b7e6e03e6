package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	t.Setenv("ORUSWEB_INT", "42")
	t.Setenv("ORUSWEB_BAD_INT", "x")
	t.Setenv("ORUSWEB_DUR", "250ms")
	t.Setenv("ORUSWEB_LIST", " a, b ,,c ")

	assert.Equal(t, 42, GetIntEnv("ORUSWEB_INT", 1))
	assert.Equal(t, 1, GetIntEnv("ORUSWEB_BAD_INT", 1))
	assert.Equal(t, 250*time.Millisecond, GetDurationEnv("ORUSWEB_DUR", time.Second))
	assert.Equal(t, []string{"a", "b", "c"}, GetListEnv("ORUSWEB_LIST", nil))
	assert.Equal(t, "fallback", GetEnv("ORUSWEB_MISSING", "fallback"))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("USER_API_URL", "https://api.example.com/user")
	cfg := Load()

	assert.Equal(t, "https://api.example.com/user", cfg.UserAPIURL)
	assert.Equal(t, 400*time.Millisecond, cfg.LimitDebounce)
	assert.NotEmpty(t, cfg.CryptoIdentifiers)
}
