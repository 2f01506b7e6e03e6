package repositories

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

var ErrTampered = errors.New("stored value failed authentication")

// SealedStore encrypts every value before handing it to the wrapped store.
type SealedStore struct {
	inner Store
	key   [32]byte
}

// NewSealedStore wraps inner with a 32-byte key given as 64 hex characters.
func NewSealedStore(inner Store, hexKey string) (*SealedStore, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid storage secret: %w", err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("storage secret must be 32 bytes, got %d", len(raw))
	}
	s := &SealedStore{inner: inner}
	copy(s.key[:], raw)
	return s, nil
}

func (s *SealedStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	box, err := base64.StdEncoding.DecodeString(val)
	if err != nil || len(box) < 24 {
		return "", false, ErrTampered
	}
	var nonce [24]byte
	copy(nonce[:], box[:24])
	plain, ok := secretbox.Open(nil, box[24:], &nonce, &s.key)
	if !ok {
		return "", false, ErrTampered
	}
	return string(plain), true, nil
}

func (s *SealedStore) Set(ctx context.Context, key, value string) error {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(value), &nonce, &s.key)
	return s.inner.Set(ctx, key, base64.StdEncoding.EncodeToString(box))
}

func (s *SealedStore) Delete(ctx context.Context, keys ...string) error {
	return s.inner.Delete(ctx, keys...)
}

// HealthCheck reports the health of the wrapped store when it can tell.
func (s *SealedStore) HealthCheck(ctx context.Context) error {
	if chk, ok := s.inner.(interface{ HealthCheck(context.Context) error }); ok {
		return chk.HealthCheck(ctx)
	}
	return nil
}
