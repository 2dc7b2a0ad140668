package sessionstore

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const revokedPrefix = "revoked:"

// Blacklist registra los jti de tokens revocados en logout hasta su expiración natural.
type Blacklist struct {
	store fiber.Storage
	now   func() time.Time
}

// NewBlacklist usa store (memoria o Redis) como respaldo.
func NewBlacklist(store fiber.Storage) *Blacklist {
	return &Blacklist{store: store, now: time.Now}
}

// Revoke marca jti como revocado hasta until. Un token ya vencido no necesita registro.
func (b *Blacklist) Revoke(_ context.Context, jti string, until time.Time) error {
	ttl := until.Sub(b.now())
	if jti == "" || ttl <= 0 {
		return nil
	}
	return b.store.Set(revokedPrefix+jti, []byte("1"), ttl)
}

// IsRevoked indica si jti fue revocado.
func (b *Blacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	v, err := b.store.Get(revokedPrefix + jti)
	if err != nil {
		return false, err
	}
	return v != nil, nil
}
