// Package session lee la identidad del operador desde el token de sesión.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/pkg/jwt"
)

// Reader decodifica tokens. Con secret vacío solo decodifica (la firma la valida el backend emisor);
// con secret verifica HMAC. La expiración siempre se evalúa contra el reloj inyectado.
type Reader struct {
	secret string
	now    func() time.Time
}

// NewReader now nil = time.Now.
func NewReader(secret string, now func() time.Time) *Reader {
	if now == nil {
		now = time.Now
	}
	return &Reader{secret: secret, now: now}
}

// Now reloj del lector.
func (r *Reader) Now() time.Time { return r.now() }

// Read construye la identidad sin juzgar la expiración.
func (r *Reader) Read(token string) (entity.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entity.Identity{}, domain.ErrUnauthorized
	}
	var (
		claims *jwt.Claims
		err    error
	)
	if r.secret == "" {
		claims, err = jwt.Decode(token)
	} else {
		claims, err = jwt.Parse(r.secret, token)
	}
	if err != nil {
		return entity.Identity{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return entity.Identity{
		Username:  claims.Username,
		FullName:  claims.FullName,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAtTime(),
		Token:     token,
	}, nil
}

// RequireActive como Read, pero ErrSessionExpired si exp ya pasó.
func (r *Reader) RequireActive(token string) (entity.Identity, error) {
	id, err := r.Read(token)
	if err != nil {
		return entity.Identity{}, err
	}
	if id.Expired(r.now()) {
		return entity.Identity{}, domain.ErrSessionExpired
	}
	return id, nil
}

// CheckActive valida una identidad ya leída (el flujo de salida la revalida en cada paso).
func (r *Reader) CheckActive(id entity.Identity) error {
	if id.Expired(r.now()) {
		return domain.ErrSessionExpired
	}
	return nil
}
