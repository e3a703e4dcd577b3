// Package auth emite y verifica los tokens de sesión del flujo de
// onboarding (JWT HS256) y los códigos OTP de verificación de móvil.
//
// Esto es el scaffolding local: el proveedor real de identidad (OTP por
// SMS de un vendor, Google) es un colaborador externo.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer emite tokens de sesión de onboarding.
type TokenIssuer struct {
	issuer string
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer crea un TokenIssuer HS256.
func NewTokenIssuer(issuer, secret string, ttl time.Duration) *TokenIssuer {
	if ttl == 0 {
		ttl = 12 * time.Hour
	}
	return &TokenIssuer{issuer: issuer, secret: []byte(secret), ttl: ttl}
}

// Claims son las claims de una sesión de onboarding.
type Claims struct {
	Phone string `json:"phone"`
	jwt.RegisteredClaims
}

// Issue emite un token para el teléfono verificado.
func (ti *TokenIssuer) Issue(phone string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Phone: phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ti.issuer,
			Subject:   phone,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify valida firma, issuer y expiración; devuelve las claims.
func (ti *TokenIssuer) Verify(raw string) (*Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}
		return ti.secret, nil
	}, jwt.WithIssuer(ti.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("auth: parse token: %w", err)
	}
	if !tok.Valid {
		return nil, fmt.Errorf("auth: invalid token")
	}
	return &claims, nil
}
