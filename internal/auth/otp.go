package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"math/big"
	"time"

	"github.com/dropDatabas3/storefront/internal/cache"
)

// OTPService genera y verifica códigos de un solo uso por teléfono.
// Guarda sólo el digest del código en el cache backend, nunca el código.
type OTPService struct {
	cache  cache.Client
	ttl    time.Duration
	digits int
}

// NewOTPService crea el servicio sobre el cache dado.
func NewOTPService(c cache.Client, ttl time.Duration, digits int) *OTPService {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	if digits < 4 || digits > 10 {
		digits = 6
	}
	return &OTPService{cache: c, ttl: ttl, digits: digits}
}

// Generate crea un código numérico nuevo para el teléfono y lo deja
// pendiente de verificación. Un código previo del mismo teléfono se pisa.
func (s *OTPService) Generate(ctx context.Context, phone string) (string, error) {
	code, err := randomDigits(s.digits)
	if err != nil {
		return "", fmt.Errorf("auth: generate otp: %w", err)
	}
	if err := s.cache.Set(ctx, otpKey(phone), digest(code), s.ttl); err != nil {
		return "", fmt.Errorf("auth: store otp: %w", err)
	}
	return code, nil
}

// Verify valida el código para el teléfono. Un código correcto se consume:
// la segunda verificación con el mismo código falla.
func (s *OTPService) Verify(ctx context.Context, phone, code string) (bool, error) {
	stored, err := s.cache.Get(ctx, otpKey(phone))
	if err != nil {
		if cache.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("auth: load otp: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(digest(code))) != 1 {
		return false, nil
	}
	_ = s.cache.Delete(ctx, otpKey(phone))
	return true, nil
}

func otpKey(phone string) string {
	return "otp:" + phone
}

// digest: sha256 en base64url sin padding (igual que los tokens opacos).
func digest(code string) string {
	sum := sha256.Sum256([]byte(code))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func randomDigits(n int) (string, error) {
	out := make([]byte, n)
	for i := range out {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		out[i] = byte('0' + d.Int64())
	}
	return string(out), nil
}
